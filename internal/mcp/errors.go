// Package mcp implements the Model Context Protocol server for plaindex.
// It is the editor-integration surface: jump-to-definition, find-usages,
// hover and rename all consume the navigator facade through MCP tools.
package mcp

import (
	"context"
	"errors"
	"fmt"

	idxerrors "github.com/plainhq/plaindex/internal/errors"
)

// Custom MCP error codes for plaindex.
const (
	// ErrCodeIndexEmpty indicates the index has not been built yet.
	ErrCodeIndexEmpty = -32001

	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout = -32003

	// ErrCodeDocumentNotFound indicates a document no longer exists on disk.
	ErrCodeDocumentNotFound = -32004

	// Standard JSON-RPC error codes.
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var ie *idxerrors.IndexError
	if errors.As(err, &ie) {
		return mapIndexError(ie)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

// NewInvalidParamsError creates an error for invalid parameters.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}

// mapIndexError converts an IndexError to an MCPError.
func mapIndexError(ie *idxerrors.IndexError) *MCPError {
	message := ie.Message
	if ie.Suggestion != "" {
		message = fmt.Sprintf("%s %s", ie.Message, ie.Suggestion)
	}

	switch ie.Category {
	case idxerrors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: message}
	case idxerrors.CategoryIO:
		if ie.Code == idxerrors.ErrCodeDocumentNotFound {
			return &MCPError{Code: ErrCodeDocumentNotFound, Message: message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	}
}
