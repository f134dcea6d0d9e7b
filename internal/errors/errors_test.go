package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		wantCategory Category
		wantSeverity Severity
	}{
		{name: "config", code: ErrCodeConfigInvalid, wantCategory: CategoryConfig, wantSeverity: SeverityError},
		{name: "document read warns", code: ErrCodeDocumentRead, wantCategory: CategoryIO, wantSeverity: SeverityWarning},
		{name: "workspace locked is fatal", code: ErrCodeWorkspaceLocked, wantCategory: CategoryIO, wantSeverity: SeverityFatal},
		{name: "validation", code: ErrCodeInvalidConceptName, wantCategory: CategoryValidation, wantSeverity: SeverityError},
		{name: "internal", code: ErrCodeInternal, wantCategory: CategoryInternal, wantSeverity: SeverityError},
		{name: "unknown code falls back to internal", code: "bogus", wantCategory: CategoryInternal, wantSeverity: SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
			assert.Equal(t, tt.wantSeverity, err.Severity)
		})
	}
}

func TestError_FormatsCodeAndMessage(t *testing.T) {
	err := New(ErrCodeUnknownConcept, "concept \"ghost\" has no occurrences", nil)
	assert.Equal(t, `[ERR_402_UNKNOWN_CONCEPT] concept "ghost" has no occurrences`, err.Error())
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := New(ErrCodeDocumentRead, "failed to read doc", cause)

	assert.Equal(t, cause, stderrors.Unwrap(err))
	assert.True(t, stderrors.Is(err, cause))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := New(ErrCodeUnknownConcept, "one message", nil)
	target := New(ErrCodeUnknownConcept, "different message", nil)

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrCodeInternal, "x", nil)))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))

	cause := fmt.Errorf("boom")
	err := Wrap(ErrCodeInternal, cause)
	require.NotNil(t, err)
	assert.Equal(t, "boom", err.Message)
	assert.Equal(t, cause, err.Cause)
}

func TestWithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeDocumentRead, "read failed", nil).
		WithDetail("path", "/tmp/doc.plain").
		WithSuggestion("check file permissions")

	assert.Equal(t, "/tmp/doc.plain", err.Details["path"])
	assert.Equal(t, "check file permissions", err.Suggestion)
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(fmt.Errorf("plain error")))
	assert.False(t, IsFatal(New(ErrCodeDocumentRead, "x", nil)))
	assert.True(t, IsFatal(New(ErrCodeWorkspaceLocked, "x", nil)))
}

func TestGetCodeAndCategory(t *testing.T) {
	err := New(ErrCodeInvalidConceptName, "x", nil)

	assert.Equal(t, ErrCodeInvalidConceptName, GetCode(err))
	assert.Equal(t, CategoryValidation, GetCategory(err))
	assert.Equal(t, "", GetCode(fmt.Errorf("plain")))
	assert.Equal(t, Category(""), GetCategory(fmt.Errorf("plain")))
}
