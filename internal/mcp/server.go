package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/plainhq/plaindex/internal/document"
	"github.com/plainhq/plaindex/internal/index"
	"github.com/plainhq/plaindex/internal/nav"
	"github.com/plainhq/plaindex/pkg/version"
)

// Server is the MCP server for plaindex. It bridges editor clients with
// the concept index's query and rename facade.
type Server struct {
	mcp    *mcp.Server
	nav    *nav.Navigator
	coord  *index.Coordinator
	logger *slog.Logger
}

// NewServer creates a new MCP server over the navigator and coordinator.
func NewServer(navigator *nav.Navigator, coord *index.Coordinator) (*Server, error) {
	if navigator == nil {
		return nil, errors.New("navigator is required")
	}
	if coord == nil {
		return nil, errors.New("coordinator is required")
	}

	s := &Server{
		nav:    navigator,
		coord:  coord,
		logger: slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "plaindex",
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "find_definition",
		Description: "Locate where a concept is declared. Returns every definition list item for the name, with document, line and column for jump-to-definition.",
	}, s.mcpFindDefinitionHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "find_usages",
		Description: "List every place a concept is referenced. One occurrence per continuation block per document, anchored at the block's first line.",
	}, s.mcpFindUsagesHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "rename_concept",
		Description: "Plan (or apply) a workspace-wide concept rename. Produces one replacement batch per document covering every usage of the old name, definition lines included.",
	}, s.mcpRenameConceptHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "symbol_at",
		Description: "Classify the concept token at a cursor position as a definition site or a usage site, re-derived from document text.",
	}, s.mcpSymbolAtHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index_status",
		Description: "Report index statistics and per-document read errors from the last rebuild.",
	}, s.mcpIndexStatusHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "reindex",
		Description: "Rebuild the concept index from scratch. A rebuild already in progress makes this a no-op.",
	}, s.mcpReindexHandler)

	s.logger.Info("MCP tools registered", slog.Int("count", 6))
}

// mcpFindDefinitionHandler is the MCP SDK handler for find_definition.
func (s *Server) mcpFindDefinitionHandler(_ context.Context, _ *mcp.CallToolRequest, input FindDefinitionInput) (
	*mcp.CallToolResult,
	OccurrencesOutput,
	error,
) {
	if input.Name == "" {
		return nil, OccurrencesOutput{}, NewInvalidParamsError("name parameter is required")
	}

	occs := s.nav.FindDefinition(input.Name)
	s.logger.Debug("find_definition",
		slog.String("name", input.Name),
		slog.Int("count", len(occs)))
	return nil, toOccurrencesOutput(occs), nil
}

// mcpFindUsagesHandler is the MCP SDK handler for find_usages.
func (s *Server) mcpFindUsagesHandler(_ context.Context, _ *mcp.CallToolRequest, input FindUsagesInput) (
	*mcp.CallToolResult,
	OccurrencesOutput,
	error,
) {
	if input.Name == "" {
		return nil, OccurrencesOutput{}, NewInvalidParamsError("name parameter is required")
	}

	occs := s.nav.FindUsages(input.Name)
	s.logger.Debug("find_usages",
		slog.String("name", input.Name),
		slog.Int("count", len(occs)))
	return nil, toOccurrencesOutput(occs), nil
}

// mcpRenameConceptHandler is the MCP SDK handler for rename_concept.
func (s *Server) mcpRenameConceptHandler(_ context.Context, _ *mcp.CallToolRequest, input RenameConceptInput) (
	*mcp.CallToolResult,
	RenamePlanOutput,
	error,
) {
	if input.OldName == "" || input.NewName == "" {
		return nil, RenamePlanOutput{}, NewInvalidParamsError("old_name and new_name parameters are required")
	}

	plan, err := s.nav.PlanRename(input.OldName, input.NewName)
	if err != nil {
		return nil, RenamePlanOutput{}, MapError(err)
	}

	if input.Write {
		if err := s.nav.Apply(plan); err != nil {
			return nil, RenamePlanOutput{}, MapError(err)
		}
	}

	s.logger.Info("rename_concept",
		slog.String("old", input.OldName),
		slog.String("new", input.NewName),
		slog.Int("documents", len(plan.Batches)),
		slog.Bool("applied", input.Write))
	return nil, toRenamePlanOutput(plan, input.Write), nil
}

// mcpSymbolAtHandler is the MCP SDK handler for symbol_at.
func (s *Server) mcpSymbolAtHandler(_ context.Context, _ *mcp.CallToolRequest, input SymbolAtInput) (
	*mcp.CallToolResult,
	SymbolAtOutput,
	error,
) {
	if input.DocumentPath == "" {
		return nil, SymbolAtOutput{}, NewInvalidParamsError("document_path parameter is required")
	}

	kind, name, err := s.nav.KindAt(input.DocumentPath, input.Line, input.Column)
	if err != nil {
		return nil, SymbolAtOutput{}, MapError(err)
	}
	return nil, SymbolAtOutput{Name: name, Kind: string(kind)}, nil
}

// mcpIndexStatusHandler is the MCP SDK handler for index_status.
func (s *Server) mcpIndexStatusHandler(_ context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	IndexStatusOutput,
	error,
) {
	stats := s.coord.Stats()
	return nil, IndexStatusOutput{
		DefinedConcepts: stats.DefinedConcepts,
		UsedConcepts:    stats.UsedConcepts,
		Definitions:     stats.Definitions,
		Usages:          stats.Usages,
		DocumentErrors:  s.coord.DocumentErrors(),
	}, nil
}

// mcpReindexHandler is the MCP SDK handler for reindex.
func (s *Server) mcpReindexHandler(ctx context.Context, _ *mcp.CallToolRequest, _ ReindexInput) (
	*mcp.CallToolResult,
	ReindexOutput,
	error,
) {
	if err := s.coord.Rebuild(ctx); err != nil {
		return nil, ReindexOutput{}, MapError(err)
	}
	stats := s.coord.Stats()
	return nil, ReindexOutput{
		DefinedConcepts: stats.DefinedConcepts,
		Usages:          stats.Usages,
	}, nil
}

// Serve runs the MCP server over the given transport until the context
// is cancelled.
func (s *Server) Serve(ctx context.Context, transport string) error {
	switch transport {
	case "", "stdio":
		s.logger.Debug("Using stdio transport for JSON-RPC")
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && err != context.Canceled {
			s.logger.Error("MCP server stopped with error",
				slog.String("error", err.Error()))
		} else {
			s.logger.Info("MCP server stopped gracefully")
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

func toOccurrencesOutput(occs []document.Occurrence) OccurrencesOutput {
	out := OccurrencesOutput{
		Occurrences: make([]OccurrenceOutput, 0, len(occs)),
	}
	for _, occ := range occs {
		out.Occurrences = append(out.Occurrences, OccurrenceOutput{
			Name:         occ.Name,
			DocumentPath: occ.DocumentPath,
			Line:         occ.Line,
			Column:       occ.Column,
			Section:      occ.Section,
			RawContent:   occ.RawContent,
		})
	}
	return out
}

func toRenamePlanOutput(plan *nav.RenamePlan, applied bool) RenamePlanOutput {
	out := RenamePlanOutput{
		OldName: plan.OldName,
		NewName: plan.NewName,
		Applied: applied,
	}
	for _, batch := range plan.Batches {
		b := DocumentBatchOutput{DocumentPath: batch.DocumentPath}
		for _, r := range batch.Replacements {
			b.Replacements = append(b.Replacements, ReplacementOutput{
				Line:    r.Line,
				Column:  r.Column,
				Length:  r.Length,
				NewText: r.NewText,
			})
		}
		out.Batches = append(out.Batches, b)
	}
	return out
}
