package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plainhq/plaindex/internal/index"
	"github.com/plainhq/plaindex/internal/nav"
	"github.com/plainhq/plaindex/internal/scanner"
)

func setupServer(t *testing.T, docs map[string]string) (string, *Server) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	coord := index.NewCoordinator(index.CoordinatorConfig{
		Roots:        []string{dir},
		Extension:    ".plain",
		IgnoreMarker: ".",
		Scanner:      scanner.New(),
	})
	require.NoError(t, coord.Rebuild(context.Background()))

	navigator, err := nav.New(coord)
	require.NoError(t, err)

	server, err := NewServer(navigator, coord)
	require.NoError(t, err)
	return dir, server
}

func TestNewServer_RequiresCollaborators(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.Error(t, err)
}

func TestFindDefinitionTool(t *testing.T) {
	dir, s := setupServer(t, map[string]string{
		"glossary.plain": "***definitions***\n- :widget:\n",
	})

	_, out, err := s.mcpFindDefinitionHandler(context.Background(), nil, FindDefinitionInput{Name: "widget"})
	require.NoError(t, err)
	require.Len(t, out.Occurrences, 1)
	assert.Equal(t, filepath.Join(dir, "glossary.plain"), out.Occurrences[0].DocumentPath)
	assert.Equal(t, 1, out.Occurrences[0].Line)
	assert.Equal(t, 2, out.Occurrences[0].Column)

	// Unknown names yield an empty list, not an error.
	_, out, err = s.mcpFindDefinitionHandler(context.Background(), nil, FindDefinitionInput{Name: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, out.Occurrences)

	// Missing name is an invalid-params error.
	_, _, err = s.mcpFindDefinitionHandler(context.Background(), nil, FindDefinitionInput{})
	assert.Error(t, err)
}

func TestFindUsagesTool(t *testing.T) {
	_, s := setupServer(t, map[string]string{
		"glossary.plain": "***definitions***\n- :widget:\n",
		"notes.plain":    "The :widget: turns.\n",
	})

	_, out, err := s.mcpFindUsagesHandler(context.Background(), nil, FindUsagesInput{Name: "widget"})
	require.NoError(t, err)
	assert.Len(t, out.Occurrences, 2)
}

func TestRenameConceptTool_DryRunByDefault(t *testing.T) {
	dir, s := setupServer(t, map[string]string{
		"notes.plain": "The :widget: turns.\n",
	})

	_, out, err := s.mcpRenameConceptHandler(context.Background(), nil, RenameConceptInput{
		OldName: "widget",
		NewName: "gadget",
	})
	require.NoError(t, err)
	assert.False(t, out.Applied)
	require.Len(t, out.Batches, 1)
	require.Len(t, out.Batches[0].Replacements, 1)
	assert.Equal(t, 5, out.Batches[0].Replacements[0].Column)

	// The document is untouched.
	content, err := os.ReadFile(filepath.Join(dir, "notes.plain"))
	require.NoError(t, err)
	assert.Contains(t, string(content), ":widget:")
}

func TestRenameConceptTool_Write(t *testing.T) {
	dir, s := setupServer(t, map[string]string{
		"notes.plain": "The :widget: turns.\n",
	})

	_, out, err := s.mcpRenameConceptHandler(context.Background(), nil, RenameConceptInput{
		OldName: "widget",
		NewName: "gadget",
		Write:   true,
	})
	require.NoError(t, err)
	assert.True(t, out.Applied)

	content, err := os.ReadFile(filepath.Join(dir, "notes.plain"))
	require.NoError(t, err)
	assert.Contains(t, string(content), ":gadget:")
}

func TestRenameConceptTool_InvalidNewName(t *testing.T) {
	_, s := setupServer(t, map[string]string{
		"notes.plain": "The :widget: turns.\n",
	})

	_, _, err := s.mcpRenameConceptHandler(context.Background(), nil, RenameConceptInput{
		OldName: "widget",
		NewName: "barbaz!",
	})
	require.Error(t, err)
	mcpErr, ok := err.(*MCPError)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}

func TestSymbolAtTool(t *testing.T) {
	dir, s := setupServer(t, map[string]string{
		"glossary.plain": "***definitions***\n- :widget:\n  body uses :widget:\n",
	})
	path := filepath.Join(dir, "glossary.plain")

	_, out, err := s.mcpSymbolAtHandler(context.Background(), nil, SymbolAtInput{
		DocumentPath: path, Line: 1, Column: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "widget", out.Name)
	assert.Equal(t, "definition", out.Kind)

	_, out, err = s.mcpSymbolAtHandler(context.Background(), nil, SymbolAtInput{
		DocumentPath: path, Line: 2, Column: 13,
	})
	require.NoError(t, err)
	assert.Equal(t, "usage", out.Kind)

	_, _, err = s.mcpSymbolAtHandler(context.Background(), nil, SymbolAtInput{
		DocumentPath: path, Line: 0, Column: 0,
	})
	assert.Error(t, err)
}

func TestIndexStatusAndReindexTools(t *testing.T) {
	dir, s := setupServer(t, map[string]string{
		"glossary.plain": "***definitions***\n- :widget:\n",
	})

	_, status, err := s.mcpIndexStatusHandler(context.Background(), nil, IndexStatusInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, status.DefinedConcepts)

	// Add a document and reindex through the tool.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "more.plain"),
		[]byte("***definitions***\n- :gadget:\n"), 0o644))

	_, re, err := s.mcpReindexHandler(context.Background(), nil, ReindexInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, re.DefinedConcepts)
}
