// Package nav is the query and mutation facade over the concept index.
// External collaborators (the MCP server, the CLI) consume it for
// definition/usage lookups, hover text, cursor-position classification,
// and multi-document rename planning.
package nav

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/plainhq/plaindex/internal/document"
	idxerrors "github.com/plainhq/plaindex/internal/errors"
	"github.com/plainhq/plaindex/internal/index"
)

// SymbolKind classifies the concept token under a cursor.
type SymbolKind string

const (
	// KindDefinition marks a token on a definition line inside a
	// definitions section.
	KindDefinition SymbolKind = "definition"
	// KindUsage marks any other concept token sighting.
	KindUsage SymbolKind = "usage"
)

// Replacement is one textual substitution within a document.
type Replacement struct {
	// Line is the zero-based line of the occurrence's anchor.
	Line int `json:"line"`
	// Column is the zero-based start of the replaced span: one past the
	// occurrence's recorded column, skipping the opening colon.
	Column int `json:"column"`
	// Length is the number of characters replaced (the old name's length).
	Length int `json:"length"`
	// NewText substitutes the replaced span.
	NewText string `json:"new_text"`
}

// DocumentBatch groups the replacements for one document.
type DocumentBatch struct {
	DocumentPath string        `json:"document_path"`
	Replacements []Replacement `json:"replacements"`
}

// RenamePlan is the full set of per-document replacement batches for
// renaming a concept.
type RenamePlan struct {
	OldName string          `json:"old_name"`
	NewName string          `json:"new_name"`
	Batches []DocumentBatch `json:"batches"`
}

// Navigator answers location queries against the index and plans renames.
type Navigator struct {
	coord *index.Coordinator
	docs  *docCache
}

// New creates a Navigator over the given coordinator.
func New(coord *index.Coordinator) (*Navigator, error) {
	docs, err := newDocCache()
	if err != nil {
		return nil, err
	}
	return &Navigator{coord: coord, docs: docs}, nil
}

// FindDefinition returns all definition occurrences of a concept.
func (n *Navigator) FindDefinition(name string) []document.Occurrence {
	return n.coord.LookupDefinitions(name)
}

// FindUsages returns all usage occurrences of a concept.
func (n *Navigator) FindUsages(name string) []document.Occurrence {
	return n.coord.LookupUsages(name)
}

// Hover returns presentation text for a concept: the raw content of its
// first definition occurrence.
func (n *Navigator) Hover(name string) (string, error) {
	defs := n.coord.LookupDefinitions(name)
	if len(defs) == 0 {
		return "", idxerrors.New(idxerrors.ErrCodeUnknownConcept,
			fmt.Sprintf("concept %q has no definition", name), nil)
	}
	return defs[0].RawContent, nil
}

// PlanRename validates the new name and produces one replacement batch per
// document containing the old concept. It targets the usages index on
// purpose: definition lines double as usage sightings, so the rename also
// rewrites the definition itself.
func (n *Navigator) PlanRename(oldName, newName string) (*RenamePlan, error) {
	if !document.ValidName(newName) {
		return nil, idxerrors.New(idxerrors.ErrCodeInvalidConceptName,
			fmt.Sprintf("invalid concept name %q: allowed characters are letters, digits, '.', '-', '_', '+'", newName), nil)
	}

	usages := n.coord.LookupUsages(oldName)
	if len(usages) == 0 {
		return nil, idxerrors.New(idxerrors.ErrCodeUnknownConcept,
			fmt.Sprintf("concept %q has no occurrences", oldName), nil)
	}

	byDoc := make(map[string][]Replacement)
	for _, occ := range usages {
		byDoc[occ.DocumentPath] = append(byDoc[occ.DocumentPath], Replacement{
			Line:    occ.Line,
			Column:  occ.Column + 1,
			Length:  len(oldName),
			NewText: newName,
		})
	}

	paths := make([]string, 0, len(byDoc))
	for path := range byDoc {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	plan := &RenamePlan{OldName: oldName, NewName: newName}
	for _, path := range paths {
		plan.Batches = append(plan.Batches, DocumentBatch{
			DocumentPath: path,
			Replacements: byDoc[path],
		})
	}
	return plan, nil
}

// Apply writes a rename plan to disk, one document at a time. Usage
// columns are offsets into the continuation-joined block text, so each
// replacement is resolved against the block starting at its anchor line
// before being applied. Replacements are applied back to front so earlier
// ones never shift later offsets.
func (n *Navigator) Apply(plan *RenamePlan) error {
	for _, batch := range plan.Batches {
		if err := n.applyBatch(batch, plan.OldName); err != nil {
			return idxerrors.New(idxerrors.ErrCodeRenameFailed,
				fmt.Sprintf("failed to rewrite %s", batch.DocumentPath), err)
		}
	}
	return nil
}

func (n *Navigator) applyBatch(batch DocumentBatch, oldName string) error {
	content, err := os.ReadFile(batch.DocumentPath)
	if err != nil {
		return err
	}
	lines := document.SplitLines(string(content))

	// Back to front within the document.
	repls := make([]Replacement, len(batch.Replacements))
	copy(repls, batch.Replacements)
	sort.Slice(repls, func(i, j int) bool {
		if repls[i].Line != repls[j].Line {
			return repls[i].Line > repls[j].Line
		}
		return repls[i].Column > repls[j].Column
	})

	for _, r := range repls {
		if err := applyReplacement(lines, r, oldName); err != nil {
			return err
		}
	}

	return os.WriteFile(batch.DocumentPath, []byte(strings.Join(lines, "\n")), 0o644)
}

// applyReplacement maps a block-relative column back onto the physical
// line carrying the token and substitutes the new name there.
func applyReplacement(lines []string, r Replacement, oldName string) error {
	if r.Line >= len(lines) {
		return fmt.Errorf("replacement line %d out of range", r.Line)
	}

	// Walk the continuation block anchored at r.Line, tracking the offset
	// of each physical line within the joined block text.
	offset := 0
	for i := r.Line; i < len(lines); i++ {
		line := lines[i]
		local := r.Column - 1 - offset // back to the opening colon
		if local >= 0 && local < len(line) && strings.HasPrefix(line[local:], ":"+oldName+":") {
			lines[i] = line[:local+1] + r.NewText + line[local+1+r.Length:]
			return nil
		}
		offset += len(line) + 1 // plus the joining newline
		next := i + 1
		if next >= len(lines) || document.IsHeaderLine(lines[next]) || !startsIndented(lines[next]) {
			break
		}
	}
	return fmt.Errorf("token %q not found at line %d column %d", oldName, r.Line, r.Column)
}

func startsIndented(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

// KindAt classifies the concept token under a cursor position. It is a
// side-query: the enclosing section and the definition-line pattern are
// re-derived from the document text, independent of the stored index.
func (n *Navigator) KindAt(path string, line, column int) (SymbolKind, string, error) {
	lines, err := n.docs.Lines(path)
	if err != nil {
		return "", "", idxerrors.New(idxerrors.ErrCodeDocumentRead,
			fmt.Sprintf("failed to read %s", path), err)
	}
	if line < 0 || line >= len(lines) {
		return "", "", idxerrors.New(idxerrors.ErrCodeNoSymbolAtCursor,
			fmt.Sprintf("line %d out of range", line), nil)
	}

	raw := lines[line]
	var name string
	for _, tok := range document.Tokens(raw) {
		if column >= tok.Start && column < tok.End {
			name = tok.Name
			break
		}
	}
	if name == "" {
		return "", "", idxerrors.New(idxerrors.ErrCodeNoSymbolAtCursor,
			"no concept token under cursor", nil)
	}

	if document.SectionAt(lines, line) == "definitions" && document.IsDefinitionLine(raw) {
		return KindDefinition, name, nil
	}
	return KindUsage, name, nil
}
