// Package ui provides terminal rendering for query results and status.
package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/plainhq/plaindex/internal/document"
	"github.com/plainhq/plaindex/internal/index"
	"github.com/plainhq/plaindex/internal/nav"
)

// Renderer writes human-readable output for CLI commands.
type Renderer struct {
	out    io.Writer
	styles Styles
}

// NewRenderer creates a renderer for the given writer. Color is enabled
// only when the writer is a terminal and NO_COLOR is unset.
func NewRenderer(out io.Writer) *Renderer {
	noColor := DetectNoColor() || !IsTTY(out)
	return &Renderer{
		out:    out,
		styles: GetStyles(noColor),
	}
}

// NewRendererWithStyles creates a renderer with explicit styles.
func NewRendererWithStyles(out io.Writer, styles Styles) *Renderer {
	return &Renderer{out: out, styles: styles}
}

// Occurrences renders a list of occurrences grouped by document.
func (r *Renderer) Occurrences(name string, occs []document.Occurrence) {
	if len(occs) == 0 {
		fmt.Fprintf(r.out, "%s: no occurrences\n", r.styles.Concept.Render(name))
		return
	}

	fmt.Fprintf(r.out, "%s (%d)\n", r.styles.Concept.Render(name), len(occs))

	lastDoc := ""
	for _, occ := range occs {
		if occ.DocumentPath != lastDoc {
			fmt.Fprintf(r.out, "%s\n", r.styles.Header.Render(occ.DocumentPath))
			lastDoc = occ.DocumentPath
		}
		loc := fmt.Sprintf("%d:%d", occ.Line+1, occ.Column+1)
		line := fmt.Sprintf("  %s  %s", r.styles.Location.Render(loc), firstLine(occ.RawContent))
		if occ.Section != "" {
			line += "  " + r.styles.Section.Render("["+occ.Section+"]")
		}
		fmt.Fprintln(r.out, line)
	}
}

// RenamePlan renders a rename plan, with a dry-run notice unless applied.
func (r *Renderer) RenamePlan(plan *nav.RenamePlan, applied bool) {
	total := 0
	for _, batch := range plan.Batches {
		total += len(batch.Replacements)
	}

	fmt.Fprintf(r.out, "%s %s %s  (%d replacements in %d documents)\n",
		r.styles.Concept.Render(plan.OldName),
		r.styles.Dim.Render("->"),
		r.styles.Concept.Render(plan.NewName),
		total, len(plan.Batches))

	for _, batch := range plan.Batches {
		fmt.Fprintf(r.out, "%s\n", r.styles.Header.Render(batch.DocumentPath))
		for _, rep := range batch.Replacements {
			fmt.Fprintf(r.out, "  %s\n",
				r.styles.Location.Render(fmt.Sprintf("%d:%d", rep.Line+1, rep.Column+1)))
		}
	}

	if applied {
		fmt.Fprintln(r.out, r.styles.Success.Render("applied"))
	} else {
		fmt.Fprintln(r.out, r.styles.Dim.Render("dry run, pass --write to apply"))
	}
}

// Status renders index statistics and any per-document read errors.
func (r *Renderer) Status(stats index.Stats, docErrors map[string]string) {
	fmt.Fprintf(r.out, "%s\n", r.styles.Header.Render("index status"))
	fmt.Fprintf(r.out, "  %s %d\n", r.styles.Label.Render("defined concepts:"), stats.DefinedConcepts)
	fmt.Fprintf(r.out, "  %s %d\n", r.styles.Label.Render("used concepts:   "), stats.UsedConcepts)
	fmt.Fprintf(r.out, "  %s %d\n", r.styles.Label.Render("definitions:     "), stats.Definitions)
	fmt.Fprintf(r.out, "  %s %d\n", r.styles.Label.Render("usages:          "), stats.Usages)

	if len(docErrors) == 0 {
		return
	}

	fmt.Fprintf(r.out, "%s\n", r.styles.Warning.Render(fmt.Sprintf("unreadable documents (%d)", len(docErrors))))
	paths := make([]string, 0, len(docErrors))
	for p := range docErrors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(r.out, "  %s  %s\n", p, r.styles.Dim.Render(docErrors[p]))
	}
}

// Errorf renders an error line.
func (r *Renderer) Errorf(format string, args ...any) {
	fmt.Fprintln(r.out, r.styles.Error.Render(fmt.Sprintf(format, args...)))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
