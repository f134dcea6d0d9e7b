package document

import (
	"regexp"
	"strings"
)

// Concept token alphabet: letters, digits, '.', '-', '_', '+'.
var (
	namePattern    = regexp.MustCompile(`^[A-Za-z0-9_.+-]+$`)
	tokenPattern   = regexp.MustCompile(`:([A-Za-z0-9_.+-]+):`)
	defLinePattern = regexp.MustCompile(`^\s*- :[A-Za-z0-9_.+-]+:(, :[A-Za-z0-9_.+-]+:)*\s*$`)
)

// definitionsSection is the only section whose list items declare concepts.
const definitionsSection = "definitions"

// ValidName reports whether s is a well-formed concept name.
func ValidName(s string) bool {
	return namePattern.MatchString(s)
}

// IsDefinitionLine reports whether a raw line has the definition list-item
// shape `- :a:, :b:`. Section membership is the caller's concern.
func IsDefinitionLine(line string) bool {
	return defLinePattern.MatchString(line)
}

// Token is one inline concept token located within a text span.
type Token struct {
	Name  string
	Start int // offset of the opening colon
	End   int // offset one past the closing colon
}

// Tokens returns every inline concept token in text, in order.
func Tokens(text string) []Token {
	matches := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{
			Name:  text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		})
	}
	return tokens
}

// SplitLines splits document text into lines, tolerating CRLF endings.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Extract parses one document's text and returns its definition and usage
// occurrences. path tags every occurrence as its owning document.
func Extract(path, text string) Extraction {
	lines := SplitLines(text)
	tags := Sections(lines)
	return Extraction{
		Definitions: extractDefinitions(path, lines, tags),
		Usages:      extractUsages(path, lines, tags),
	}
}

// extractDefinitions collects concept declarations from list items inside
// the definitions section. A single list item may declare several concepts
// (co-definition); each accepted token becomes one occurrence anchored at
// the offset of its opening colon in the raw line.
func extractDefinitions(path string, lines []string, tags []SectionTag) []Occurrence {
	var defs []Occurrence
	for i, line := range lines {
		if tags[i].Section != definitionsSection {
			continue
		}
		if !defLinePattern.MatchString(line) {
			continue
		}
		for _, m := range tokenPattern.FindAllStringSubmatchIndex(line, -1) {
			name := line[m[2]:m[3]]
			// Token-level re-validation; the line pattern already implies
			// this, but a malformed token must never reach the index.
			if !namePattern.MatchString(name) {
				continue
			}
			defs = append(defs, Occurrence{
				Name:         name,
				DocumentPath: path,
				Line:         i,
				Column:       m[0],
				RawContent:   line,
				Section:      tags[i].Section,
			})
		}
	}
	return defs
}

// block accumulates one continuation unit: an anchor line plus all
// immediately following indented lines.
type block struct {
	anchorLine int
	section    string
	text       strings.Builder
	open       bool
}

func (b *block) start(lineIndex int, section, line string) {
	b.anchorLine = lineIndex
	b.section = section
	b.text.Reset()
	b.text.WriteString(line)
	b.open = true
}

func (b *block) appendLine(line string) {
	b.text.WriteString("\n")
	b.text.WriteString(line)
}

// extractUsages scans the whole document, definitions sections included: a
// definition line is also a usage sighting of every concept it names. Lines
// with leading whitespace continue the previous unindented line's block, so
// a concept mentioned only in an indented body still anchors at the block's
// first line.
func extractUsages(path string, lines []string, tags []SectionTag) []Occurrence {
	var usages []Occurrence
	var b block

	flush := func() {
		if !b.open {
			return
		}
		b.open = false
		text := b.text.String()
		seen := make(map[string]bool)
		for _, m := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
			name := text[m[2]:m[3]]
			if seen[name] {
				continue
			}
			seen[name] = true
			usages = append(usages, Occurrence{
				Name:         name,
				DocumentPath: path,
				Line:         b.anchorLine,
				Column:       m[0],
				RawContent:   text,
				Section:      b.section,
			})
		}
	}

	for i, line := range lines {
		if IsHeaderLine(line) {
			// A header closes the current block and never joins one.
			flush()
			continue
		}
		if hasLeadingWhitespace(line) && b.open {
			b.appendLine(line)
			continue
		}
		// Unindented line, or an indented line with no block to join
		// (e.g. directly under a header): anchor a fresh block here.
		flush()
		b.start(i, tags[i].Section, line)
	}
	flush()

	return usages
}

func hasLeadingWhitespace(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}
