package document

import (
	"regexp"
	"strings"
)

// headerPattern matches a section header line after trimming:
// exactly three asterisks, the section name (no asterisks), three asterisks.
var headerPattern = regexp.MustCompile(`^\*\*\*([^*]+)\*\*\*$`)

// IsHeaderLine reports whether a raw line is a section header.
func IsHeaderLine(line string) bool {
	return headerPattern.MatchString(strings.TrimSpace(line))
}

// HeaderName extracts the section name from a header line.
// Returns the inner text with markers stripped, trimmed and lowercased,
// and false if the line is not a header.
func HeaderName(line string) (string, bool) {
	m := headerPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(m[1])), true
}

// SectionTag associates a line index with the section it belongs to.
type SectionTag struct {
	LineIndex int
	Section   string
}

// Sections tags every line with its enclosing section in a single forward
// pass. A header line opens a new section and is tagged with it; lines
// before the first header carry the empty section. Headers never nest: a
// new header fully replaces the prior section context.
func Sections(lines []string) []SectionTag {
	tags := make([]SectionTag, len(lines))
	current := ""
	for i, line := range lines {
		if name, ok := HeaderName(line); ok {
			current = name
		}
		tags[i] = SectionTag{LineIndex: i, Section: current}
	}
	return tags
}

// SectionAt returns the section enclosing the given line, walking backward
// to the nearest preceding header. Lines before any header (or out-of-range
// indexes) yield the empty section.
func SectionAt(lines []string, lineIndex int) string {
	if lineIndex >= len(lines) {
		lineIndex = len(lines) - 1
	}
	for i := lineIndex; i >= 0; i-- {
		if name, ok := HeaderName(lines[i]); ok {
			return name
		}
	}
	return ""
}
