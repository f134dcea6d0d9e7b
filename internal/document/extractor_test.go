package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "simple word", input: "widget", want: true},
		{name: "full alphabet", input: "a.b-c_d+1", want: true},
		{name: "digits only", input: "42", want: true},
		{name: "exclamation mark", input: "barbaz!", want: false},
		{name: "embedded space", input: "two words", want: false},
		{name: "embedded colon", input: "a:b", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.input))
		})
	}
}

func TestIsDefinitionLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "single concept", line: "- :widget:", want: true},
		{name: "co-definition", line: "- :widget:, :gadget:", want: true},
		{name: "indented list item", line: "  - :widget:", want: true},
		{name: "trailing whitespace", line: "- :widget:  ", want: true},
		{name: "missing comma separator", line: "- :a: :b:", want: false},
		{name: "comma without space", line: "- :a:,:b:", want: false},
		{name: "trailing prose", line: "- :widget: is a thing", want: false},
		{name: "no dash", line: ":widget:", want: false},
		{name: "invalid token character", line: "- :bar!:", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDefinitionLine(tt.line))
		})
	}
}

func TestTokens_PositionsAndOrder(t *testing.T) {
	toks := Tokens("a :widget: and a :color:.")

	require.Len(t, toks, 2)
	assert.Equal(t, Token{Name: "widget", Start: 2, End: 10}, toks[0])
	assert.Equal(t, Token{Name: "color", Start: 17, End: 24}, toks[1])
}

func TestSplitLines_ToleratesCRLF(t *testing.T) {
	lines := SplitLines("one\r\ntwo\nthree\r\n")

	assert.Equal(t, []string{"one", "two", "three", ""}, lines)
}

func TestExtract_DefinitionWithBody(t *testing.T) {
	// Given: a definitions section declaring a concept whose body uses it
	text := "***definitions***\n" +
		"- :widget:\n" +
		"  A :widget: has a :color:.\n"

	// When: extracting
	ext := Extract("glossary.plain", text)

	// Then: one definition, anchored at the opening colon of the list item
	require.Len(t, ext.Definitions, 1)
	def := ext.Definitions[0]
	assert.Equal(t, "widget", def.Name)
	assert.Equal(t, "glossary.plain", def.DocumentPath)
	assert.Equal(t, 1, def.Line)
	assert.Equal(t, 2, def.Column)
	assert.Equal(t, "- :widget:", def.RawContent)
	assert.Equal(t, "definitions", def.Section)

	// Then: the definition line plus its continuation form one usage block;
	// widget appears once despite two sightings, color once, both anchored
	// at the block's first line with columns into the joined text
	require.Len(t, ext.Usages, 2)

	widget := ext.Usages[0]
	assert.Equal(t, "widget", widget.Name)
	assert.Equal(t, 1, widget.Line)
	assert.Equal(t, 2, widget.Column)
	assert.Equal(t, "- :widget:\n  A :widget: has a :color:.", widget.RawContent)

	color := ext.Usages[1]
	assert.Equal(t, "color", color.Name)
	assert.Equal(t, 1, color.Line)
	assert.Equal(t, 30, color.Column)
}

func TestExtract_CoDefinition(t *testing.T) {
	text := "***definitions***\n" +
		"- :widget:, :gadget:\n"

	ext := Extract("doc.plain", text)

	require.Len(t, ext.Definitions, 2)
	assert.Equal(t, "widget", ext.Definitions[0].Name)
	assert.Equal(t, 2, ext.Definitions[0].Column)
	assert.Equal(t, "gadget", ext.Definitions[1].Name)
	assert.Equal(t, 12, ext.Definitions[1].Column)

	// Both list items share the raw line.
	assert.Equal(t, ext.Definitions[0].RawContent, ext.Definitions[1].RawContent)
}

func TestExtract_DuplicateDefinitionsPreserved(t *testing.T) {
	// Two documents (or lines) may define the same name; every declaration
	// is kept so collisions stay visible.
	text := "***definitions***\n" +
		"- :widget:\n" +
		"- :widget:\n"

	ext := Extract("doc.plain", text)

	require.Len(t, ext.Definitions, 2)
	assert.Equal(t, 1, ext.Definitions[0].Line)
	assert.Equal(t, 2, ext.Definitions[1].Line)
}

func TestExtract_DefinitionShapeOutsideDefinitionsSection(t *testing.T) {
	// Given: a definition-shaped list item in a non-definitions section
	text := "***notes***\n" +
		"- :widget:\n"

	ext := Extract("doc.plain", text)

	// Then: no definition, but the token still counts as a usage
	assert.Empty(t, ext.Definitions)
	require.Len(t, ext.Usages, 1)
	assert.Equal(t, "widget", ext.Usages[0].Name)
	assert.Equal(t, "notes", ext.Usages[0].Section)
}

func TestExtract_MalformedDefinitionLineSkipped(t *testing.T) {
	text := "***definitions***\n" +
		"- :bar!:\n" +
		"- :widget: is a thing\n"

	ext := Extract("doc.plain", text)

	assert.Empty(t, ext.Definitions)
}

func TestExtract_SeparateBlocksKeepSeparateOccurrences(t *testing.T) {
	// Given: the same concept used in two distinct blocks
	text := "The :widget: turns.\n" +
		"\n" +
		"The :widget: stops.\n"

	ext := Extract("doc.plain", text)

	// Then: de-duplication is per block, so both sightings survive
	require.Len(t, ext.Usages, 2)
	assert.Equal(t, 0, ext.Usages[0].Line)
	assert.Equal(t, 2, ext.Usages[1].Line)
}

func TestExtract_IndentedLineUnderHeaderAnchorsFreshBlock(t *testing.T) {
	// Given: an indented line directly under a header, with no unindented
	// line to continue
	text := "***notes***\n" +
		"  stray :widget: mention\n"

	ext := Extract("doc.plain", text)

	// Then: the indented line anchors its own block
	require.Len(t, ext.Usages, 1)
	assert.Equal(t, 1, ext.Usages[0].Line)
	assert.Equal(t, "notes", ext.Usages[0].Section)
}

func TestExtract_HeaderNeverJoinsBlock(t *testing.T) {
	// Given: a header line between two token-bearing lines
	text := "The :widget: turns.\n" +
		"***notes***\n" +
		"  indented under header with :color:\n"

	ext := Extract("doc.plain", text)

	// Then: the header closed the first block; the indented line anchors a
	// new one instead of continuing across the header
	require.Len(t, ext.Usages, 2)
	assert.Equal(t, "widget", ext.Usages[0].Name)
	assert.Equal(t, 0, ext.Usages[0].Line)
	assert.Equal(t, "color", ext.Usages[1].Name)
	assert.Equal(t, 2, ext.Usages[1].Line)
}

func TestExtract_LongContinuationBlock(t *testing.T) {
	// Given: an anchor with several indented continuation lines
	text := "Intro line.\n" +
		"  first continuation :alpha:\n" +
		"\tsecond continuation :beta:\n" +
		"  third mentions :alpha: again\n"

	ext := Extract("doc.plain", text)

	require.Len(t, ext.Usages, 2)
	for _, occ := range ext.Usages {
		assert.Equal(t, 0, occ.Line, "all usages anchor at the block's first line")
	}
	assert.Equal(t, "alpha", ext.Usages[0].Name)
	assert.Equal(t, "beta", ext.Usages[1].Name)
}

func TestExtract_EmptyDocument(t *testing.T) {
	ext := Extract("empty.plain", "")

	assert.Empty(t, ext.Definitions)
	assert.Empty(t, ext.Usages)
}
