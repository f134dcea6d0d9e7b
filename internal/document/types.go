// Package document parses plain documents: section headers, definition
// list items, inline concept tokens, and indentation-continuation blocks.
// All parsing is a pure function of the document text; the package holds
// no state between calls.
package document

// Occurrence is one recorded sighting of a concept token in a document.
type Occurrence struct {
	// Name is the bare concept identifier, without the wrapping colons.
	Name string `json:"name"`

	// DocumentPath is the absolute path of the owning document.
	DocumentPath string `json:"document_path"`

	// Line is the zero-based line of the occurrence's anchor character.
	// For definitions this is the definition line itself; for usages it is
	// the first line of the continuation block the token was found in.
	Line int `json:"line"`

	// Column is the zero-based offset of the token's opening colon.
	// For definitions it is an offset within the raw source line; for
	// usages it is an offset within the joined continuation-block text.
	Column int `json:"column"`

	// RawContent is the exact source span the occurrence was extracted
	// from: a single line for definitions, the joined block text for
	// usages. Presentation only, never an identity field.
	RawContent string `json:"raw_content"`

	// Section is the lowercased name of the enclosing section, or empty
	// when the occurrence sits outside any recognized section.
	Section string `json:"section,omitempty"`
}

// Extraction holds the ordered result of extracting one document.
type Extraction struct {
	// Definitions are concepts declared via list items inside a
	// "definitions" section, in source order.
	Definitions []Occurrence `json:"definitions"`

	// Usages are concept sightings from anywhere in the document, one per
	// continuation block per distinct name, in source order.
	Usages []Occurrence `json:"usages"`
}
