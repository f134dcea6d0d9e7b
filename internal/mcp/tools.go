package mcp

// FindDefinitionInput defines the input schema for the find_definition tool.
type FindDefinitionInput struct {
	Name string `json:"name" jsonschema:"the concept name to locate, without the wrapping colons"`
}

// FindUsagesInput defines the input schema for the find_usages tool.
type FindUsagesInput struct {
	Name string `json:"name" jsonschema:"the concept name whose usage sites to list"`
}

// OccurrenceOutput is one concept location in tool output.
type OccurrenceOutput struct {
	Name         string `json:"name"`
	DocumentPath string `json:"document_path"`
	Line         int    `json:"line" jsonschema:"zero-based line of the occurrence anchor"`
	Column       int    `json:"column" jsonschema:"zero-based offset of the opening colon"`
	Section      string `json:"section,omitempty"`
	RawContent   string `json:"raw_content,omitempty"`
}

// OccurrencesOutput defines the output schema for lookup tools.
type OccurrencesOutput struct {
	Occurrences []OccurrenceOutput `json:"occurrences"`
}

// RenameConceptInput defines the input schema for the rename_concept tool.
type RenameConceptInput struct {
	OldName string `json:"old_name" jsonschema:"the concept to rename"`
	NewName string `json:"new_name" jsonschema:"the replacement name; letters, digits, '.', '-', '_', '+'"`
	Write   bool   `json:"write,omitempty" jsonschema:"apply the plan to disk instead of returning it dry-run"`
}

// ReplacementOutput is one textual substitution in a rename plan.
type ReplacementOutput struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Length  int    `json:"length"`
	NewText string `json:"new_text"`
}

// DocumentBatchOutput groups replacements by document.
type DocumentBatchOutput struct {
	DocumentPath string              `json:"document_path"`
	Replacements []ReplacementOutput `json:"replacements"`
}

// RenamePlanOutput defines the output schema for the rename_concept tool.
type RenamePlanOutput struct {
	OldName string                `json:"old_name"`
	NewName string                `json:"new_name"`
	Applied bool                  `json:"applied"`
	Batches []DocumentBatchOutput `json:"batches"`
}

// SymbolAtInput defines the input schema for the symbol_at tool.
type SymbolAtInput struct {
	DocumentPath string `json:"document_path" jsonschema:"absolute path of the document under the cursor"`
	Line         int    `json:"line" jsonschema:"zero-based cursor line"`
	Column       int    `json:"column" jsonschema:"zero-based cursor column"`
}

// SymbolAtOutput defines the output schema for the symbol_at tool.
type SymbolAtOutput struct {
	Name string `json:"name"`
	Kind string `json:"kind" jsonschema:"definition or usage"`
}

// IndexStatusInput defines the input schema for the index_status tool.
type IndexStatusInput struct{}

// IndexStatusOutput defines the output schema for the index_status tool.
type IndexStatusOutput struct {
	DefinedConcepts int               `json:"defined_concepts"`
	UsedConcepts    int               `json:"used_concepts"`
	Definitions     int               `json:"definitions"`
	Usages          int               `json:"usages"`
	DocumentErrors  map[string]string `json:"document_errors,omitempty"`
}

// ReindexInput defines the input schema for the reindex tool.
type ReindexInput struct{}

// ReindexOutput defines the output schema for the reindex tool.
type ReindexOutput struct {
	DefinedConcepts int `json:"defined_concepts"`
	Usages          int `json:"usages"`
}
