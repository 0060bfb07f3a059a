package domain

// TemplateDocument represents one rendered arc42 template.
// It is the primary data structure stored in the Bleve search index.
type TemplateDocument struct {
	// ID is a unique identifier combining language, format and section.
	// Format: "DE/markdown/05_building_block_view"
	ID string `json:"id"`

	// Language is the canonical language code, e.g. "DE".
	Language string `json:"language"`

	// Format is the canonical format code, e.g. "asciidoc".
	Format string `json:"format"`

	// Section is the arc42 section identifier.
	Section string `json:"section"`

	// Title is the localized section title.
	Title string `json:"title"`

	// Content is the rendered template used for indexing and search snippets.
	Content string `json:"content"`
}

// Bleve field name constants for consistent field references in queries and mappings.
const (
	TemplateFieldID       = "id"
	TemplateFieldLanguage = "language"
	TemplateFieldFormat   = "format"
	TemplateFieldSection  = "section"
	TemplateFieldTitle    = "title"
	TemplateFieldContent  = "content"
)

// TemplateDocumentID builds the document ID for a (language, format, section) triple.
func TemplateDocumentID(language, format string, section Section) string {
	return language + "/" + format + "/" + string(section)
}
