// Package format maps semantic markup operations onto concrete text syntaxes.
//
// A Strategy renders headings, emphasis, lists, tables and the like for one
// syntax. Strategies are constructed once, hold no per-request state and are
// shared freely.
package format

import (
	"strings"

	"github.com/sha1n/mcp-arc42-server/internal/domain"
	"github.com/sha1n/mcp-arc42-server/internal/registry"
)

// Code is the canonical (lowercase) identifier of an output syntax.
type Code string

const (
	Markdown Code = "markdown"
	AsciiDoc Code = "asciidoc"

	// DefaultCode is the format used when none is requested or configured.
	DefaultCode = Markdown
)

// Codes lists the built-in format codes.
var Codes = []Code{Markdown, AsciiDoc}

// MinHeadingLevel and MaxHeadingLevel bound Heading; levels outside are clamped.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// Strategy renders semantic markup operations in one syntax.
// Every operation is total: implementations never reject input.
type Strategy interface {
	Code() Code
	Name() string
	// FileExtension includes the leading dot, e.g. ".md".
	FileExtension() string

	Heading(text string, level int) string
	Bold(text string) string
	Italic(text string) string
	CodeBlock(code, lang string) string
	InlineCode(text string) string
	UnorderedList(items []string) string
	OrderedList(items []string) string
	Link(text, url string) string
	Image(alt, url string) string
	Table(headers []string, rows [][]string) string
	Blockquote(text string) string
	HorizontalRule() string
	Anchor(id string) string

	ReadmeFilename() string
	SectionFilename(section domain.Section) string
}

// Registry stores format strategies by lowercase code.
type Registry = registry.Registry[Code, Strategy]

// NewRegistry creates an empty format registry whose default is DefaultCode.
func NewRegistry() *Registry {
	return registry.New[Code, Strategy]("format", normalizeRegistryCode, DefaultCode)
}

// NewDefaultRegistry creates a registry holding the Markdown and AsciiDoc strategies.
func NewDefaultRegistry() *Registry {
	return NewRegistry().
		Register(NewMarkdownStrategy()).
		Register(NewAsciiDocStrategy())
}

func normalizeRegistryCode(code string) Code {
	return Code(strings.ToLower(strings.TrimSpace(code)))
}

// clampLevel keeps heading levels inside [MinHeadingLevel, MaxHeadingLevel].
func clampLevel(level int) int {
	return max(MinHeadingLevel, min(level, MaxHeadingLevel))
}

// padRow returns row with exactly n cells.
func padRow(row []string, n int) []string {
	cells := make([]string, n)
	copy(cells, row)
	return cells
}
