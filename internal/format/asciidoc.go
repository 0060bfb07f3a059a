package format

import (
	"strings"

	"github.com/sha1n/mcp-arc42-server/internal/domain"
)

// AsciiDocStrategy renders AsciiDoc as understood by Asciidoctor.
type AsciiDocStrategy struct{}

// NewAsciiDocStrategy creates the AsciiDoc strategy.
func NewAsciiDocStrategy() *AsciiDocStrategy {
	return &AsciiDocStrategy{}
}

func (AsciiDocStrategy) Code() Code            { return AsciiDoc }
func (AsciiDocStrategy) Name() string          { return "AsciiDoc" }
func (AsciiDocStrategy) FileExtension() string { return ".adoc" }

func (AsciiDocStrategy) Heading(text string, level int) string {
	return strings.Repeat("=", clampLevel(level)) + " " + text
}

func (AsciiDocStrategy) Bold(text string) string   { return "*" + text + "*" }
func (AsciiDocStrategy) Italic(text string) string { return "_" + text + "_" }

func (AsciiDocStrategy) CodeBlock(code, lang string) string {
	block := "----\n" + code + "\n----"
	if lang == "" {
		return block
	}
	return "[source," + lang + "]\n" + block
}

func (AsciiDocStrategy) InlineCode(text string) string { return "`" + text + "`" }

func (AsciiDocStrategy) UnorderedList(items []string) string {
	return prefixLines(items, "* ")
}

func (AsciiDocStrategy) OrderedList(items []string) string {
	return prefixLines(items, ". ")
}

func prefixLines(items []string, prefix string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = prefix + item
	}
	return strings.Join(lines, "\n")
}

func (AsciiDocStrategy) Link(text, url string) string { return "link:" + url + "[" + text + "]" }
func (AsciiDocStrategy) Image(alt, url string) string { return "image::" + url + "[" + alt + "]" }

func (AsciiDocStrategy) Table(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString("[options=\"header\"]\n|===\n")
	sb.WriteString(asciidocRow(headers))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString("\n")
		sb.WriteString(asciidocRow(padRow(row, len(headers))))
	}
	sb.WriteString("\n|===")
	return sb.String()
}

func asciidocRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ")
}

func (AsciiDocStrategy) Blockquote(text string) string {
	return "[quote]\n____\n" + text + "\n____"
}

func (AsciiDocStrategy) HorizontalRule() string { return "'''" }

func (AsciiDocStrategy) Anchor(id string) string { return "[[" + id + "]]" }

func (AsciiDocStrategy) ReadmeFilename() string { return "README.adoc" }

func (a AsciiDocStrategy) SectionFilename(section domain.Section) string {
	return string(section) + a.FileExtension()
}
