package format

import (
	"fmt"
	"strings"

	"github.com/sha1n/mcp-arc42-server/internal/domain"
)

// MarkdownStrategy renders CommonMark with GitHub-style tables.
type MarkdownStrategy struct{}

// NewMarkdownStrategy creates the Markdown strategy.
func NewMarkdownStrategy() *MarkdownStrategy {
	return &MarkdownStrategy{}
}

func (MarkdownStrategy) Code() Code            { return Markdown }
func (MarkdownStrategy) Name() string          { return "Markdown" }
func (MarkdownStrategy) FileExtension() string { return ".md" }

func (MarkdownStrategy) Heading(text string, level int) string {
	return strings.Repeat("#", clampLevel(level)) + " " + text
}

func (MarkdownStrategy) Bold(text string) string   { return "**" + text + "**" }
func (MarkdownStrategy) Italic(text string) string { return "*" + text + "*" }

func (MarkdownStrategy) CodeBlock(code, lang string) string {
	return "```" + lang + "\n" + code + "\n```"
}

func (MarkdownStrategy) InlineCode(text string) string { return "`" + text + "`" }

func (MarkdownStrategy) UnorderedList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func (MarkdownStrategy) OrderedList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func (MarkdownStrategy) Link(text, url string) string { return "[" + text + "](" + url + ")" }
func (MarkdownStrategy) Image(alt, url string) string { return "![" + alt + "](" + url + ")" }

func (MarkdownStrategy) Table(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(markdownRow(headers))
	sb.WriteString("\n")

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	sb.WriteString(markdownRow(sep))

	for _, row := range rows {
		sb.WriteString("\n")
		sb.WriteString(markdownRow(padRow(row, len(headers))))
	}
	return sb.String()
}

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

func (MarkdownStrategy) Blockquote(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}

func (MarkdownStrategy) HorizontalRule() string { return "---" }

func (MarkdownStrategy) Anchor(id string) string {
	return `<a id="` + id + `"></a>`
}

func (MarkdownStrategy) ReadmeFilename() string { return "README.md" }

func (m MarkdownStrategy) SectionFilename(section domain.Section) string {
	return string(section) + m.FileExtension()
}
