package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-arc42-server/internal/format"
	"github.com/sha1n/mcp-arc42-server/internal/language"
)

// SearchArgument defines search-templates parameters.
type SearchArgument struct {
	Query    string `json:"query" jsonschema_description:"Search query (words, phrases in quotes)"`
	Language string `json:"language,omitempty" jsonschema_description:"Only search templates in this language (e.g. DE, pt-BR)"`
	Format   string `json:"format,omitempty" jsonschema_description:"Only search templates in this format (markdown or asciidoc)"`
}

// SearchHandler handles the search-templates tool.
type SearchHandler struct {
	index      *Index
	languages  *language.Factory
	formats    *format.Factory
	maxResults int
}

// NewSearchHandler creates a new search handler. Filters are resolved
// strictly: an unknown language or format is reported, not substituted.
func NewSearchHandler(index *Index, languages *language.Factory, formats *format.Factory, maxResults int) *SearchHandler {
	return &SearchHandler{
		index:      index,
		languages:  languages,
		formats:    formats,
		maxResults: maxResults,
	}
}

// Handle executes the search and returns formatted results.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	searchReq := Request{Query: args.Query, Size: h.maxResults}

	if strings.TrimSpace(args.Language) != "" {
		ls, err := h.languages.Create(args.Language)
		if err != nil {
			return errorResult("Invalid language filter: %s", err), nil, nil
		}
		searchReq.Language = ls.Code()
	}
	if strings.TrimSpace(args.Format) != "" {
		fs, err := h.formats.Create(args.Format)
		if err != nil {
			return errorResult("Invalid format filter: %s", err), nil, nil
		}
		searchReq.Format = fs.Code()
	}

	results, err := h.index.Search(ctx, searchReq)
	if err != nil {
		return errorResult("Search failed: %s", err), nil, nil
	}

	return formatResults(results, args.Query), nil, nil
}

func formatResults(results *Results, queryStr string) *mcp.CallToolResult {
	if results.Total == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("No templates found for query: %s", queryStr)},
			},
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d templates for '%s':\n\n", results.Total, queryStr)

	for i, hit := range results.Hits {
		fmt.Fprintf(&sb, "### %d. %s (%s, %s)\n", i+1, hit.Title, hit.Language, hit.Format)
		fmt.Fprintf(&sb, "**Section**: %s\n", hit.Section)
		fmt.Fprintf(&sb, "**Score**: %.4f\n\n", hit.Score)

		for _, fragment := range hit.Fragments {
			sb.WriteString("> ")
			sb.WriteString(strings.ReplaceAll(fragment, "\n", " "))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if results.Total > uint64(len(results.Hits)) {
		fmt.Fprintf(&sb, "... and %d more results\n", results.Total-uint64(len(results.Hits)))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
	}
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search-templates",
		Description: "Full-text search across all arc42 templates in every language and format",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, index *Index, languages *language.Factory, formats *format.Factory, maxResults int) {
	handler := NewSearchHandler(index, languages, formats, maxResults)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

func errorResult(msg string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(msg, args...)},
		},
		IsError: true,
	}
}
