package search

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-arc42-server/internal/format"
	"github.com/sha1n/mcp-arc42-server/internal/language"
)

func newTestHandler(t *testing.T) *SearchHandler {
	t.Helper()
	idx, languages, formats := newTestIndex(t)
	return NewSearchHandler(
		idx,
		language.NewFactory(languages, testLogger()),
		format.NewFactory(formats, testLogger()),
		5,
	)
}

func handlerText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func TestSearchHandler_Results(t *testing.T) {
	h := newTestHandler(t)

	result, _, err := h.Handle(context.Background(), &mcp.CallToolRequest{}, SearchArgument{
		Query:    "glossaire",
		Language: "fr-CA",
		Format:   "md",
	})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected error: %s", handlerText(t, result))
	}

	text := handlerText(t, result)
	if !strings.Contains(text, "Glossaire (FR, markdown)") {
		t.Errorf("Unexpected results:\n%s", text)
	}
	if !strings.Contains(text, "**Section**: 12_glossary") {
		t.Errorf("Expected section id in results:\n%s", text)
	}
}

func TestSearchHandler_NoResults(t *testing.T) {
	h := newTestHandler(t)

	result, _, _ := h.Handle(context.Background(), &mcp.CallToolRequest{}, SearchArgument{Query: "zzyzxquux"})
	if result.IsError {
		t.Fatal("Expected a regular result")
	}
	if !strings.Contains(handlerText(t, result), "No templates found") {
		t.Errorf("Unexpected text: %s", handlerText(t, result))
	}
}

func TestSearchHandler_Validation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		args SearchArgument
		want string
	}{
		{"empty query", SearchArgument{Query: " "}, "Query cannot be empty"},
		{"unknown language", SearchArgument{Query: "x", Language: "ja"}, "Invalid language filter"},
		{"unknown format", SearchArgument{Query: "x", Format: "xml"}, "Invalid format filter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, _ := h.Handle(context.Background(), &mcp.CallToolRequest{}, tt.args)
			if !result.IsError {
				t.Fatal("Expected error result")
			}
			if !strings.Contains(handlerText(t, result), tt.want) {
				t.Errorf("Expected %q in %q", tt.want, handlerText(t, result))
			}
		})
	}
}

func TestSearchHandler_Definition(t *testing.T) {
	h := newTestHandler(t)
	if h.GetToolDefinition().Name != "search-templates" {
		t.Errorf("Unexpected tool name %q", h.GetToolDefinition().Name)
	}
}
