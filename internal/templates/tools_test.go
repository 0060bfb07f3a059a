package templates

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
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

func TestGenerateTemplateHandler(t *testing.T) {
	p, _ := newTestProvider(t)
	dir := writeWorkspaceConfig(t, "language: DE\nformat: asciidoc\n")
	handler := NewGenerateTemplateHandler(p, dir)

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, GenerateTemplateArgument{Section: "3"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected error result: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "= 3. Kontextabgrenzung") {
		t.Errorf("Expected default workspace config to apply, got:\n%s", resultText(t, result))
	}

	other := t.TempDir()
	result, _, _ = handler.Handle(context.Background(), &mcp.CallToolRequest{}, GenerateTemplateArgument{
		Section:   "03_context_and_scope",
		Workspace: other,
	})
	if !strings.Contains(resultText(t, result), "# 3. Context and Scope") {
		t.Errorf("Expected explicit workspace to override the default, got:\n%s", resultText(t, result))
	}
}

func TestGenerateTemplateHandler_InvalidSection(t *testing.T) {
	p, _ := newTestProvider(t)
	handler := NewGenerateTemplateHandler(p, "")

	result, _, err := handler.Handle(context.Background(), &mcp.CallToolRequest{}, GenerateTemplateArgument{Section: "13"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Error("Expected error result")
	}
	if !strings.Contains(resultText(t, result), "Invalid section") {
		t.Errorf("Unexpected message: %s", resultText(t, result))
	}
}

func TestWorkflowGuideHandler(t *testing.T) {
	p, _ := newTestProvider(t)
	handler := NewWorkflowGuideHandler(p)

	result, _, _ := handler.Handle(context.Background(), &mcp.CallToolRequest{}, WorkflowGuideArgument{Language: "ZH"})
	if result.IsError {
		t.Fatalf("Unexpected error result: %s", resultText(t, result))
	}
	if !strings.HasPrefix(resultText(t, result), "# arc42 文档编写流程") {
		t.Errorf("Unexpected guide:\n%s", resultText(t, result))
	}
}

func TestSectionMetadataHandler(t *testing.T) {
	p, _ := newTestProvider(t)
	handler := NewSectionMetadataHandler(p)

	result, _, _ := handler.Handle(context.Background(), &mcp.CallToolRequest{}, SectionMetadataArgument{
		Section:  "12_glossary",
		Language: "ru",
	})
	if result.IsError {
		t.Fatalf("Unexpected error result: %s", resultText(t, result))
	}

	var meta SectionMetadata
	if err := json.Unmarshal([]byte(resultText(t, result)), &meta); err != nil {
		t.Fatalf("Expected JSON response: %v", err)
	}
	if meta.Title != "Глоссарий" || meta.LanguageCode != "RU" || meta.Number != 12 {
		t.Errorf("Unexpected metadata: %+v", meta)
	}
}

func TestListLanguagesHandler(t *testing.T) {
	p, _ := newTestProvider(t)
	handler := NewListLanguagesHandler(p)

	result, _, _ := handler.Handle(context.Background(), &mcp.CallToolRequest{}, ListLanguagesArgument{})

	var got Languages
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("Expected JSON response: %v", err)
	}
	if len(got.Languages) != 11 || len(got.Formats) != 2 {
		t.Errorf("Unexpected listing: %d languages, %d formats", len(got.Languages), len(got.Formats))
	}
}

func TestToolDefinitions(t *testing.T) {
	p, _ := newTestProvider(t)

	names := []string{
		NewWorkflowGuideHandler(p).GetToolDefinition().Name,
		NewGenerateTemplateHandler(p, "").GetToolDefinition().Name,
		NewSectionMetadataHandler(p).GetToolDefinition().Name,
		NewListLanguagesHandler(p).GetToolDefinition().Name,
	}
	want := []string{"arc42-workflow-guide", "generate-template", "get-section-metadata", "list-languages"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Tool %d name = %q, want %q", i, names[i], want[i])
		}
	}
}
