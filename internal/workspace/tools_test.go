package workspace

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

func TestToolHandlers_Workflow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	result, _, err := NewInitHandler(svc).Handle(ctx, req, InitArgument{ProjectName: "Shop", Language: "it"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected init error: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "**Language**: IT") {
		t.Errorf("Unexpected init output:\n%s", resultText(t, result))
	}

	result, _, _ = NewUpdateSectionHandler(svc).Handle(ctx, req, UpdateSectionArgument{
		Section: "1",
		Content: "# 1. Introduzione\n\nNegozio online.",
	})
	if result.IsError {
		t.Fatalf("Unexpected update error: %s", resultText(t, result))
	}

	result, _, _ = NewGetSectionHandler(svc).Handle(ctx, req, GetSectionArgument{Section: "01_introduction_and_goals"})
	if got := resultText(t, result); got != "# 1. Introduzione\n\nNegozio online.\n" {
		t.Errorf("Unexpected section content: %q", got)
	}

	result, _, _ = NewStatusHandler(svc).Handle(ctx, req, StatusArgument{})
	if result.IsError {
		t.Fatalf("Unexpected status error: %s", resultText(t, result))
	}
	var status Status
	if err := json.Unmarshal([]byte(resultText(t, result)), &status); err != nil {
		t.Fatalf("Expected JSON status: %v", err)
	}
	if status.Edited != 1 || status.Config.ProjectName != "Shop" {
		t.Errorf("Unexpected status: edited=%d project=%q", status.Edited, status.Config.ProjectName)
	}
}

func TestToolHandlers_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	tests := []struct {
		name string
		call func() *mcp.CallToolResult
		want string
	}{
		{"init without project", func() *mcp.CallToolResult {
			r, _, _ := NewInitHandler(svc).Handle(ctx, req, InitArgument{})
			return r
		}, "Project name cannot be empty"},
		{"status before init", func() *mcp.CallToolResult {
			r, _, _ := NewStatusHandler(svc).Handle(ctx, req, StatusArgument{})
			return r
		}, "not initialized"},
		{"invalid section", func() *mcp.CallToolResult {
			r, _, _ := NewGetSectionHandler(svc).Handle(ctx, req, GetSectionArgument{Section: "0"})
			return r
		}, "Invalid section"},
		{"empty content", func() *mcp.CallToolResult {
			r, _, _ := NewUpdateSectionHandler(svc).Handle(ctx, req, UpdateSectionArgument{Section: "2", Content: " "})
			return r
		}, "Content cannot be empty"},
		{"invalid mode", func() *mcp.CallToolResult {
			r, _, _ := NewUpdateSectionHandler(svc).Handle(ctx, req, UpdateSectionArgument{Section: "2", Content: "x", Mode: "prepend"})
			return r
		}, "invalid update mode"},
		{"update before init", func() *mcp.CallToolResult {
			r, _, _ := NewUpdateSectionHandler(svc).Handle(ctx, req, UpdateSectionArgument{Section: "2", Content: "x"})
			return r
		}, "not initialized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.call()
			if !result.IsError {
				t.Fatal("Expected error result")
			}
			if !strings.Contains(resultText(t, result), tt.want) {
				t.Errorf("Expected %q in %q", tt.want, resultText(t, result))
			}
		})
	}
}

func TestToolDefinitions(t *testing.T) {
	svc, _ := newTestService(t)

	names := []string{
		NewInitHandler(svc).GetToolDefinition().Name,
		NewStatusHandler(svc).GetToolDefinition().Name,
		NewGetSectionHandler(svc).GetToolDefinition().Name,
		NewUpdateSectionHandler(svc).GetToolDefinition().Name,
	}
	want := []string{"arc42-init", "arc42-status", "get-section", "update-section"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Tool %d name = %q, want %q", i, names[i], want[i])
		}
	}
}
