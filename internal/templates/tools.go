package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-arc42-server/internal/domain"
)

// WorkflowGuideArgument defines arc42-workflow-guide parameters.
type WorkflowGuideArgument struct {
	Language string `json:"language,omitempty" jsonschema_description:"Language code (e.g. EN, DE, pt-BR). Defaults to EN"`
	Format   string `json:"format,omitempty" jsonschema_description:"Output format: markdown (md) or asciidoc (adoc). Defaults to markdown"`
}

// GenerateTemplateArgument defines generate-template parameters.
type GenerateTemplateArgument struct {
	Section   string `json:"section" jsonschema_description:"Section id (e.g. 01_introduction_and_goals) or number (1-12)"`
	Language  string `json:"language,omitempty" jsonschema_description:"Language code. Defaults to the workspace configuration, then EN"`
	Format    string `json:"format,omitempty" jsonschema_description:"Output format. Defaults to the workspace configuration, then markdown"`
	Workspace string `json:"workspace,omitempty" jsonschema_description:"Workspace directory whose config.yaml supplies language and format"`
}

// SectionMetadataArgument defines get-section-metadata parameters.
type SectionMetadataArgument struct {
	Section  string `json:"section" jsonschema_description:"Section id or number (1-12)"`
	Language string `json:"language,omitempty" jsonschema_description:"Language code. Defaults to EN"`
}

// ListLanguagesArgument defines list-languages parameters (none).
type ListLanguagesArgument struct{}

// WorkflowGuideHandler handles the arc42-workflow-guide tool.
type WorkflowGuideHandler struct {
	provider *Provider
}

// NewWorkflowGuideHandler creates a new workflow guide handler.
func NewWorkflowGuideHandler(provider *Provider) *WorkflowGuideHandler {
	return &WorkflowGuideHandler{provider: provider}
}

// Handle renders the workflow guide.
func (h *WorkflowGuideHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args WorkflowGuideArgument) (*mcp.CallToolResult, any, error) {
	guide, err := h.provider.WorkflowGuideForFormat(args.Language, args.Format)
	if err != nil {
		return errorResult("Failed to render workflow guide: %s", err), nil, nil
	}
	return textResult(guide), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *WorkflowGuideHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "arc42-workflow-guide",
		Description: "Explain the arc42 documentation workflow and its twelve sections",
	}
}

// GenerateTemplateHandler handles the generate-template tool.
type GenerateTemplateHandler struct {
	provider         *Provider
	defaultWorkspace string
}

// NewGenerateTemplateHandler creates a new template handler. defaultWorkspace
// is consulted for language and format when the request names no workspace.
func NewGenerateTemplateHandler(provider *Provider, defaultWorkspace string) *GenerateTemplateHandler {
	return &GenerateTemplateHandler{
		provider:         provider,
		defaultWorkspace: defaultWorkspace,
	}
}

// Handle renders the template of one section.
func (h *GenerateTemplateHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args GenerateTemplateArgument) (*mcp.CallToolResult, any, error) {
	section, err := domain.ParseSection(args.Section)
	if err != nil {
		return errorResult("Invalid section: %s", err), nil, nil
	}

	workspace := strings.TrimSpace(args.Workspace)
	if workspace == "" {
		workspace = h.defaultWorkspace
	}

	template, err := h.provider.TemplateWithConfig(section, workspace, args.Language, args.Format)
	if err != nil {
		return errorResult("Failed to render template: %s", err), nil, nil
	}
	return textResult(template), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *GenerateTemplateHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate-template",
		Description: "Generate the arc42 template of a section in the requested language and format",
	}
}

// SectionMetadataHandler handles the get-section-metadata tool.
type SectionMetadataHandler struct {
	provider *Provider
}

// NewSectionMetadataHandler creates a new section metadata handler.
func NewSectionMetadataHandler(provider *Provider) *SectionMetadataHandler {
	return &SectionMetadataHandler{provider: provider}
}

// Handle returns the localized title and description of a section as JSON.
func (h *SectionMetadataHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SectionMetadataArgument) (*mcp.CallToolResult, any, error) {
	section, err := domain.ParseSection(args.Section)
	if err != nil {
		return errorResult("Invalid section: %s", err), nil, nil
	}

	meta, err := h.provider.SectionMetadata(section, args.Language)
	if err != nil {
		return errorResult("Failed to resolve section metadata: %s", err), nil, nil
	}
	return jsonResult(meta)
}

// GetToolDefinition returns the MCP tool definition.
func (h *SectionMetadataHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get-section-metadata",
		Description: "Get the localized title and description of an arc42 section",
	}
}

// ListLanguagesHandler handles the list-languages tool.
type ListLanguagesHandler struct {
	provider *Provider
}

// NewListLanguagesHandler creates a new list languages handler.
func NewListLanguagesHandler(provider *Provider) *ListLanguagesHandler {
	return &ListLanguagesHandler{provider: provider}
}

// Languages is the list-languages response.
type Languages struct {
	Languages []LanguageInfo `json:"languages"`
	Formats   []FormatInfo   `json:"formats"`
}

// Handle lists the available languages and formats as JSON.
func (h *ListLanguagesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ListLanguagesArgument) (*mcp.CallToolResult, any, error) {
	return jsonResult(Languages{
		Languages: h.provider.AvailableLanguages(),
		Formats:   h.provider.AvailableFormats(),
	})
}

// GetToolDefinition returns the MCP tool definition.
func (h *ListLanguagesHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list-languages",
		Description: "List the available template languages and output formats",
	}
}

// RegisterTools registers the template tools with an MCP server.
func RegisterTools(server *mcp.Server, provider *Provider, defaultWorkspace string) {
	guide := NewWorkflowGuideHandler(provider)
	mcp.AddTool(server, guide.GetToolDefinition(), guide.Handle)

	generate := NewGenerateTemplateHandler(provider, defaultWorkspace)
	mcp.AddTool(server, generate.GetToolDefinition(), generate.Handle)

	meta := NewSectionMetadataHandler(provider)
	mcp.AddTool(server, meta.GetToolDefinition(), meta.Handle)

	list := NewListLanguagesHandler(provider)
	mcp.AddTool(server, list.GetToolDefinition(), list.Handle)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(msg string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(msg, args...)},
		},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Failed to encode response: %s", err), nil, nil
	}
	return textResult(string(data)), nil, nil
}
