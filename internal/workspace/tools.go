package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-arc42-server/internal/domain"
)

// InitArgument defines arc42-init parameters.
type InitArgument struct {
	ProjectName string `json:"projectName" jsonschema_description:"Name of the documented project"`
	Workspace   string `json:"workspace,omitempty" jsonschema_description:"Workspace directory. Defaults to the server's workspace"`
	Language    string `json:"language,omitempty" jsonschema_description:"Language code of the templates. Defaults to EN"`
	Format      string `json:"format,omitempty" jsonschema_description:"markdown or asciidoc. Defaults to markdown"`
	Force       bool   `json:"force,omitempty" jsonschema_description:"Overwrite an existing workspace"`
}

// StatusArgument defines arc42-status parameters.
type StatusArgument struct {
	Workspace string `json:"workspace,omitempty" jsonschema_description:"Workspace directory. Defaults to the server's workspace"`
}

// GetSectionArgument defines get-section parameters.
type GetSectionArgument struct {
	Section   string `json:"section" jsonschema_description:"Section id (e.g. 05_building_block_view) or number (1-12)"`
	Workspace string `json:"workspace,omitempty" jsonschema_description:"Workspace directory. Defaults to the server's workspace"`
}

// UpdateSectionArgument defines update-section parameters.
type UpdateSectionArgument struct {
	Section   string `json:"section" jsonschema_description:"Section id or number (1-12)"`
	Content   string `json:"content" jsonschema_description:"New content in the workspace's format"`
	Workspace string `json:"workspace,omitempty" jsonschema_description:"Workspace directory. Defaults to the server's workspace"`
	Mode      string `json:"mode,omitempty" jsonschema_description:"replace (default) or append"`
}

// InitHandler handles the arc42-init tool.
type InitHandler struct {
	service *Service
}

// NewInitHandler creates a new init handler.
func NewInitHandler(service *Service) *InitHandler {
	return &InitHandler{service: service}
}

// Handle initializes a workspace.
func (h *InitHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args InitArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.ProjectName) == "" {
		return errorResult("Project name cannot be empty"), nil, nil
	}

	result, err := h.service.Init(ctx, InitOptions{
		Workspace:   args.Workspace,
		ProjectName: args.ProjectName,
		Language:    args.Language,
		Format:      args.Format,
		Force:       args.Force,
	})
	if err != nil {
		return errorResult("Failed to initialize workspace: %s", err), nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Initialized arc42 workspace for **%s** in `%s`\n\n", result.Config.ProjectName, result.Dir)
	fmt.Fprintf(&sb, "**Language**: %s\n", result.Config.Language)
	fmt.Fprintf(&sb, "**Format**: %s\n", result.Config.Format)
	fmt.Fprintf(&sb, "**arc42 version**: %s\n\n", result.Config.Arc42Version)
	sb.WriteString("Created files:\n")
	for _, f := range result.Files {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	if result.Replaced {
		sb.WriteString("\nThe previous workspace configuration and templates were overwritten.\n")
	}

	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *InitHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "arc42-init",
		Description: "Initialize an arc42 documentation workspace with templates for all twelve sections",
	}
}

// StatusHandler handles the arc42-status tool.
type StatusHandler struct {
	service *Service
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(service *Service) *StatusHandler {
	return &StatusHandler{service: service}
}

// Handle reports workspace progress as JSON.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgument) (*mcp.CallToolResult, any, error) {
	status, err := h.service.Status(args.Workspace)
	if err != nil {
		return errorResult("Failed to read workspace status: %s", err), nil, nil
	}
	return jsonResult(status)
}

// GetToolDefinition returns the MCP tool definition.
func (h *StatusHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "arc42-status",
		Description: "Show the documentation progress of an arc42 workspace",
	}
}

// GetSectionHandler handles the get-section tool.
type GetSectionHandler struct {
	service *Service
}

// NewGetSectionHandler creates a new get-section handler.
func NewGetSectionHandler(service *Service) *GetSectionHandler {
	return &GetSectionHandler{service: service}
}

// Handle returns the content of a section file.
func (h *GetSectionHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args GetSectionArgument) (*mcp.CallToolResult, any, error) {
	section, err := domain.ParseSection(args.Section)
	if err != nil {
		return errorResult("Invalid section: %s", err), nil, nil
	}

	s, err := h.service.ReadSection(args.Workspace, section)
	if err != nil {
		return errorResult("Failed to read section: %s", err), nil, nil
	}
	return textResult(s.Content), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *GetSectionHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get-section",
		Description: "Read the current content of an arc42 section from the workspace",
	}
}

// UpdateSectionHandler handles the update-section tool.
type UpdateSectionHandler struct {
	service *Service
}

// NewUpdateSectionHandler creates a new update-section handler.
func NewUpdateSectionHandler(service *Service) *UpdateSectionHandler {
	return &UpdateSectionHandler{service: service}
}

// Handle writes a section file.
func (h *UpdateSectionHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args UpdateSectionArgument) (*mcp.CallToolResult, any, error) {
	section, err := domain.ParseSection(args.Section)
	if err != nil {
		return errorResult("Invalid section: %s", err), nil, nil
	}
	if strings.TrimSpace(args.Content) == "" {
		return errorResult("Content cannot be empty"), nil, nil
	}
	mode, err := ParseMode(args.Mode)
	if err != nil {
		return errorResult("%s", err), nil, nil
	}

	s, err := h.service.UpdateSection(ctx, args.Workspace, section, args.Content, mode)
	if err != nil {
		return errorResult("Failed to update section: %s", err), nil, nil
	}

	return textResult(fmt.Sprintf("Updated %s (%s, %d bytes)", s.File, mode, len(s.Content))), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *UpdateSectionHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update-section",
		Description: "Replace or append to the content of an arc42 section in the workspace",
	}
}

// RegisterTools registers the workspace tools with an MCP server.
func RegisterTools(server *mcp.Server, service *Service) {
	initHandler := NewInitHandler(service)
	mcp.AddTool(server, initHandler.GetToolDefinition(), initHandler.Handle)

	status := NewStatusHandler(service)
	mcp.AddTool(server, status.GetToolDefinition(), status.Handle)

	get := NewGetSectionHandler(service)
	mcp.AddTool(server, get.GetToolDefinition(), get.Handle)

	update := NewUpdateSectionHandler(service)
	mcp.AddTool(server, update.GetToolDefinition(), update.Handle)
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
