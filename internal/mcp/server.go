package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-arc42-server/internal/format"
	"github.com/sha1n/mcp-arc42-server/internal/language"
	"github.com/sha1n/mcp-arc42-server/internal/search"
	"github.com/sha1n/mcp-arc42-server/internal/templates"
	"github.com/sha1n/mcp-arc42-server/internal/workspace"
)

const serverInstructions = "arc42 architecture documentation assistant. " +
	"Start with arc42-workflow-guide, create a workspace with arc42-init, " +
	"then fill in sections with generate-template, get-section and update-section."

// ServerConfig contains configuration for creating an MCP server.
// Tool groups whose dependency is nil are not registered.
type ServerConfig struct {
	Name    string
	Version string

	Provider  *templates.Provider
	Workspace *workspace.Service

	Index      *search.Index
	Languages  *language.Factory
	Formats    *format.Factory
	MaxResults int

	// DefaultWorkspace is used by generate-template when a call names none.
	DefaultWorkspace string
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	if cfg.Provider != nil {
		templates.RegisterTools(s, cfg.Provider, cfg.DefaultWorkspace)
	}

	if cfg.Workspace != nil {
		workspace.RegisterTools(s, cfg.Workspace)
	}

	if cfg.Index != nil && cfg.Languages != nil && cfg.Formats != nil {
		maxResults := cfg.MaxResults
		if maxResults <= 0 {
			maxResults = search.DefaultMaxResults
		}
		search.RegisterSearchTool(s, cfg.Index, cfg.Languages, cfg.Formats, maxResults)
	}

	return s
}
