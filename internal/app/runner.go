package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-arc42-server/internal/config"
	mcputil "github.com/sha1n/mcp-arc42-server/internal/mcp"
	"github.com/sha1n/mcp-arc42-server/internal/search"
	"github.com/sha1n/mcp-arc42-server/internal/workspace"
	"github.com/spf13/pflag"
)

// ServerName is the MCP implementation name reported to clients.
const ServerName = "arc42-mcp"

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(*mcp.Server, *config.Settings) error
	CreateServer      func(settings *config.Settings, version string) (*mcp.Server, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// stdout belongs to the stdio transport
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting arc42 MCP server", "version", version)
	config.Log(settings)

	mcpServer, cleanup, err := params.CreateServer(settings, version)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	if settings.Transport == "stdio" {
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	}

	slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
	return params.StartSSEServer(mcpServer, settings)
}

// CreateMCPServer builds the catalog, the workspace service and the search
// index, and registers all tools. The returned cleanup closes the index.
func CreateMCPServer(settings *config.Settings, version string) (*mcp.Server, func(), error) {
	logger := slog.Default()

	catalog, err := NewCatalog(logger)
	if err != nil {
		return nil, nil, err
	}

	svc := workspace.NewService(workspace.Settings{
		Root:        settings.Workspace,
		LockTimeout: settings.LockTimeout,
	}, catalog.Provider, logger)

	index, err := search.Build(catalog.Languages, catalog.Formats.AvailableCodes(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build template index: %w", err)
	}
	cleanup := func() {
		if err := index.Close(); err != nil {
			slog.Error("Failed to close template index", "error", err)
		}
	}

	slog.Info("Templates loaded",
		"languages", catalog.Languages.Size(),
		"formats", catalog.Formats.Size(),
		"indexed", index.Size())

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:             ServerName,
		Version:          version,
		Provider:         catalog.Provider,
		Workspace:        svc,
		Index:            index,
		Languages:        catalog.LanguageFactory,
		Formats:          catalog.FormatFactory,
		MaxResults:       settings.MaxResults,
		DefaultWorkspace: settings.Workspace,
	})

	return server, cleanup, nil
}
