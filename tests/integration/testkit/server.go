package testkit

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sha1n/mcp-arc42-server/internal/app"
	"github.com/sha1n/mcp-arc42-server/internal/config"
	"github.com/spf13/pflag"
)

// Property keys published by ServerService.Start
const (
	PropSSEURL    = "sse_url"
	PropHealthURL = "health_url"
	PropWorkspace = "workspace"
)

const shutdownTimeout = 5 * time.Second

// ServerOptions configures ServerService. The zero value serves SSE on an
// ephemeral localhost port without authentication.
type ServerOptions struct {
	AuthType  string
	APIKeys   []string
	Workspace string
}

// ServerService runs the arc42 MCP server over SSE in-process.
type ServerService struct {
	flags *pflag.FlagSet

	srv     *http.Server
	cleanup func()
	served  chan error
}

// NewServerService creates a service configured through the same flags the CLI reads.
func NewServerService(opts ServerOptions) *ServerService {
	return &ServerService{flags: serverFlags(opts)}
}

func serverFlags(opts ServerOptions) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	app.RegisterFlags(flags)

	authType := opts.AuthType
	if authType == "" {
		authType = config.AuthTypeNone
	}

	_ = flags.Set("transport", "sse")
	_ = flags.Set("host", "localhost")
	_ = flags.Set("port", "0")
	_ = flags.Set("auth-type", authType)
	if opts.Workspace != "" {
		_ = flags.Set("workspace", opts.Workspace)
	}
	for _, key := range opts.APIKeys {
		_ = flags.Set("auth-api-keys", key)
	}
	return flags
}

// Start loads and validates settings the way the CLI does, then serves
// until Stop.
func (s *ServerService) Start() (map[string]any, error) {
	settings, err := config.LoadSettingsWithFlags(s.flags)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateSettings(settings); err != nil {
		return nil, err
	}

	mcpServer, cleanup, err := app.CreateMCPServer(settings, "test")
	if err != nil {
		return nil, err
	}
	s.cleanup = cleanup

	srv, err := app.NewSSEServer(mcpServer, settings)
	if err != nil {
		s.runCleanup()
		return nil, err
	}

	l, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		s.runCleanup()
		return nil, err
	}

	s.srv = srv
	s.served = make(chan error, 1)
	go func() {
		s.served <- srv.Serve(l)
	}()

	base := fmt.Sprintf("http://%s", l.Addr().String())
	return map[string]any{
		PropSSEURL:    base + "/sse",
		PropHealthURL: base + "/health",
		PropWorkspace: settings.Workspace,
	}, nil
}

func (s *ServerService) Stop() error {
	defer s.runCleanup()
	if s.srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		_ = s.srv.Close()
		return err
	}
	if err := <-s.served; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *ServerService) runCleanup() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}
