package config

import (
	"context"
	"log/slog"
)

const masked = "****"

// Log logs the resolved settings, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger.
// Secrets are masked.
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == "sse" {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: auth.type", "value", s.Auth.Type)
	switch s.Auth.Type {
	case AuthTypeBasic:
		logger.InfoContext(ctx, "Config: auth.basic.username", "value", s.Auth.Basic.Username)
		logger.InfoContext(ctx, "Config: auth.basic.password", "value", masked)
	case AuthTypeAPIKey:
		logger.InfoContext(ctx, "Config: auth.api_keys", "count", len(s.Auth.APIKeys))
	}

	logger.InfoContext(ctx, "Config: workspace", "value", s.Workspace)
	logger.InfoContext(ctx, "Config: lock_timeout", "value", s.LockTimeout)
	logger.InfoContext(ctx, "Config: max_results", "value", s.MaxResults)
}

// LogValue implements slog.LogValuer with secrets masked.
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.Any("auth", s.Auth),
		slog.String("workspace", s.Workspace),
		slog.Duration("lock_timeout", s.LockTimeout),
		slog.Int("max_results", s.MaxResults),
	)
}

// LogValue implements slog.LogValuer with API keys masked.
func (a AuthSettings) LogValue() slog.Value {
	keys := make([]string, len(a.APIKeys))
	for i := range a.APIKeys {
		keys[i] = masked
	}
	return slog.GroupValue(
		slog.String("type", a.Type),
		slog.Any("basic", a.Basic),
		slog.Any("api_keys", keys),
	)
}

// LogValue implements slog.LogValuer with the password masked.
func (b BasicAuthSettings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", b.Username),
		slog.String("password", masked),
	)
}
