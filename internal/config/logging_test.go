package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLog(t *testing.T) {
	s := validSettings()
	Log(&s) // Should not panic
}

func TestLogWithLogger_StdioTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := validSettings()
	s.Host = "localhost"
	LogWithLogger(&s, logger)

	output := buf.String()
	if !strings.Contains(output, "transport") {
		t.Error("Expected 'transport' in log output")
	}
	if strings.Contains(output, "Config: host") {
		t.Error("Expected no host in log output for stdio transport")
	}
	if !strings.Contains(output, "value="+DefaultWorkspace) {
		t.Errorf("Expected workspace in log output, got: %s", output)
	}
	if !strings.Contains(output, "value=10s") {
		t.Errorf("Expected lock timeout in log output, got: %s", output)
	}
}

func TestLogWithLogger_SSETransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := validSettings()
	s.Transport = "sse"
	s.Host = "localhost"
	s.Port = 8080
	LogWithLogger(&s, logger)

	output := buf.String()
	if !strings.Contains(output, "Config: host") {
		t.Error("Expected host in log output for SSE transport")
	}
	if !strings.Contains(output, "Config: port") {
		t.Error("Expected port in log output for SSE transport")
	}
}

func TestLogWithLogger_BasicAuth(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := validSettings()
	s.Auth = AuthSettings{
		Type:  AuthTypeBasic,
		Basic: BasicAuthSettings{Username: "admin", Password: "secret"},
	}
	LogWithLogger(&s, logger)

	output := buf.String()
	if !strings.Contains(output, "admin") {
		t.Error("Expected username in log output")
	}
	if !strings.Contains(output, masked) {
		t.Error("Expected masked password in log output")
	}
	if strings.Contains(output, "secret") {
		t.Error("Password should be masked, not shown in plain text")
	}
}

func TestLogWithLogger_APIKeyAuth(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := validSettings()
	s.Auth = AuthSettings{Type: AuthTypeAPIKey, APIKeys: []string{"key1", "key2", "key3"}}
	LogWithLogger(&s, logger)

	if output := buf.String(); !strings.Contains(output, "count=3") {
		t.Errorf("Expected 'count=3' in log output, got: %s", output)
	}
}

func TestSettings_LogValueMasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := validSettings()
	s.Auth = AuthSettings{
		Type:    AuthTypeAPIKey,
		APIKeys: []string{"topsecretkey"},
		Basic:   BasicAuthSettings{Username: "user", Password: "hunter2"},
	}

	if s.LogValue().Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", s.LogValue().Kind())
	}

	logger.Info("settings", "settings", s)
	output := buf.String()
	for _, secret := range []string{"topsecretkey", "hunter2"} {
		if strings.Contains(output, secret) {
			t.Errorf("Secret %q leaked into log output: %s", secret, output)
		}
	}
	if !strings.Contains(output, "settings.auth.basic.username=user") {
		t.Errorf("Expected nested username attribute, got: %s", output)
	}
	if !strings.Contains(output, "settings.workspace="+DefaultWorkspace) {
		t.Errorf("Expected workspace attribute, got: %s", output)
	}
}
