// Package project reads and writes the per-workspace configuration file.
//
// Reads used during template resolution never fail: a missing file, an
// unparseable file, a missing key or an unexpected value all mean "not set".
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/mcp-arc42-server/internal/format"
	"gopkg.in/yaml.v3"
)

const (
	// Filename is the configuration file inside a workspace directory.
	Filename = "config.yaml"

	// Arc42Version is the template revision written into new workspaces.
	Arc42Version = "8.2"

	keyLanguage = "language"
	keyFormat   = "format"
)

// ErrNotFound indicates that the workspace has no configuration file.
var ErrNotFound = errors.New("project configuration not found")

// Config is the persisted project record.
type Config struct {
	ProjectName  string    `yaml:"projectName" json:"projectName"`
	Language     string    `yaml:"language" json:"language"`
	Format       string    `yaml:"format" json:"format"`
	Arc42Version string    `yaml:"arc42Version" json:"arc42Version"`
	Created      time.Time `yaml:"created" json:"created"`
}

// Path returns the configuration file path for a workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, Filename)
}

// Exists reports whether the workspace has a configuration file.
func Exists(workspace string) bool {
	info, err := os.Stat(Path(workspace))
	return err == nil && !info.IsDir()
}

// Read loads the full configuration. Unlike ReadLanguage and ReadFormat it
// reports failures.
func Read(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, workspace)
		}
		return nil, fmt.Errorf("failed to read project configuration: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", Path(workspace), err)
	}
	return &cfg, nil
}

// Write stores cfg in the workspace, creating the directory if needed.
func Write(workspace string, cfg *Config) error {
	if err := os.MkdirAll(workspace, 0755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode project configuration: %w", err)
	}

	if err := os.WriteFile(Path(workspace), data, 0644); err != nil {
		return fmt.Errorf("failed to write project configuration: %w", err)
	}
	return nil
}

// ReadLanguage returns the configured language, trimmed and uppercased.
// The value is not checked against the available languages.
func ReadLanguage(workspace string) (string, bool) {
	v, ok := readString(workspace, keyLanguage)
	if !ok {
		return "", false
	}
	return strings.ToUpper(v), true
}

// ReadFormat returns the configured format, trimmed and lowercased, when it is
// one of the canonical format codes. Aliases and other values count as not set.
func ReadFormat(workspace string) (format.Code, bool) {
	v, ok := readString(workspace, keyFormat)
	if !ok {
		return "", false
	}
	switch c := format.Code(strings.ToLower(v)); c {
	case format.Markdown, format.AsciiDoc:
		return c, true
	default:
		return "", false
	}
}

func readString(workspace, key string) (string, bool) {
	if strings.TrimSpace(workspace) == "" {
		return "", false
	}

	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		return "", false
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", false
	}

	s, ok := raw[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
