// Package workspace manages arc42 documentation workspaces on disk.
//
// A workspace is a directory holding config.yaml, a README, an images/
// directory and one file per arc42 section under sections/. Writes are
// serialized across processes with a flock on .arc42.lock.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/mcp-arc42-server/internal/domain"
	"github.com/sha1n/mcp-arc42-server/internal/format"
	"github.com/sha1n/mcp-arc42-server/internal/language"
	"github.com/sha1n/mcp-arc42-server/internal/project"
	"github.com/sha1n/mcp-arc42-server/internal/templates"
)

const (
	// ImagesDir holds diagrams referenced from section files.
	ImagesDir = "images"

	// DefaultLockTimeout bounds how long a write waits for another process.
	DefaultLockTimeout = 10 * time.Second
)

var (
	// ErrAlreadyInitialized indicates that init would overwrite an existing workspace.
	ErrAlreadyInitialized = errors.New("workspace is already initialized")

	// ErrNotInitialized indicates a workspace without config.yaml.
	ErrNotInitialized = errors.New("workspace is not initialized")

	// ErrSectionNotFound indicates that a section file does not exist.
	ErrSectionNotFound = errors.New("section file not found")

	// ErrInvalidMode indicates an unknown update mode.
	ErrInvalidMode = errors.New("invalid update mode")
)

// Mode selects how UpdateSection combines new content with the file.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

// ParseMode resolves an update mode; empty means replace.
func ParseMode(value string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(value))); m {
	case "", ModeReplace:
		return ModeReplace, nil
	case ModeAppend:
		return ModeAppend, nil
	default:
		return "", fmt.Errorf("%w: %q (expected replace or append)", ErrInvalidMode, value)
	}
}

// Settings configures a Service.
type Settings struct {
	// Root is the workspace used when a request names none.
	Root        string
	LockTimeout time.Duration
}

// Service performs workspace operations.
type Service struct {
	settings Settings
	provider *templates.Provider
	logger   *slog.Logger
}

// NewService creates a workspace service. A nil logger means slog.Default().
func NewService(settings Settings, provider *templates.Provider, logger *slog.Logger) *Service {
	if settings.LockTimeout <= 0 {
		settings.LockTimeout = DefaultLockTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		settings: settings,
		provider: provider,
		logger:   logger,
	}
}

// Dir resolves a requested workspace path, defaulting to Root.
func (s *Service) Dir(workspace string) (string, error) {
	dir := strings.TrimSpace(workspace)
	if dir == "" {
		dir = s.settings.Root
	}
	if dir == "" {
		return "", fmt.Errorf("no workspace given and no default workspace configured")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace path: %w", err)
	}
	return abs, nil
}

// InitOptions are the arguments of Init.
type InitOptions struct {
	Workspace   string
	ProjectName string
	Language    string
	Format      string
	Force       bool
}

// InitResult describes a newly created workspace.
type InitResult struct {
	Dir      string         `json:"workspace"`
	Config   project.Config `json:"config"`
	Files    []string       `json:"files"`
	Replaced bool           `json:"replaced"`
}

// Init creates the workspace layout, the configuration, the README and a
// template file for every section. An existing workspace is only
// overwritten when Force is set.
func (s *Service) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	dir, err := s.Dir(opts.Workspace)
	if err != nil {
		return nil, err
	}

	ls, err := s.provider.ResolveLanguage(opts.Language)
	if err != nil {
		return nil, err
	}
	fs, err := s.provider.ResolveFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	result := &InitResult{
		Dir: dir,
		Config: project.Config{
			ProjectName:  strings.TrimSpace(opts.ProjectName),
			Language:     string(ls.Code()),
			Format:       string(fs.Code()),
			Arc42Version: project.Arc42Version,
			Created:      time.Now().UTC().Truncate(time.Second),
		},
	}

	err = withLock(ctx, dir, s.settings.LockTimeout, func() error {
		if project.Exists(dir) {
			if !opts.Force {
				return fmt.Errorf("%w: %s (use force to overwrite)", ErrAlreadyInitialized, dir)
			}
			result.Replaced = true
		}

		for _, sub := range []string{language.SectionsDir, ImagesDir} {
			if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
				return fmt.Errorf("failed to create %s directory: %w", sub, err)
			}
		}

		if err := project.Write(dir, &result.Config); err != nil {
			return err
		}
		result.Files = append(result.Files, project.Filename)

		readme, err := ls.Readme(result.Config.ProjectName, fs.Code())
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dir, fs.ReadmeFilename()), readme); err != nil {
			return err
		}
		result.Files = append(result.Files, fs.ReadmeFilename())

		for _, section := range domain.Sections {
			content, err := ls.Template(section, fs.Code())
			if err != nil {
				return err
			}
			rel := filepath.Join(language.SectionsDir, fs.SectionFilename(section))
			if err := writeFile(filepath.Join(dir, rel), content); err != nil {
				return err
			}
			result.Files = append(result.Files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Initialized arc42 workspace",
		"workspace", dir,
		"language", result.Config.Language,
		"format", result.Config.Format,
		"replaced", result.Replaced)
	return result, nil
}

// SectionStatus describes one section file.
type SectionStatus struct {
	Section  domain.Section `json:"section"`
	Title    string         `json:"title"`
	File     string         `json:"file"`
	Exists   bool           `json:"exists"`
	Size     int64          `json:"size"`
	Words    int            `json:"words"`
	Modified *time.Time     `json:"modified,omitempty"`
	// Edited is true once the file differs from the generated template.
	Edited bool `json:"edited"`
}

// Status summarizes the documentation progress of a workspace.
type Status struct {
	Dir      string          `json:"workspace"`
	Config   project.Config  `json:"config"`
	Sections []SectionStatus `json:"sections"`
	Edited   int             `json:"edited"`
	Progress int             `json:"progress"`
}

// Status reports per-section progress. Progress is the percentage of
// sections edited since init.
func (s *Service) Status(workspace string) (*Status, error) {
	dir, err := s.Dir(workspace)
	if err != nil {
		return nil, err
	}

	cfg, err := s.readConfig(dir)
	if err != nil {
		return nil, err
	}

	ls, err := s.provider.ResolveLanguage(cfg.Language)
	if err != nil {
		return nil, err
	}
	fs, err := s.sectionFormat(dir)
	if err != nil {
		return nil, err
	}

	status := &Status{Dir: dir, Config: *cfg}
	for _, section := range domain.Sections {
		rel := filepath.Join(language.SectionsDir, fs.SectionFilename(section))
		st := SectionStatus{
			Section: section,
			Title:   ls.SectionTitle(section).Text,
			File:    rel,
		}

		data, info, err := readFile(filepath.Join(dir, rel))
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			modified := info.ModTime().UTC()
			st.Exists = true
			st.Size = info.Size()
			st.Words = len(strings.Fields(string(data)))
			st.Modified = &modified

			template, err := ls.Template(section, fs.Code())
			if err != nil {
				return nil, err
			}
			st.Edited = strings.TrimSpace(string(data)) != strings.TrimSpace(template)
		}

		if st.Edited {
			status.Edited++
		}
		status.Sections = append(status.Sections, st)
	}
	status.Progress = status.Edited * 100 / len(domain.Sections)

	return status, nil
}

// Section is the content of a section file.
type Section struct {
	Section domain.Section `json:"section"`
	File    string         `json:"file"`
	Content string         `json:"content"`
}

// ReadSection returns the content of a section file.
func (s *Service) ReadSection(workspace string, section domain.Section) (*Section, error) {
	dir, err := s.Dir(workspace)
	if err != nil {
		return nil, err
	}
	if _, err := s.readConfig(dir); err != nil {
		return nil, err
	}
	fs, err := s.sectionFormat(dir)
	if err != nil {
		return nil, err
	}

	rel := filepath.Join(language.SectionsDir, fs.SectionFilename(section))
	data, _, err := readFile(filepath.Join(dir, rel))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, rel)
		}
		return nil, err
	}

	return &Section{Section: section, File: rel, Content: string(data)}, nil
}

// UpdateSection writes content to a section file in the workspace's
// configured format. Append separates the new content with a blank line.
func (s *Service) UpdateSection(ctx context.Context, workspace string, section domain.Section, content string, mode Mode) (*Section, error) {
	dir, err := s.Dir(workspace)
	if err != nil {
		return nil, err
	}
	if _, err := s.readConfig(dir); err != nil {
		return nil, err
	}
	fs, err := s.sectionFormat(dir)
	if err != nil {
		return nil, err
	}

	rel := filepath.Join(language.SectionsDir, fs.SectionFilename(section))
	path := filepath.Join(dir, rel)
	var written string

	err = withLock(ctx, dir, s.settings.LockTimeout, func() error {
		written = content
		if mode == ModeAppend {
			existing, _, err := readFile(path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if prefix := strings.TrimRight(string(existing), "\n"); prefix != "" {
				written = prefix + "\n\n" + content
			}
		}
		if !strings.HasSuffix(written, "\n") {
			written += "\n"
		}
		return writeFile(path, written)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Updated section", "workspace", dir, "section", section, "mode", mode)
	return &Section{Section: section, File: rel, Content: written}, nil
}

func (s *Service) readConfig(dir string) (*project.Config, error) {
	cfg, err := project.Read(dir)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s (run arc42-init first)", ErrNotInitialized, dir)
		}
		return nil, err
	}
	return cfg, nil
}

// sectionFormat returns the configured format of a workspace or the default.
func (s *Service) sectionFormat(dir string) (format.Strategy, error) {
	configured, _ := s.provider.ReadFormatFromConfig(dir)
	return s.provider.ResolveFormat(string(configured))
}

func readFile(path string) ([]byte, os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("%s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, info, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
