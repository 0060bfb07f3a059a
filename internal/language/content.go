package language

import (
	"embed"
	"fmt"
	"strings"

	"github.com/sha1n/mcp-arc42-server/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var contentFS embed.FS

// Content is the literal text of one locale, loaded from content/<code>.yaml.
type Content struct {
	Code       Code                              `yaml:"code"`
	Name       string                            `yaml:"name"`
	NativeName string                            `yaml:"nativeName"`
	Labels     Labels                            `yaml:"labels"`
	Sections   map[domain.Section]SectionContent `yaml:"sections"`
	Workflow   WorkflowContent                   `yaml:"workflow"`
	Readme     ReadmeContent                     `yaml:"readme"`
}

// Labels are short strings shared by all rendered documents.
type Labels struct {
	FurtherReading string `yaml:"furtherReading"`
}

// SectionContent describes one arc42 chapter.
type SectionContent struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Parts       []PartContent `yaml:"parts"`
}

// PartContent is a subsection of a chapter: a heading, guidance for the
// author and optionally the header row of an empty table to fill in.
type PartContent struct {
	Heading  string   `yaml:"heading"`
	Guidance string   `yaml:"guidance"`
	Table    []string `yaml:"table,omitempty"`
}

// WorkflowContent is the text of the documentation workflow guide.
type WorkflowContent struct {
	Title           string   `yaml:"title"`
	Intro           string   `yaml:"intro"`
	StepsHeading    string   `yaml:"stepsHeading"`
	Steps           []string `yaml:"steps"`
	SectionsHeading string   `yaml:"sectionsHeading"`
	TipsHeading     string   `yaml:"tipsHeading"`
	Tips            []string `yaml:"tips"`
}

// ReadmeContent is the text of a workspace README.
// Title contains the placeholder {project}.
type ReadmeContent struct {
	Title           string `yaml:"title"`
	DefaultProject  string `yaml:"defaultProject"`
	Intro           string `yaml:"intro"`
	ContentsHeading string `yaml:"contentsHeading"`
	AboutHeading    string `yaml:"aboutHeading"`
	About           string `yaml:"about"`
}

// LoadContent reads and validates the embedded content of a locale.
func LoadContent(code Code) (*Content, error) {
	path := "content/" + strings.ToLower(string(code)) + ".yaml"
	data, err := contentFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content for %s: %w", code, err)
	}

	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if c.Code != code {
		return nil, fmt.Errorf("%s declares code %q, want %q", path, c.Code, code)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content in %s: %w", path, err)
	}

	return &c, nil
}

// Validate checks that every section and every document has text.
func (c *Content) Validate() error {
	if c.Name == "" || c.NativeName == "" {
		return fmt.Errorf("name and nativeName are required")
	}
	if c.Labels.FurtherReading == "" {
		return fmt.Errorf("labels.furtherReading is required")
	}

	for _, s := range domain.Sections {
		sc, ok := c.Sections[s]
		if !ok {
			return fmt.Errorf("section %s is missing", s)
		}
		if sc.Title == "" || sc.Description == "" {
			return fmt.Errorf("section %s needs a title and a description", s)
		}
		if len(sc.Parts) == 0 {
			return fmt.Errorf("section %s has no parts", s)
		}
		for i, p := range sc.Parts {
			if p.Heading == "" || p.Guidance == "" {
				return fmt.Errorf("section %s part %d needs a heading and guidance", s, i+1)
			}
		}
	}
	for s := range c.Sections {
		if !s.IsValid() {
			return fmt.Errorf("unknown section %q", s)
		}
	}

	w := c.Workflow
	if w.Title == "" || w.Intro == "" || w.StepsHeading == "" || len(w.Steps) == 0 ||
		w.SectionsHeading == "" || w.TipsHeading == "" || len(w.Tips) == 0 {
		return fmt.Errorf("workflow is incomplete")
	}

	r := c.Readme
	if !strings.Contains(r.Title, projectPlaceholder) {
		return fmt.Errorf("readme.title must contain %s", projectPlaceholder)
	}
	if r.DefaultProject == "" || r.Intro == "" || r.ContentsHeading == "" || r.AboutHeading == "" || r.About == "" {
		return fmt.Errorf("readme is incomplete")
	}

	return nil
}

// Title returns the localized title of a section.
func (c *Content) Title(s domain.Section) string {
	return c.Sections[s].Title
}

// Description returns the localized description of a section.
func (c *Content) Description(s domain.Section) string {
	return c.Sections[s].Description
}
