// Package templates resolves localized arc42 templates.
//
// The Provider combines the language and format factories with the
// workspace configuration: an explicit argument wins over the workspace
// config, which wins over the defaults.
package templates

import (
	"fmt"
	"strings"

	"github.com/sha1n/mcp-arc42-server/internal/domain"
	"github.com/sha1n/mcp-arc42-server/internal/format"
	"github.com/sha1n/mcp-arc42-server/internal/language"
	"github.com/sha1n/mcp-arc42-server/internal/project"
)

// SectionMetadata is the localized naming of a section.
type SectionMetadata struct {
	Section      domain.Section `json:"section"`
	Number       int            `json:"number"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	LanguageCode language.Code  `json:"language"`
}

// LanguageInfo describes an available language.
type LanguageInfo struct {
	Code       language.Code `json:"code"`
	Name       string        `json:"name"`
	NativeName string        `json:"nativeName"`
}

// FormatInfo describes an available format.
type FormatInfo struct {
	Code          format.Code `json:"code"`
	Name          string      `json:"name"`
	FileExtension string      `json:"fileExtension"`
	Aliases       []string    `json:"aliases"`
}

// Provider answers template requests. Empty string arguments mean "not given".
type Provider struct {
	languages *language.Factory
	formats   *format.Factory
}

// NewProvider creates a provider over the given factories.
func NewProvider(languages *language.Factory, formats *format.Factory) *Provider {
	return &Provider{
		languages: languages,
		formats:   formats,
	}
}

// TemplateForFormat renders a section template. Unknown languages and
// formats fall back to the defaults with a warning.
func (p *Provider) TemplateForFormat(section domain.Section, lang, f string) (string, error) {
	if !section.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSection, section)
	}

	ls, err := p.resolveLanguage(lang)
	if err != nil {
		return "", err
	}
	fs, err := p.resolveFormat(f)
	if err != nil {
		return "", err
	}

	return ls.Template(section, fs.Code())
}

// TemplateWithConfig renders a section template, taking the language and
// format not given explicitly from the workspace configuration.
func (p *Provider) TemplateWithConfig(section domain.Section, workspace, lang, f string) (string, error) {
	lang, f = p.Resolve(workspace, lang, f)
	return p.TemplateForFormat(section, lang, f)
}

// Resolve fills in language and format from the workspace configuration
// where they are empty. The results may still be empty or unknown.
func (p *Provider) Resolve(workspace, lang, f string) (string, string) {
	if strings.TrimSpace(lang) == "" {
		if configured, ok := p.ReadLanguageFromConfig(workspace); ok {
			lang = configured
		}
	}
	if strings.TrimSpace(f) == "" {
		if configured, ok := p.ReadFormatFromConfig(workspace); ok {
			f = string(configured)
		}
	}
	return lang, f
}

// SectionMetadata returns the localized title and description of a section.
func (p *Provider) SectionMetadata(section domain.Section, lang string) (*SectionMetadata, error) {
	if !section.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSection, section)
	}

	ls, err := p.resolveLanguage(lang)
	if err != nil {
		return nil, err
	}

	return &SectionMetadata{
		Section:      section,
		Number:       section.Number(),
		Title:        ls.SectionTitle(section).Text,
		Description:  ls.SectionDescription(section).Text,
		LanguageCode: ls.Code(),
	}, nil
}

// WorkflowGuideForFormat renders the documentation workflow guide.
func (p *Provider) WorkflowGuideForFormat(lang, f string) (string, error) {
	ls, err := p.resolveLanguage(lang)
	if err != nil {
		return "", err
	}
	fs, err := p.resolveFormat(f)
	if err != nil {
		return "", err
	}
	return ls.WorkflowGuide(fs.Code())
}

// ReadmeForFormat renders a workspace README.
func (p *Provider) ReadmeForFormat(lang, projectName, f string) (string, error) {
	ls, err := p.resolveLanguage(lang)
	if err != nil {
		return "", err
	}
	fs, err := p.resolveFormat(f)
	if err != nil {
		return "", err
	}
	return ls.Readme(projectName, fs.Code())
}

// AvailableLanguages lists the registered languages sorted by code.
func (p *Provider) AvailableLanguages() []LanguageInfo {
	codes := p.languages.AvailableCodes()
	infos := make([]LanguageInfo, 0, len(codes))
	for _, code := range codes {
		s, err := p.languages.Create(string(code))
		if err != nil {
			continue
		}
		infos = append(infos, LanguageInfo{
			Code:       s.Code(),
			Name:       s.Name(),
			NativeName: s.NativeName(),
		})
	}
	return infos
}

// AvailableFormats lists the registered formats sorted by code.
func (p *Provider) AvailableFormats() []FormatInfo {
	codes := p.formats.AvailableCodes()
	infos := make([]FormatInfo, 0, len(codes))
	for _, code := range codes {
		s, err := p.formats.Create(string(code))
		if err != nil {
			continue
		}
		infos = append(infos, FormatInfo{
			Code:          s.Code(),
			Name:          s.Name(),
			FileExtension: s.FileExtension(),
			Aliases:       p.formats.AliasesFor(s.Code()),
		})
	}
	return infos
}

// IsSupported reports whether lang resolves to a registered language.
func (p *Provider) IsSupported(lang string) bool {
	return p.languages.IsSupported(lang)
}

// ReadLanguageFromConfig returns the language configured for a workspace.
func (p *Provider) ReadLanguageFromConfig(workspace string) (string, bool) {
	return project.ReadLanguage(workspace)
}

// ReadFormatFromConfig returns the format configured for a workspace.
func (p *Provider) ReadFormatFromConfig(workspace string) (format.Code, bool) {
	return project.ReadFormat(workspace)
}

// ResolveFormat returns the strategy a format request resolves to.
func (p *Provider) ResolveFormat(f string) (format.Strategy, error) {
	return p.resolveFormat(f)
}

// ResolveLanguage returns the strategy a language request resolves to.
func (p *Provider) ResolveLanguage(lang string) (language.Strategy, error) {
	return p.resolveLanguage(lang)
}

func (p *Provider) resolveLanguage(lang string) (language.Strategy, error) {
	if strings.TrimSpace(lang) == "" {
		return p.languages.Default()
	}
	return p.languages.CreateWithFallback(lang)
}

func (p *Provider) resolveFormat(f string) (format.Strategy, error) {
	if strings.TrimSpace(f) == "" {
		return p.formats.Default()
	}
	return p.formats.CreateWithFallback(f)
}
