// Package language provides per-locale arc42 content.
//
// A Strategy answers section titles and descriptions and renders templates,
// the workflow guide and the README for a requested format. Rendering is
// delegated to one Plugin per format; adding a locale means adding a content
// file and a manifest entry, nothing else.
package language

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/sha1n/mcp-arc42-server/internal/domain"
	"github.com/sha1n/mcp-arc42-server/internal/format"
	"github.com/sha1n/mcp-arc42-server/internal/registry"
)

// ErrFormatNotAvailable indicates that a strategy has no plugin for a format.
var ErrFormatNotAvailable = errors.New("format not available for language")

// Code is the canonical (uppercase) identifier of a locale.
type Code string

const (
	EN  Code = "EN"
	DE  Code = "DE"
	CZ  Code = "CZ"
	ES  Code = "ES"
	FR  Code = "FR"
	IT  Code = "IT"
	NL  Code = "NL"
	PT  Code = "PT"
	RU  Code = "RU"
	UKR Code = "UKR"
	ZH  Code = "ZH"

	// DefaultCode is the locale used when none is requested or the request is unknown.
	DefaultCode = EN
)

// SectionText is a localized string tagged with the section it belongs to.
type SectionText struct {
	Section domain.Section
	Text    string
}

// Strategy supplies localized arc42 content.
type Strategy interface {
	Code() Code
	// Name is the English name of the language.
	Name() string
	// NativeName is the name of the language in the language itself.
	NativeName() string

	SectionTitle(section domain.Section) SectionText
	SectionDescription(section domain.Section) SectionText

	Template(section domain.Section, f format.Code) (string, error)
	WorkflowGuide(f format.Code) (string, error)
	Readme(projectName string, f format.Code) (string, error)
}

// Plugin renders one locale's content in one format.
// All functions are pure and deterministic.
type Plugin struct {
	Template      func(section domain.Section) string
	WorkflowGuide func() string
	// Readme receives an empty projectName when none was given.
	Readme func(projectName string) string
}

// Definition holds everything needed to assemble a Strategy.
type Definition struct {
	Code         Code
	Name         string
	NativeName   string
	Titles       func(domain.Section) string
	Descriptions func(domain.Section) string
	Plugins      map[format.Code]Plugin
}

type strategy struct {
	code         Code
	name         string
	nativeName   string
	titles       func(domain.Section) string
	descriptions func(domain.Section) string
	plugins      map[format.Code]Plugin
}

// NewStrategy assembles a Strategy from lookup functions and a plugin table.
// The plugin table is copied; dispatch is a direct lookup by format code.
func NewStrategy(def Definition) Strategy {
	return &strategy{
		code:         def.Code,
		name:         def.Name,
		nativeName:   def.NativeName,
		titles:       def.Titles,
		descriptions: def.Descriptions,
		plugins:      maps.Clone(def.Plugins),
	}
}

func (s *strategy) Code() Code         { return s.code }
func (s *strategy) Name() string       { return s.name }
func (s *strategy) NativeName() string { return s.nativeName }

func (s *strategy) SectionTitle(section domain.Section) SectionText {
	return SectionText{Section: section, Text: s.titles(section)}
}

func (s *strategy) SectionDescription(section domain.Section) SectionText {
	return SectionText{Section: section, Text: s.descriptions(section)}
}

func (s *strategy) Template(section domain.Section, f format.Code) (string, error) {
	p, err := s.plugin(f)
	if err != nil {
		return "", err
	}
	return p.Template(section), nil
}

func (s *strategy) WorkflowGuide(f format.Code) (string, error) {
	p, err := s.plugin(f)
	if err != nil {
		return "", err
	}
	return p.WorkflowGuide(), nil
}

func (s *strategy) Readme(projectName string, f format.Code) (string, error) {
	p, err := s.plugin(f)
	if err != nil {
		return "", err
	}
	return p.Readme(projectName), nil
}

func (s *strategy) plugin(f format.Code) (Plugin, error) {
	p, ok := s.plugins[f]
	if !ok {
		return Plugin{}, fmt.Errorf("%w: %s has no %q plugin", ErrFormatNotAvailable, s.code, f)
	}
	return p, nil
}

// Registry stores language strategies by uppercase code.
type Registry = registry.Registry[Code, Strategy]

// NewRegistry creates an empty language registry whose default is DefaultCode.
func NewRegistry() *Registry {
	return registry.New[Code, Strategy]("language", normalizeRegistryCode, DefaultCode)
}

func normalizeRegistryCode(code string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(code)))
}
