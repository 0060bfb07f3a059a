package app

import (
	"fmt"
	"log/slog"

	"github.com/sha1n/mcp-arc42-server/internal/format"
	"github.com/sha1n/mcp-arc42-server/internal/language"
	"github.com/sha1n/mcp-arc42-server/internal/templates"
)

// Catalog holds the built-in formats and languages and the provider over them.
// It is read-only once built.
type Catalog struct {
	Formats         *format.Registry
	Languages       *language.Registry
	FormatFactory   *format.Factory
	LanguageFactory *language.Factory
	Provider        *templates.Provider
}

// NewCatalog loads every built-in format and language. A nil logger means slog.Default().
func NewCatalog(logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	formats := format.NewDefaultRegistry()
	languages, err := language.NewDefaultRegistry(formats)
	if err != nil {
		return nil, fmt.Errorf("failed to load languages: %w", err)
	}

	languageFactory := language.NewFactory(languages, logger)
	formatFactory := format.NewFactory(formats, logger)

	return &Catalog{
		Formats:         formats,
		Languages:       languages,
		FormatFactory:   formatFactory,
		LanguageFactory: languageFactory,
		Provider:        templates.NewProvider(languageFactory, formatFactory),
	}, nil
}
