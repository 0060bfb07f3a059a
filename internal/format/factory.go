package format

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// ErrNoDefault indicates that the default format is not registered, so an
// unknown format cannot be substituted.
var ErrNoDefault = errors.New("no default format registered")

// aliases maps free-form user input (trimmed, lowercase) to canonical codes.
var aliases = map[string]Code{
	"markdown":      Markdown,
	"md":            Markdown,
	"mdown":         Markdown,
	"mkd":           Markdown,
	"mkdn":          Markdown,
	"mdwn":          Markdown,
	"mdtxt":         Markdown,
	"mdtext":        Markdown,
	"text/markdown": Markdown,
	"asciidoc":      AsciiDoc,
	"adoc":          AsciiDoc,
	"asc":           AsciiDoc,
	"ad":            AsciiDoc,
	"text/asciidoc": AsciiDoc,
}

// Factory resolves user supplied format strings to registered strategies.
type Factory struct {
	registry *Registry
	logger   *slog.Logger
}

// NewFactory creates a factory over registry. A nil logger means slog.Default().
func NewFactory(registry *Registry, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		registry: registry,
		logger:   logger,
	}
}

// NormalizeCode trims, lowercases and resolves aliases.
// Unrecognized input is returned lowercased so registry lookups can report it.
func (f *Factory) NormalizeCode(code string) Code {
	c := strings.ToLower(strings.TrimSpace(code))
	if canonical, ok := aliases[c]; ok {
		return canonical
	}
	return Code(c)
}

// Create returns the strategy for code or the registry's descriptive error.
func (f *Factory) Create(code string) (Strategy, error) {
	return f.registry.GetOrError(string(f.NormalizeCode(code)))
}

// CreateWithFallback returns the strategy for code, substituting the default
// format with a warning when code is unknown. It only fails when the default
// format itself is not registered.
func (f *Factory) CreateWithFallback(code string) (Strategy, error) {
	normalized := f.NormalizeCode(code)
	if s, ok := f.registry.Get(string(normalized)); ok {
		return s, nil
	}

	def, ok := f.registry.Default()
	if !ok {
		return nil, fmt.Errorf("format %q is not supported and %w", code, ErrNoDefault)
	}

	f.logger.Warn("Unknown format, falling back to default",
		"requested", code,
		"fallback", def.Code())
	return def, nil
}

// IsSupported reports whether code (after alias resolution) is registered.
func (f *Factory) IsSupported(code string) bool {
	return f.registry.IsSupported(string(f.NormalizeCode(code)))
}

// AvailableCodes returns the registered format codes.
func (f *Factory) AvailableCodes() []Code {
	return f.registry.AvailableCodes()
}

// Default returns the default format strategy.
func (f *Factory) Default() (Strategy, error) {
	def, ok := f.registry.Default()
	if !ok {
		return nil, fmt.Errorf("%w (expected %q)", ErrNoDefault, DefaultCode)
	}
	return def, nil
}

// DefaultCode returns the default format code regardless of registration state.
func (f *Factory) DefaultCode() Code {
	return DefaultCode
}

// Aliases returns every accepted alias, sorted.
func (f *Factory) Aliases() []string {
	return slices.Sorted(maps.Keys(aliases))
}

// ResolveAlias returns the canonical code for an alias.
// Unlike NormalizeCode it reports unknown input instead of passing it through.
func (f *Factory) ResolveAlias(code string) (Code, bool) {
	c, ok := aliases[strings.ToLower(strings.TrimSpace(code))]
	return c, ok
}

// AliasesFor returns the aliases that resolve to code, sorted.
func (f *Factory) AliasesFor(code Code) []string {
	var result []string
	for alias, target := range aliases {
		if target == code && alias != string(code) {
			result = append(result, alias)
		}
	}
	slices.Sort(result)
	return result
}
