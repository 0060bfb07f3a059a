package language

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// ErrNoDefault indicates that the default locale is not registered, so an
// unknown language cannot be substituted.
var ErrNoDefault = errors.New("no default language registered")

// aliases maps common spellings (trimmed, uppercase) to canonical codes.
var aliases = map[string]Code{
	"EN":    EN,
	"DE":    DE,
	"CZ":    CZ,
	"CS":    CZ,
	"ES":    ES,
	"FR":    FR,
	"IT":    IT,
	"NL":    NL,
	"PT":    PT,
	"RU":    RU,
	"UKR":   UKR,
	"UK":    UKR,
	"UA":    UKR,
	"ZH":    ZH,
	"CN":    ZH,
	"EN-US": EN,
	"EN-GB": EN,
	"PT-BR": PT,
	"PT-PT": PT,
	"ZH-CN": ZH,
	"ZH-TW": ZH,
}

// baseLanguages maps ISO 639-1 base languages to locale codes.
var baseLanguages = map[string]Code{
	"en": EN,
	"de": DE,
	"cs": CZ,
	"es": ES,
	"fr": FR,
	"it": IT,
	"nl": NL,
	"pt": PT,
	"ru": RU,
	"uk": UKR,
	"zh": ZH,
}

// Factory resolves user supplied language codes to registered strategies.
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

// NormalizeCode trims, uppercases and resolves aliases and BCP 47 tags
// ("de-AT", "pt_BR", "deu"). Unrecognized input is returned uppercased.
func (f *Factory) NormalizeCode(code string) Code {
	c := strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := resolve(c); ok {
		return canonical
	}
	return Code(c)
}

func resolve(c string) (Code, bool) {
	if canonical, ok := aliases[c]; ok {
		return canonical, true
	}
	if c == "" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(c, "_", "-"))
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", false
	}
	canonical, ok := baseLanguages[base.String()]
	return canonical, ok
}

// Create returns the strategy for code or the registry's descriptive error.
func (f *Factory) Create(code string) (Strategy, error) {
	return f.registry.GetOrError(string(f.NormalizeCode(code)))
}

// CreateWithFallback returns the strategy for code, substituting the default
// locale with a warning when code is unknown. It only fails when the default
// locale itself is not registered.
func (f *Factory) CreateWithFallback(code string) (Strategy, error) {
	normalized := f.NormalizeCode(code)
	if s, ok := f.registry.Get(string(normalized)); ok {
		return s, nil
	}

	def, ok := f.registry.Default()
	if !ok {
		return nil, fmt.Errorf("language %q is not supported and %w", code, ErrNoDefault)
	}

	f.logger.Warn("Unknown language, falling back to default locale",
		"requested", code,
		"fallback", def.Code())
	return def, nil
}

// IsSupported reports whether code (after normalization) is registered.
func (f *Factory) IsSupported(code string) bool {
	return f.registry.IsSupported(string(f.NormalizeCode(code)))
}

// AvailableCodes returns the registered language codes.
func (f *Factory) AvailableCodes() []Code {
	return f.registry.AvailableCodes()
}

// Default returns the default locale strategy.
func (f *Factory) Default() (Strategy, error) {
	def, ok := f.registry.Default()
	if !ok {
		return nil, fmt.Errorf("%w (expected %q)", ErrNoDefault, DefaultCode)
	}
	return def, nil
}

// DefaultCode returns the default locale code regardless of registration state.
func (f *Factory) DefaultCode() Code {
	return DefaultCode
}

// Aliases returns every accepted alias, sorted.
func (f *Factory) Aliases() []string {
	return slices.Sorted(maps.Keys(aliases))
}

// ResolveAlias returns the canonical code for an alias or BCP 47 tag.
// Unlike NormalizeCode it reports unknown input instead of passing it through.
func (f *Factory) ResolveAlias(code string) (Code, bool) {
	return resolve(strings.ToUpper(strings.TrimSpace(code)))
}
