package language

import (
	"fmt"

	"github.com/sha1n/mcp-arc42-server/internal/format"
)

// manifest lists the built-in locales and, per format, the locale whose
// content renders that format. A locale without its own translation of a
// format borrows another locale's plugin.
var manifest = []struct {
	code    Code
	sources map[format.Code]Code
}{
	{EN, ownContent(EN)},
	{DE, ownContent(DE)},
	{CZ, ownContent(CZ)},
	{ES, ownContent(ES)},
	{FR, ownContent(FR)},
	{IT, ownContent(IT)},
	{NL, ownContent(NL)},
	{PT, ownContent(PT)},
	{RU, ownContent(RU)},
	{UKR, ownContent(UKR)},
	{ZH, map[format.Code]Code{format.Markdown: ZH, format.AsciiDoc: EN}},
}

func ownContent(code Code) map[format.Code]Code {
	return map[format.Code]Code{format.Markdown: code, format.AsciiDoc: code}
}

// BuiltinCodes returns the locale codes shipped with the server, in manifest order.
func BuiltinCodes() []Code {
	codes := make([]Code, len(manifest))
	for i, m := range manifest {
		codes[i] = m.code
	}
	return codes
}

// BuildStrategies loads the embedded content of every built-in locale and
// assembles one strategy per locale. Plugins are built once per
// (locale, format) pair and shared by reference where the manifest says so.
func BuildStrategies(formats *format.Registry) ([]Strategy, error) {
	contents := make(map[Code]*Content, len(manifest))
	for _, m := range manifest {
		c, err := LoadContent(m.code)
		if err != nil {
			return nil, err
		}
		contents[m.code] = c
	}

	type pluginKey struct {
		locale Code
		format format.Code
	}
	plugins := make(map[pluginKey]Plugin)

	pluginFor := func(locale Code, fc format.Code) (Plugin, error) {
		key := pluginKey{locale, fc}
		if p, ok := plugins[key]; ok {
			return p, nil
		}
		c, ok := contents[locale]
		if !ok {
			return Plugin{}, fmt.Errorf("no content for locale %s", locale)
		}
		fs, err := formats.GetOrError(string(fc))
		if err != nil {
			return Plugin{}, err
		}
		p := NewDocumentPlugin(c, fs)
		plugins[key] = p
		return p, nil
	}

	strategies := make([]Strategy, 0, len(manifest))
	for _, m := range manifest {
		c := contents[m.code]
		table := make(map[format.Code]Plugin, len(m.sources))
		for fc, source := range m.sources {
			p, err := pluginFor(source, fc)
			if err != nil {
				return nil, fmt.Errorf("failed to build %s plugin for %s: %w", fc, m.code, err)
			}
			table[fc] = p
		}

		strategies = append(strategies, NewStrategy(Definition{
			Code:         c.Code,
			Name:         c.Name,
			NativeName:   c.NativeName,
			Titles:       c.Title,
			Descriptions: c.Description,
			Plugins:      table,
		}))
	}

	return strategies, nil
}

// NewDefaultRegistry returns a registry holding every built-in locale.
func NewDefaultRegistry(formats *format.Registry) (*Registry, error) {
	strategies, err := BuildStrategies(formats)
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	for _, s := range strategies {
		r.Register(s)
	}
	return r, nil
}
