// Package registry provides a code-keyed store of interchangeable strategies.
//
// Format and language strategies share this implementation; each supplies its
// own normalization (lowercase for formats, uppercase for languages) and its
// designated default code.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrNotRegistered indicates that no strategy is registered under a code.
var ErrNotRegistered = errors.New("is not registered")

// Strategy is anything identified by a canonical code.
type Strategy[K ~string] interface {
	Code() K
}

// Registry maps normalized codes to strategies.
//
// Registering a code that already exists replaces the previous entry
// (last registration wins). Registries are populated during startup and are
// read-only afterwards, so no locking is done.
type Registry[K ~string, S Strategy[K]] struct {
	kind        string
	normalize   func(string) K
	defaultCode K
	entries     map[K]S
}

// New creates an empty registry.
// kind names the strategy family in error messages ("format", "language").
func New[K ~string, S Strategy[K]](kind string, normalize func(string) K, defaultCode K) *Registry[K, S] {
	return &Registry[K, S]{
		kind:        kind,
		normalize:   normalize,
		defaultCode: defaultCode,
		entries:     make(map[K]S),
	}
}

// Register stores s under its normalized code and returns the registry for chaining.
func (r *Registry[K, S]) Register(s S) *Registry[K, S] {
	r.entries[r.normalize(string(s.Code()))] = s
	return r
}

// Get returns the strategy registered under code.
func (r *Registry[K, S]) Get(code string) (S, bool) {
	s, ok := r.entries[r.normalize(code)]
	return s, ok
}

// GetOrError is like Get but returns a descriptive error listing the
// registered codes when code is unknown.
func (r *Registry[K, S]) GetOrError(code string) (S, error) {
	s, ok := r.Get(code)
	if !ok {
		return s, fmt.Errorf("%s %q %w (available: %s)", r.kind, code, ErrNotRegistered, r.describeAvailable())
	}
	return s, nil
}

// All returns a snapshot of the registered strategies.
func (r *Registry[K, S]) All() map[K]S {
	return maps.Clone(r.entries)
}

// IsSupported reports whether a strategy is registered under code.
func (r *Registry[K, S]) IsSupported(code string) bool {
	_, ok := r.Get(code)
	return ok
}

// AvailableCodes returns the registered codes in sorted order.
func (r *Registry[K, S]) AvailableCodes() []K {
	return slices.Sorted(maps.Keys(r.entries))
}

// Size returns the number of registered strategies.
func (r *Registry[K, S]) Size() int {
	return len(r.entries)
}

// Clear removes all strategies and returns the registry for chaining.
func (r *Registry[K, S]) Clear() *Registry[K, S] {
	clear(r.entries)
	return r
}

// Default returns the strategy registered under the default code, if any.
func (r *Registry[K, S]) Default() (S, bool) {
	s, ok := r.entries[r.defaultCode]
	return s, ok
}

// DefaultCode returns the designated default code, whether or not it is registered.
func (r *Registry[K, S]) DefaultCode() K {
	return r.defaultCode
}

// Kind returns the strategy family name.
func (r *Registry[K, S]) Kind() string {
	return r.kind
}

func (r *Registry[K, S]) describeAvailable() string {
	codes := r.AvailableCodes()
	if len(codes) == 0 {
		return "none"
	}
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
