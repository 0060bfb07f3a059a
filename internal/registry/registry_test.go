package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type testCode string

type testStrategy struct {
	code  testCode
	label string
}

func (s *testStrategy) Code() testCode { return s.code }

func normalizeLower(code string) testCode {
	return testCode(strings.ToLower(strings.TrimSpace(code)))
}

func newTestRegistry() *Registry[testCode, *testStrategy] {
	return New[testCode, *testStrategy]("widget", normalizeLower, "alpha")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := newTestRegistry()
	alpha := &testStrategy{code: "alpha"}

	r.Register(alpha)

	got, ok := r.Get("alpha")
	if !ok {
		t.Fatal("Expected alpha to be registered")
	}
	if got != alpha {
		t.Error("Get returned a different strategy")
	}
	if r.Size() != 1 {
		t.Errorf("Size = %d, want 1", r.Size())
	}
}

func TestRegistry_CaseAndWhitespaceInsensitive(t *testing.T) {
	r := newTestRegistry().Register(&testStrategy{code: "alpha"})

	for _, code := range []string{"alpha", "ALPHA", "  Alpha  ", "\talpha\n"} {
		if _, ok := r.Get(code); !ok {
			t.Errorf("Expected Get(%q) to succeed", code)
		}
	}
}

func TestRegistry_RegisterNormalizesStrategyCode(t *testing.T) {
	r := newTestRegistry().Register(&testStrategy{code: " BETA "})

	if diff := cmp.Diff([]testCode{"beta"}, r.AvailableCodes()); diff != "" {
		t.Errorf("AvailableCodes mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Chaining(t *testing.T) {
	r := newTestRegistry().
		Register(&testStrategy{code: "alpha"}).
		Register(&testStrategy{code: "beta"})

	if r.Size() != 2 {
		t.Errorf("Size = %d, want 2", r.Size())
	}

	if r.Clear().Size() != 0 {
		t.Error("Expected Clear to empty the registry")
	}
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	first := &testStrategy{code: "alpha", label: "first"}
	second := &testStrategy{code: "ALPHA", label: "second"}

	r := newTestRegistry().Register(first).Register(second)

	got, _ := r.Get("alpha")
	if got.label != "second" {
		t.Errorf("Expected second registration to win, got %q", got.label)
	}
	if r.Size() != 1 {
		t.Errorf("Size = %d, want 1", r.Size())
	}
}

func TestRegistry_GetOrError(t *testing.T) {
	t.Run("registered", func(t *testing.T) {
		r := newTestRegistry().Register(&testStrategy{code: "alpha"})
		if _, err := r.GetOrError("Alpha"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	})

	t.Run("unknown lists available codes", func(t *testing.T) {
		r := newTestRegistry().
			Register(&testStrategy{code: "beta"}).
			Register(&testStrategy{code: "alpha"})

		_, err := r.GetOrError("gamma")
		if !errors.Is(err, ErrNotRegistered) {
			t.Fatalf("Expected ErrNotRegistered, got %v", err)
		}
		msg := err.Error()
		for _, want := range []string{"widget", `"gamma"`, "alpha, beta"} {
			if !strings.Contains(msg, want) {
				t.Errorf("Error %q should contain %q", msg, want)
			}
		}
	})

	t.Run("empty registry says none", func(t *testing.T) {
		_, err := newTestRegistry().GetOrError("alpha")
		if err == nil || !strings.Contains(err.Error(), "none") {
			t.Errorf("Expected error mentioning 'none', got %v", err)
		}
	})
}

func TestRegistry_AllIsSnapshot(t *testing.T) {
	r := newTestRegistry().Register(&testStrategy{code: "alpha"})

	all := r.All()
	delete(all, "alpha")
	all["zeta"] = &testStrategy{code: "zeta"}

	if !r.IsSupported("alpha") {
		t.Error("Mutating the snapshot must not remove entries")
	}
	if r.IsSupported("zeta") {
		t.Error("Mutating the snapshot must not add entries")
	}
}

func TestRegistry_Default(t *testing.T) {
	r := newTestRegistry()
	if _, ok := r.Default(); ok {
		t.Error("Expected no default in an empty registry")
	}
	if r.DefaultCode() != "alpha" {
		t.Errorf("DefaultCode = %q, want alpha", r.DefaultCode())
	}

	r.Register(&testStrategy{code: "beta"})
	if _, ok := r.Default(); ok {
		t.Error("Expected no default while only beta is registered")
	}

	r.Register(&testStrategy{code: "alpha"})
	def, ok := r.Default()
	if !ok || def.code != "alpha" {
		t.Errorf("Expected alpha as default, got %v, %v", def, ok)
	}
}

func TestRegistry_AvailableCodesSorted(t *testing.T) {
	r := newTestRegistry().
		Register(&testStrategy{code: "gamma"}).
		Register(&testStrategy{code: "alpha"}).
		Register(&testStrategy{code: "beta"})

	want := []testCode{"alpha", "beta", "gamma"}
	if diff := cmp.Diff(want, r.AvailableCodes()); diff != "" {
		t.Errorf("AvailableCodes mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	codeGen := gen.RegexMatch(`^[a-z][a-z0-9]{0,10}$`)

	properties.Property("registering the same strategy twice is idempotent", prop.ForAll(
		func(code string) bool {
			r := newTestRegistry()
			s := &testStrategy{code: testCode(code)}
			r.Register(s)
			size := r.Size()
			r.Register(s)
			got, ok := r.Get(code)
			return r.Size() == size && ok && got == s
		},
		codeGen,
	))

	properties.Property("the second of two registrations under one code wins", prop.ForAll(
		func(code string) bool {
			r := newTestRegistry()
			first := &testStrategy{code: testCode(code), label: "first"}
			second := &testStrategy{code: testCode(strings.ToUpper(code)), label: "second"}
			r.Register(first).Register(second)
			got, ok := r.Get(code)
			return ok && got == second && r.Size() == 1
		},
		codeGen,
	))

	properties.Property("lookup ignores case and surrounding whitespace", prop.ForAll(
		func(code string, pad int) bool {
			r := newTestRegistry()
			s := &testStrategy{code: testCode(code)}
			r.Register(s)
			padding := strings.Repeat(" ", pad)
			a, _ := r.Get(strings.ToUpper(code))
			b, _ := r.Get(code)
			c, _ := r.Get(padding + code + padding)
			return a == s && b == s && c == s
		},
		codeGen,
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
