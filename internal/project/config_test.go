package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sha1n/mcp-arc42-server/internal/format"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, Filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return dir
}

func TestReadLanguageAndFormat(t *testing.T) {
	dir := writeConfig(t, "projectName: Demo\nlanguage: de\nformat: asciidoc\n")

	lang, ok := ReadLanguage(dir)
	if !ok || lang != "DE" {
		t.Errorf("ReadLanguage = %q, %v; want DE, true", lang, ok)
	}
	f, ok := ReadFormat(dir)
	if !ok || f != format.AsciiDoc {
		t.Errorf("ReadFormat = %q, %v; want asciidoc, true", f, ok)
	}
}

func TestRead_AbsorbsFailures(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{"missing file", nil},
		{"empty file", ptr("")},
		{"unparseable", ptr("language: [DE\nformat: {")},
		{"not a mapping", ptr("- DE\n- markdown\n")},
		{"missing keys", ptr("projectName: Demo\n")},
		{"non-string values", ptr("language: 42\nformat:\n  name: markdown\n")},
		{"blank values", ptr("language: '  '\nformat: ''\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				dir = writeConfig(t, *tt.content)
			}

			if lang, ok := ReadLanguage(dir); ok {
				t.Errorf("ReadLanguage = %q, expected not set", lang)
			}
			if f, ok := ReadFormat(dir); ok {
				t.Errorf("ReadFormat = %q, expected not set", f)
			}
		})
	}
}

func TestReadFormat_IgnoresCaseAndSpace(t *testing.T) {
	tests := []struct {
		value string
		want  format.Code
	}{
		{"Markdown", format.Markdown},
		{"MARKDOWN", format.Markdown},
		{"ASCIIDOC", format.AsciiDoc},
		{"' AsciiDoc '", format.AsciiDoc},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			dir := writeConfig(t, "format: "+tt.value+"\n")
			f, ok := ReadFormat(dir)
			if !ok || f != tt.want {
				t.Errorf("ReadFormat(%s) = %q, %v; want %q, true", tt.value, f, ok, tt.want)
			}
		})
	}
}

func TestReadFormat_RejectsUnknownValues(t *testing.T) {
	for _, value := range []string{"xml", "md", "MD", "adoc"} {
		dir := writeConfig(t, "format: "+value+"\n")
		if f, ok := ReadFormat(dir); ok {
			t.Errorf("ReadFormat(%q) = %q, expected not set", value, f)
		}
	}
}

func TestReadLanguage_DoesNotValidate(t *testing.T) {
	dir := writeConfig(t, "language: ' xx '\n")

	lang, ok := ReadLanguage(dir)
	if !ok || lang != "XX" {
		t.Errorf("ReadLanguage = %q, %v; want XX, true", lang, ok)
	}
}

func TestRead_EmptyWorkspacePath(t *testing.T) {
	if _, ok := ReadLanguage(""); ok {
		t.Error("Expected no language for an empty workspace path")
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "docs")
	want := &Config{
		ProjectName:  "Payments",
		Language:     "FR",
		Format:       "markdown",
		Arc42Version: Arc42Version,
		Created:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	if err := Write(dir, want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !Exists(dir) {
		t.Fatal("Expected config file to exist")
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}

	if lang, _ := ReadLanguage(dir); lang != "FR" {
		t.Errorf("ReadLanguage = %q, want FR", lang)
	}
}

func TestRead_NotFound(t *testing.T) {
	_, err := Read(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func ptr(s string) *string { return &s }
