package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-cardgen/pkg/model"
	pkgtemplate "github.com/goliatone/go-cardgen/pkg/template"
)

// LoadTemplate reads an SVG fixture and builds a template.Document using a
// file source. Testing helpers fail the test on error to keep contract tests
// concise.
func LoadTemplate(t *testing.T, path string) pkgtemplate.Document {
	t.Helper()

	doc, err := LoadTemplateFromPath(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	return doc
}

// LoadTemplateFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadTemplateFromPath(path string) (pkgtemplate.Document, error) {
	if path == "" {
		return pkgtemplate.Document{}, errors.New("testsupport: template path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgtemplate.Document{}, fmt.Errorf("testsupport: read template: %w", err)
	}
	doc, err := pkgtemplate.NewDocument(pkgtemplate.SourceFromFile(path), data)
	if err != nil {
		return pkgtemplate.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadFields loads a JSON golden file into a slice of field definitions.
func MustLoadFields(t *testing.T, path string) []pkgmodel.FieldDefinition {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	var out []pkgmodel.FieldDefinition
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
