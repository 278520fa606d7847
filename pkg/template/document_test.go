package template_test

import (
	"testing"

	"github.com/goliatone/go-cardgen/pkg/template"
)

func TestNewDocument_Validation(t *testing.T) {
	if _, err := template.NewDocument(nil, []byte("x")); err == nil {
		t.Fatal("nil source must fail")
	}
	if _, err := template.NewDocument(template.SourceFromFile("a.svg"), nil); err == nil {
		t.Fatal("empty payload must fail")
	}
}

func TestDocument_DefensiveCopies(t *testing.T) {
	raw := []byte("<svg/>")
	doc, err := template.NewDocument(template.SourceFromFile("a.svg"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	raw[1] = 'X'
	if string(doc.Raw()) != "<svg/>" {
		t.Fatal("document must not alias the caller's slice")
	}

	out := doc.Raw()
	out[1] = 'Y'
	if string(doc.Raw()) != "<svg/>" {
		t.Fatal("Raw must return a fresh copy")
	}
}

func TestSources(t *testing.T) {
	file := template.SourceFromFile("dir/../card.svg")
	if file.Kind() != template.SourceKindFile {
		t.Fatalf("got %q", file.Kind())
	}
	if file.Location() != "card.svg" {
		t.Fatalf("file paths are cleaned, got %q", file.Location())
	}

	fsSrc := template.SourceFromFS("templates/card.svg")
	if fsSrc.Kind() != template.SourceKindFS || fsSrc.Location() != "templates/card.svg" {
		t.Fatalf("got %q %q", fsSrc.Kind(), fsSrc.Location())
	}

	mem := template.SourceFromMemory("inline-template")
	if mem.Kind() != template.SourceKindMemory || mem.Location() != "inline-template" {
		t.Fatalf("got %q %q", mem.Kind(), mem.Location())
	}

	url := template.SourceFromURL("https://example.com/card.svg")
	if url.Kind() != template.SourceKindURL {
		t.Fatalf("got %q", url.Kind())
	}
}

func TestSourceFromURL_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("invalid URL must panic")
		}
	}()
	template.SourceFromURL("://nope")
}
