package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-cardgen/internal/loader"
	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/template"
)

const cardTemplate = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 325 204">
  <text id="{{field:fullName_First_Last}}" x="122" y="86">Student Name</text>
  <text id="{{field:studentId}}" x="122" y="110">Student ID</text>
</svg>`

var cardMappings = []model.FieldMapping{
	{SVGLayerID: "{{field:fullName_First_Last}}", StandardFieldName: "fullName_First_Last"},
	{SVGLayerID: "{{field:studentId}}", StandardFieldName: "studentId"},
}

func inlineDocument(t *testing.T) *template.Document {
	t.Helper()
	doc, err := template.NewDocument(template.SourceFromMemory("card"), []byte(cardTemplate))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return &doc
}

func TestGenerate_FromDocument(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: inlineDocument(t),
		User:     model.UserData{FirstName: "Maria", LastName: "Nguyen", StudentID: "S-1"},
		Mappings: cardMappings,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svg := string(out)
	if !strings.Contains(svg, "Maria Nguyen") {
		t.Fatalf("name not bound:\n%s", svg)
	}
	if !strings.Contains(svg, "S-1") {
		t.Fatalf("student id not bound:\n%s", svg)
	}
	if strings.Contains(svg, "Student Name") {
		t.Fatalf("placeholder text must be replaced:\n%s", svg)
	}
}

func TestGenerate_FromFSSource(t *testing.T) {
	opts := template.NewLoaderOptions()
	opts.FileSystem = fstest.MapFS{
		"cards/template.svg": &fstest.MapFile{Data: []byte(cardTemplate)},
	}
	gen := orchestrator.New(orchestrator.WithLoader(loader.New(opts)))

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:   template.SourceFromFS("cards/template.svg"),
		User:     model.UserData{FirstName: "Deshawn", LastName: "Carter"},
		Mappings: cardMappings,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Deshawn Carter") {
		t.Fatalf("name not bound:\n%s", out)
	}
}

func TestGenerate_InputValidation(t *testing.T) {
	gen := orchestrator.New()

	if _, err := gen.Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatal("missing source and document must fail")
	}
	//nolint:staticcheck // exercising the nil-context guard
	if _, err := gen.Generate(nil, orchestrator.Request{Document: inlineDocument(t)}); err == nil {
		t.Fatal("nil context must fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx, orchestrator.Request{Document: inlineDocument(t)}); err == nil {
		t.Fatal("cancelled context must fail")
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	gen := orchestrator.New()
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Document: inlineDocument(t),
		Renderer: "hologram",
	})
	if err == nil || !strings.Contains(err.Error(), "hologram") {
		t.Fatalf("got %v, want unknown renderer error", err)
	}
}

func TestExtract(t *testing.T) {
	gen := orchestrator.New()
	result, err := gen.Extract(context.Background(), orchestrator.Request{
		Document: inlineDocument(t),
		Name:     "Student Card",
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if result.Meta.Name != "Student Card" {
		t.Fatalf("got name %q", result.Meta.Name)
	}
	if len(result.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(result.Fields))
	}
}

func TestExtract_NameFallsBackToLocation(t *testing.T) {
	gen := orchestrator.New()
	result, err := gen.Extract(context.Background(), orchestrator.Request{
		Document: inlineDocument(t),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if result.Meta.Name != "card" {
		t.Fatalf("got name %q, want the source location", result.Meta.Name)
	}
}
