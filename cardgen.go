// Package cardgen turns SVG templates into filled-in ID cards. It extracts
// bindable fields from a template, resolves user data through field naming
// conventions, and renders data-bound SVG output.
//
// The root package re-exports the common entry points; the pkg/ tree holds
// the individual pipeline stages for callers that need finer control.
package cardgen

import (
	"context"

	internalLoader "github.com/goliatone/go-cardgen/internal/loader"
	"github.com/goliatone/go-cardgen/pkg/extract"
	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/template"
)

// UserData aliases the person record consumed by the naming resolver.
type UserData = model.UserData

// FieldDefinition aliases the extracted field description.
type FieldDefinition = model.FieldDefinition

// FieldMapping aliases the layer-to-standard-name mapping entry.
type FieldMapping = model.FieldMapping

// TemplateMeta aliases the extracted template metadata.
type TemplateMeta = model.TemplateMeta

// CardData aliases the resolved field values keyed by field ID.
type CardData = model.CardData

// RenderOptions describes per-request rendering instructions.
type RenderOptions = render.RenderOptions

// Request aliases the orchestrator request shape.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers that want a single import.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a template loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options template.LoaderOptions) template.Loader {
	return internalLoader.New(options)
}

// ExtractTemplate loads the SVG source and returns the detected template
// metadata and field definitions.
func ExtractTemplate(ctx context.Context, source template.Source, options ...orchestrator.Option) (extract.Result, error) {
	gen := orchestrator.New(options...)
	return gen.Extract(ctx, orchestrator.Request{Source: source})
}

// GenerateCard loads the SVG source, resolves the user's data against the
// detected fields, and renders the card with the default renderer. It is the
// simplest entry point for callers that just want SVG output.
func GenerateCard(ctx context.Context, source template.Source, user model.UserData, mappings []model.FieldMapping, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		User:     user,
		Mappings: mappings,
	})
}

// GenerateCardFromDocument renders a card using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateCardFromDocument(ctx context.Context, doc template.Document, user model.UserData, mappings []model.FieldMapping, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		User:     user,
		Mappings: mappings,
	})
}
