// Package render defines the output contract of the pipeline: a Card (the
// template, its fields, and the resolved per-card values) handed to a named
// Renderer, plus the registry renderers are discovered through.
package render

import (
	"context"

	"github.com/goliatone/go-cardgen/pkg/model"
)

// Card bundles everything a renderer needs for one output: the immutable
// template, the field definitions extracted from it, and the CardData for a
// single person. Data is the renderer's only window into user values.
type Card struct {
	Template model.TemplateMeta
	Fields   []model.FieldDefinition
	Data     model.CardData
}

// RenderOptions carries per-request knobs renderers may honour.
type RenderOptions struct {
	// BarcodePixels sizes generated barcode payloads. Zero means the
	// renderer's default.
	BarcodePixels int
}

// Renderer converts a Card into a byte representation (SVG markup by
// default; alternative renderers can emit anything keyed off the same Card).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, card Card, options RenderOptions) ([]byte, error)
}
