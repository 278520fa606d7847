// Package svg implements the data-binding renderer: it re-parses a
// template's normalized markup, injects card values into the fields' source
// elements, and serializes the result. Every call parses its own tree, so
// batch renders for different users can run concurrently with zero
// coordination.
package svg

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/goliatone/go-cardgen/internal/barcode"
	"github.com/goliatone/go-cardgen/internal/cssfont"
	"github.com/goliatone/go-cardgen/internal/svgdoc"
	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/render"
)

// RendererName is the registry key of this renderer.
const RendererName = "svg"

const (
	// generatedAttr marks injected <image> elements so re-renders stay
	// idempotent.
	generatedAttr = "data-idcard-generated"
	// lineHeight is the baseline step between wrapped lines, as a multiple
	// of the font size.
	lineHeight = 1.2

	defaultFontSize = 16
)

// Renderer binds CardData into SVG markup.
type Renderer struct {
	barcodePixels int
}

// Option customises the renderer.
type Option func(*Renderer)

// WithBarcodePixels sets the default edge length of generated barcode
// payloads.
func WithBarcodePixels(px int) Option {
	return func(r *Renderer) {
		r.barcodePixels = px
	}
}

// New constructs the SVG renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{barcodePixels: barcode.DefaultPixels}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Ensure the implementation satisfies the public interface.
var _ render.Renderer = (*Renderer)(nil)

// Name identifies the renderer in the registry.
func (r *Renderer) Name() string {
	return RendererName
}

// ContentType reports the MIME type of the output.
func (r *Renderer) ContentType() string {
	return "image/svg+xml"
}

// Render re-parses the template, binds every field that has data, and
// serializes the mutated tree. Fields whose source element no longer exists
// are skipped silently: a deleted layer must not fail a batch render.
func (r *Renderer) Render(ctx context.Context, card render.Card, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := svgdoc.Parse([]byte(card.Template.RawSVG))
	if err != nil {
		return nil, fmt.Errorf("svg renderer: template: %w", err)
	}

	// Bake CSS-class font sizes into attributes before any mutation: later
	// steps replace tspans, which would silently lose class-only sizing.
	styles := cssfont.FromDocument(doc)
	bakeFontSizes(doc, styles)

	for _, field := range card.Fields {
		targetID := field.SourceID
		if targetID == "" {
			targetID = field.ID
		}
		el := doc.FindByID(targetID)
		if el == nil {
			continue
		}

		value, hasValue := card.Data[field.ID]
		switch field.Type {
		case model.FieldTypeImage:
			bindImage(el, imageValue(value, hasValue))
		case model.FieldTypeBarcode:
			r.bindBarcode(el, field, value, hasValue, options)
		default:
			bindText(el, field, value, hasValue)
		}
	}

	out, err := doc.String()
	if err != nil {
		return nil, fmt.Errorf("svg renderer: %w", err)
	}
	return []byte(out), nil
}

func imageValue(value model.Value, hasValue bool) *model.ImageValue {
	if !hasValue {
		return nil
	}
	iv, ok := value.(model.ImageValue)
	if !ok || iv.Src == "" {
		return nil
	}
	return &iv
}

func (r *Renderer) bindBarcode(el *etree.Element, field model.FieldDefinition, value model.Value, hasValue bool, options render.RenderOptions) {
	if !hasValue {
		return
	}
	if iv, ok := value.(model.ImageValue); ok {
		if iv.Src != "" {
			bindImage(el, &iv)
		}
		return
	}

	tv, ok := value.(model.TextValue)
	if !ok {
		return
	}
	pixels := options.BarcodePixels
	if pixels <= 0 {
		pixels = r.barcodePixels
	}
	url, err := barcode.DataURL(string(tv), pixels)
	if err != nil || findRect(el) == nil {
		// no encodable payload or no slot geometry: pass the raw value
		// through as text so the rasterizer still shows something
		bindText(el, field, value, hasValue)
		return
	}
	iv := model.NewImageValue(url)
	bindImage(el, &iv)
}

// bakeFontSizes injects an explicit font-size attribute into every <text> and
// <tspan> that styles its size through CSS classes only.
func bakeFontSizes(doc *svgdoc.Document, styles cssfont.Styles) {
	if styles.Empty() {
		return
	}
	doc.Walk(func(el *etree.Element) bool {
		if el.Tag != "text" && el.Tag != "tspan" {
			return true
		}
		if el.SelectAttrValue("font-size", "") != "" {
			return true
		}
		if inline := cssfont.InlineStyle(el.SelectAttrValue("style", "")); inline != nil {
			if inline["font-size"] != "" {
				return true
			}
		}
		if size, ok := styles.FontSize(el.SelectAttrValue("class", "")); ok {
			el.CreateAttr("font-size", formatNumber(size))
		}
		return true
	})
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
