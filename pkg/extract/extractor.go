// Package extract walks an SVG template and produces the template metadata
// and field definitions the rest of the pipeline consumes. Extraction runs
// once per template upload; its serialized output (not the original bytes) is
// what mapping tools and renderers operate on afterwards.
package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/goliatone/go-cardgen/internal/cssfont"
	"github.com/goliatone/go-cardgen/internal/svgdoc"
	"github.com/goliatone/go-cardgen/pkg/model"
)

// ErrNoSVGRoot reports input without an <svg> root element. Extraction fails
// fast; no partial metadata is returned.
var ErrNoSVGRoot = svgdoc.ErrNoSVGRoot

// Default card dimensions (CR80 stock) used when a template declares neither
// width/height nor a viewBox.
const (
	DefaultCardWidthMM  = 86
	DefaultCardHeightMM = 54
)

// Result pairs the immutable template metadata with the discovered fields.
type Result struct {
	Meta   model.TemplateMeta      `json:"metadata"`
	Fields []model.FieldDefinition `json:"fields"`
}

// Extractor discovers bindable regions in SVG templates. The zero value is
// usable; New applies option defaults.
type Extractor struct {
	offsetBase float64
	offsetStep float64
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithFallbackOffsets overrides the synthetic position assigned to explicit
// placeholders that carry no x/y attributes: base percent for the first
// field, stepped per field so stacked placeholders never fully overlap.
func WithFallbackOffsets(base, step float64) Option {
	return func(e *Extractor) {
		e.offsetBase = base
		e.offsetStep = step
	}
}

// New constructs an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		offsetBase: 10,
		offsetStep: 8,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Extract parses the raw SVG and discovers fields using the default
// extractor.
func Extract(raw []byte, displayName string) (Result, error) {
	return New().Extract(raw, displayName)
}

// Extract parses the raw SVG, patches missing element ids, discovers fields
// and returns the normalized serialization alongside them. Explicit
// {{kind:name}} placeholders take priority: when any exist, auto-detection
// is skipped entirely.
func (e *Extractor) Extract(raw []byte, displayName string) (Result, error) {
	doc, err := svgdoc.Parse(raw)
	if err != nil {
		return Result{}, fmt.Errorf("extract: %w", err)
	}

	// Patch ids before field discovery so every sourceId is resolvable in
	// the serialized output.
	doc.EnsureIDs()

	meta, boxW, boxH := buildMeta(doc, displayName)
	styles := cssfont.FromDocument(doc)
	meta.Fonts = collectFonts(doc, styles)

	fields := e.placeholderFields(doc, boxW, boxH)
	if len(fields) == 0 {
		fields = e.textFields(doc, styles, boxW, boxH)
		fields = append(fields, e.imageFields(doc, boxW, boxH)...)
	}
	fields = dedupFields(fields)

	serialized, err := doc.String()
	if err != nil {
		return Result{}, fmt.Errorf("extract: %w", err)
	}
	meta.RawSVG = serialized

	return Result{Meta: meta, Fields: fields}, nil
}

// buildMeta derives template dimensions: width/height attributes first, then
// the viewBox, then the standard card default. The returned box dimensions
// are the user-unit reference all percent coordinates are computed against.
func buildMeta(doc *svgdoc.Document, displayName string) (model.TemplateMeta, float64, float64) {
	root := doc.Root()
	meta := model.TemplateMeta{Name: displayName}

	if vb, ok := svgdoc.ParseViewBox(root.SelectAttrValue("viewBox", "")); ok {
		meta.ViewBox = vb
	}

	w, wUnit, wOK := svgdoc.ParseLength(root.SelectAttrValue("width", ""))
	h, _, hOK := svgdoc.ParseLength(root.SelectAttrValue("height", ""))
	switch {
	case wOK && hOK && w > 0 && h > 0:
		meta.Width, meta.Height, meta.Unit = w, h, wUnit
	case meta.ViewBox != nil && meta.ViewBox.Width > 0 && meta.ViewBox.Height > 0:
		meta.Width, meta.Height, meta.Unit = meta.ViewBox.Width, meta.ViewBox.Height, model.UnitPX
	default:
		meta.Width, meta.Height, meta.Unit = DefaultCardWidthMM, DefaultCardHeightMM, model.UnitMM
	}

	// Percent math runs in user units: the viewBox when present, otherwise
	// the declared dimensions.
	boxW, boxH := meta.Width, meta.Height
	if meta.ViewBox != nil && meta.ViewBox.Width > 0 && meta.ViewBox.Height > 0 {
		boxW, boxH = meta.ViewBox.Width, meta.ViewBox.Height
	}
	return meta, boxW, boxH
}

func collectFonts(doc *svgdoc.Document, styles cssfont.Styles) []string {
	seen := make(map[string]struct{})
	add := func(raw string) {
		for _, family := range strings.Split(raw, ",") {
			name := strings.Trim(strings.TrimSpace(family), `'"`)
			if name == "" {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	doc.Walk(func(el *etree.Element) bool {
		if v := el.SelectAttrValue("font-family", ""); v != "" {
			add(v)
		}
		if inline := cssfont.InlineStyle(el.SelectAttrValue("style", "")); inline != nil {
			if v := inline["font-family"]; v != "" {
				add(v)
			}
		}
		return true
	})
	for _, v := range styles.FontFamilies() {
		add(v)
	}

	if len(seen) == 0 {
		return nil
	}
	return sortedStrings(seen)
}

func percent(v, box float64) float64 {
	if box <= 0 {
		return 0
	}
	return clampPercent(v / box * 100)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// dedupFields resolves key collisions deterministically: the second and
// further fields sharing a (sourceId ?? id) key get "-2", "-3", ... suffixes
// on both id and label so identically keyed layers stay individually
// addressable. Never an error.
func dedupFields(fields []model.FieldDefinition) []model.FieldDefinition {
	counts := make(map[string]int, len(fields))
	for i := range fields {
		key := fields[i].SourceID
		if key == "" {
			key = fields[i].ID
		}
		counts[key]++
		if n := counts[key]; n > 1 {
			fields[i].ID = fmt.Sprintf("%s-%d", fields[i].ID, n)
			fields[i].Label = fmt.Sprintf("%s-%d", fields[i].Label, n)
		}
	}
	return fields
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
