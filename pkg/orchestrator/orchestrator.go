package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-cardgen/internal/loader"
	"github.com/goliatone/go-cardgen/pkg/extract"
	"github.com/goliatone/go-cardgen/pkg/model"
	"github.com/goliatone/go-cardgen/pkg/naming"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/renderers/svg"
	"github.com/goliatone/go-cardgen/pkg/resolve"
	"github.com/goliatone/go-cardgen/pkg/template"
)

const defaultRendererName = svg.RendererName

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom template loader.
func WithLoader(loader template.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithExtractor injects a custom field extractor.
func WithExtractor(extractor *extract.Extractor) Option {
	return func(o *Orchestrator) {
		o.extractor = extractor
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithNamingOptions supplies options forwarded to the naming resolver, for
// example naming.Strict().
func WithNamingOptions(opts ...naming.Option) Option {
	return func(o *Orchestrator) {
		o.namingOptions = append(o.namingOptions, opts...)
	}
}

// Orchestrator coordinates the full pipeline from SVG template to rendered
// card. It applies sensible defaults (svg renderer, file loader) while
// remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	loader          template.Loader
	extractor       *extract.Extractor
	registry        *render.Registry
	defaultRenderer string
	namingOptions   []naming.Option
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a single card from an SVG
// template.
type Request struct {
	// Source identifies where the SVG template lives. Optional when Document
	// is supplied.
	Source template.Source

	// Document allows callers to bypass the loader when they already have the
	// raw template payload.
	Document *template.Document

	// Name becomes the template display name. Optional; the extractor falls
	// back to the source location when empty.
	Name string

	// User carries the person whose data fills the card.
	User model.UserData

	// Mappings connect template fields to standard field names or custom
	// static text. Fields without a mapping are left untouched.
	Mappings []model.FieldMapping

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as barcode sizing.
	RenderOptions render.RenderOptions
}

// Extract loads the template and returns the detected metadata and fields
// without rendering anything.
func (o *Orchestrator) Extract(ctx context.Context, req Request) (extract.Result, error) {
	if ctx == nil {
		return extract.Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return extract.Result{}, err
	}

	raw, name, err := o.resolveTemplate(ctx, req)
	if err != nil {
		return extract.Result{}, err
	}

	result, err := o.extractor.Extract(raw, name)
	if err != nil {
		return extract.Result{}, fmt.Errorf("orchestrator: extract fields: %w", err)
	}
	return result, nil
}

// Generate executes the loader → extractor → resolver → renderer sequence and
// returns the rendered bytes (SVG for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := o.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := resolve.CardData(req.User, result.Fields, req.Mappings, o.namingOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolve card data: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	card := render.Card{
		Template: result.Meta,
		Fields:   result.Fields,
		Data:     data,
	}
	output, err := renderer.Render(ctx, card, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveTemplate(ctx context.Context, req Request) ([]byte, string, error) {
	name := req.Name

	if req.Document != nil {
		if name == "" {
			name = req.Document.Location()
		}
		return req.Document.Raw(), name, nil
	}
	if req.Source == nil {
		return nil, "", errors.New("orchestrator: source or document is required")
	}

	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: load template: %w", err)
	}
	if name == "" {
		name = doc.Location()
	}
	return doc.Raw(), name, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Default()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(template.NewLoaderOptions())
	}
	if o.extractor == nil {
		o.extractor = extract.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(svg.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
