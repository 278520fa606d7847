package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the output renderers a card pipeline can produce with,
// keyed by renderer name. Lookups happen per generated card and are safe
// for concurrent use; registration normally happens once at wiring time.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	names  []string // kept sorted; Default and List read from it
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds a renderer under its Name(). Names are unique: a second
// renderer under a taken name is an error, never a silent replace.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer

	i := sort.SearchStrings(r.names, name)
	r.names = append(r.names, "")
	copy(r.names[i+1:], r.names[i:])
	r.names[i] = name
	return nil
}

// MustRegister panics on registration failure. For wiring renderers that
// must exist before any card is generated.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// Default returns the renderer a request without an explicit name falls
// back to: the first registered name in sorted order. Errors when the
// registry is empty.
func (r *Registry) Default() (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.names) == 0 {
		return nil, fmt.Errorf("render: no renderers registered")
	}
	return r.byName[r.names[0]], nil
}

// List returns the registered renderer names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.names...)
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}
