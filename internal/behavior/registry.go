package behavior

import (
	"fmt"
	"sort"
	"sync"
)

// Spec describes a behavior to create.
type Spec struct {
	// Type selects the factory, e.g. "scroll-canvas".
	Type string

	// Key identifies the behavior on its graph.
	Key string

	// Options is passed to the factory. Its type depends on Type.
	Options any
}

// Factory creates a behavior from a spec.
type Factory func(ctx Context, spec Spec) (Behavior, error)

// Registry maps behavior type names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewRegistryWithDefaults creates a registry with the built-in behaviors.
func NewRegistryWithDefaults() *Registry {
	r := NewRegistry()
	r.MustRegister(TypeScrollCanvas, newScrollCanvasFromSpec)
	return r
}

// Register adds a factory. Returns an error if typ is already registered.
func (r *Registry) Register(typ string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[typ]; exists {
		return fmt.Errorf("%w: %s", ErrTypeRegistered, typ)
	}
	r.factories[typ] = f
	return nil
}

// MustRegister registers a factory and panics on error.
func (r *Registry) MustRegister(typ string, f Factory) {
	if err := r.Register(typ, f); err != nil {
		panic(err)
	}
}

// Create builds the behavior spec describes.
func (r *Registry) Create(ctx Context, spec Spec) (Behavior, error) {
	r.mu.RLock()
	f, ok := r.factories[spec.Type]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, spec.Type)
	}
	return f(ctx, spec)
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func newScrollCanvasFromSpec(ctx Context, spec Spec) (Behavior, error) {
	opts, err := scrollCanvasOptions(spec)
	if err != nil {
		return nil, err
	}
	return NewScrollCanvas(ctx, opts), nil
}

// scrollCanvasOptions extracts the options of spec. The spec key wins over
// the options key.
func scrollCanvasOptions(spec Spec) (ScrollCanvasOptions, error) {
	var opts ScrollCanvasOptions
	switch o := spec.Options.(type) {
	case nil:
	case ScrollCanvasOptions:
		opts = o
	case *ScrollCanvasOptions:
		if o != nil {
			opts = *o
		}
	default:
		return ScrollCanvasOptions{}, fmt.Errorf("%s %q: %w: got %T", TypeScrollCanvas, spec.Key, ErrOptionsType, spec.Options)
	}
	if spec.Key != "" {
		opts.Key = spec.Key
	}
	return opts, nil
}
