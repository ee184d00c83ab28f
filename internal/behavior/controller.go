package behavior

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/google/uuid"
)

// Controller owns the behaviors attached to one graph.
type Controller struct {
	mu        sync.Mutex
	ctx       Context
	registry  *Registry
	behaviors map[string]Behavior
	order     []string
	destroyed bool
}

// NewController creates a controller for ctx. A nil registry uses
// NewRegistryWithDefaults.
func NewController(ctx Context, registry *Registry) *Controller {
	if registry == nil {
		registry = NewRegistryWithDefaults()
	}
	return &Controller{
		ctx:       ctx,
		registry:  registry,
		behaviors: make(map[string]Behavior),
	}
}

// Add creates and attaches the behavior spec describes. An empty key is
// replaced with a generated one. Returns the behavior's key.
func (c *Controller) Add(spec Spec) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return "", ErrControllerDestroyed
	}
	if spec.Key == "" {
		spec.Key = spec.Type + "-" + uuid.NewString()
	}
	if _, exists := c.behaviors[spec.Key]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateKey, spec.Key)
	}

	b, err := c.registry.Create(c.ctx, spec)
	if err != nil {
		return "", err
	}
	c.behaviors[spec.Key] = b
	c.order = append(c.order, spec.Key)
	return spec.Key, nil
}

// Remove destroys and detaches the behavior with key. Returns false if
// there is none.
func (c *Controller) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.behaviors[key]
	if !ok {
		return false
	}
	b.Destroy()
	delete(c.behaviors, key)
	c.order = removeKey(c.order, key)
	return true
}

// Get returns the behavior with key.
func (c *Controller) Get(key string) (Behavior, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.behaviors[key]
	return b, ok
}

// Behaviors returns the attached behaviors in order.
func (c *Controller) Behaviors() []Behavior {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Behavior, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.behaviors[k])
	}
	return out
}

// Reconcile makes the attached behaviors match specs. Behaviors whose key
// is absent are destroyed, behaviors with the same key and type are
// updated in place, and the rest are created. Specs without a key get
// "<type>-<index>" so that reloading the same list matches them again.
//
// Errors for individual specs are joined; the other specs still apply.
func (c *Controller) Reconcile(specs []Spec) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return ErrControllerDestroyed
	}

	specs = append([]Spec(nil), specs...)
	wanted := make(map[string]bool, len(specs))
	for i := range specs {
		if specs[i].Key == "" {
			specs[i].Key = fmt.Sprintf("%s-%d", specs[i].Type, i)
		}
		if wanted[specs[i].Key] {
			return fmt.Errorf("reconcile: %w: %s", ErrDuplicateKey, specs[i].Key)
		}
		wanted[specs[i].Key] = true
	}

	for _, k := range c.order {
		if !wanted[k] {
			c.behaviors[k].Destroy()
			delete(c.behaviors, k)
		}
	}

	var errs []error
	order := make([]string, 0, len(specs))
	for _, spec := range specs {
		if existing, ok := c.behaviors[spec.Key]; ok {
			if u, ok := existing.(Updatable); ok && existing.Type() == spec.Type {
				if err := u.UpdateSpec(spec); err != nil {
					errs = append(errs, fmt.Errorf("update %s: %w", spec.Key, err))
				}
				order = append(order, spec.Key)
				continue
			}
			existing.Destroy()
			delete(c.behaviors, spec.Key)
		}

		b, err := c.registry.Create(c.ctx, spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", spec.Key, err))
			continue
		}
		c.behaviors[spec.Key] = b
		order = append(order, spec.Key)
	}
	c.order = order
	return errors.Join(errs...)
}

// KeyBindings collects help bindings from every behavior that offers them.
func (c *Controller) KeyBindings() []key.Binding {
	var out []key.Binding
	for _, b := range c.Behaviors() {
		if h, ok := b.(interface{ KeyBindings() []key.Binding }); ok {
			out = append(out, h.KeyBindings()...)
		}
	}
	return out
}

// Len returns the number of attached behaviors.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.behaviors)
}

// Destroy destroys every behavior. Later Add and Reconcile calls fail with
// ErrControllerDestroyed.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}
	c.destroyed = true
	for _, k := range c.order {
		c.behaviors[k].Destroy()
	}
	c.behaviors = make(map[string]Behavior)
	c.order = nil
}

func removeKey(keys []string, key string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
