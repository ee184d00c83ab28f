// Package surface provides the rendering surface behaviors attach to: the
// native element that receives raw wheel events, the canvas accessor chain
// leading to it, and a tcell terminal that feeds both the element and the
// graph event bus.
package surface

import (
	"context"
	"sync/atomic"

	"github.com/dshills/graphview/internal/event"
)

// Element is the concrete listener target of a surface. Some input, notably
// cancelable wheel motion, is only delivered here and never reaches the
// logical graph.
type Element struct {
	em *event.Emitter
}

// NewElement creates a detached element with no listeners.
func NewElement() *Element {
	return &Element{em: event.NewEmitter()}
}

// AddEventListener registers h for t. Listeners are non-passive unless
// event.WithPassive is given.
func (e *Element) AddEventListener(t event.Topic, h event.HandlerFunc, opts ...event.SubscriptionOption) *event.Subscription {
	return e.em.On(t, h, opts...)
}

// RemoveEventListener removes the listener sub names. Returns false if it
// was not registered here.
func (e *Element) RemoveEventListener(sub *event.Subscription) bool {
	return e.em.Off(sub)
}

// ListenerCount returns the number of listeners for t.
func (e *Element) ListenerCount(t event.Topic) int {
	return e.em.Count(t)
}

// DispatchEvent delivers payload to the listeners of t.
func (e *Element) DispatchEvent(ctx context.Context, t event.Topic, payload any) error {
	return e.em.Emit(ctx, t, payload)
}

// Remove tears the element down. Listeners are dropped and later
// registrations are inert.
func (e *Element) Remove() {
	e.em.Close()
}

// ContextService exposes the element backing a canvas.
type ContextService struct {
	element atomic.Pointer[Element]
}

// DomElement returns the native element, or nil when the canvas has none
// (headless rendering, or after the surface was torn down).
func (s *ContextService) DomElement() *Element {
	if s == nil {
		return nil
	}
	return s.element.Load()
}

// Canvas is the drawing target a graph renders into.
type Canvas struct {
	service *ContextService
}

// NewCanvas creates a canvas backed by el. el may be nil.
func NewCanvas(el *Element) *Canvas {
	svc := &ContextService{}
	svc.element.Store(el)
	return &Canvas{service: svc}
}

// ContextService returns the canvas context service. Safe on a nil canvas.
func (c *Canvas) ContextService() *ContextService {
	if c == nil {
		return nil
	}
	return c.service
}

// Detach forgets the element, as happens when the host surface goes away.
func (c *Canvas) Detach() {
	if c == nil || c.service == nil {
		return
	}
	c.service.element.Store(nil)
}
