package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
)

// Emitter is a topic-keyed listener registry with synchronous delivery.
type Emitter struct {
	mu     sync.RWMutex
	subs   map[Topic][]*Subscription
	byID   map[string]*Subscription
	closed bool
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		subs: make(map[Topic][]*Subscription),
		byID: make(map[string]*Subscription),
	}
}

// On registers a listener for t and returns its handle. On a closed emitter
// the returned handle is already inactive.
func (e *Emitter) On(t Topic, h HandlerFunc, opts ...SubscriptionOption) *Subscription {
	sub := newSubscription(t, h, opts...)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		sub.cancelled.Store(true)
		return sub
	}
	e.subs[t] = append(e.subs[t], sub)
	e.byID[sub.id] = sub
	return sub
}

// Off removes the listener named by sub. It reports whether a listener was
// removed; nil, foreign and already removed handles return false.
func (e *Emitter) Off(sub *Subscription) bool {
	if sub == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.removeLocked(sub)
}

func (e *Emitter) removeLocked(sub *Subscription) bool {
	if e.byID[sub.id] != sub {
		return false
	}
	delete(e.byID, sub.id)
	sub.cancelled.Store(true)

	list := e.subs[sub.topic]
	if i := slices.Index(list, sub); i >= 0 {
		list = slices.Delete(slices.Clone(list), i, i+1)
	}
	if len(list) == 0 {
		delete(e.subs, sub.topic)
	} else {
		e.subs[sub.topic] = list
	}
	return true
}

// Count returns the number of listeners registered for t.
func (e *Emitter) Count(t Topic) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs[t])
}

// Emit delivers payload to every listener of t in registration order.
// Errors and recovered panics from listeners are joined into the result;
// delivery continues past them.
func (e *Emitter) Emit(ctx context.Context, t Topic, payload any) error {
	e.mu.RLock()
	subs := e.subs[t]
	e.mu.RUnlock()

	if len(subs) == 0 {
		return nil
	}

	cancelable, _ := payload.(Cancelable)

	var errs []error
	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}
		if sub.config.Once {
			e.Off(sub)
		}
		if cancelable != nil {
			cancelable.SetCancelable(!sub.config.Passive)
		}
		if err := deliver(ctx, sub, payload); err != nil {
			errs = append(errs, err)
		}
	}
	if cancelable != nil {
		cancelable.SetCancelable(true)
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, sub *Subscription, payload any) (err error) {
	if sub.handler == nil {
		return fmt.Errorf("subscription %s: %w", sub.id, ErrNilHandler)
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{
				SubscriptionID: sub.id,
				Topic:          sub.topic,
				Value:          r,
				Stack:          string(debug.Stack()),
			}
		}
	}()
	if herr := sub.handler(ctx, payload); herr != nil {
		return &HandlerError{SubscriptionID: sub.id, Topic: sub.topic, Err: herr}
	}
	return nil
}

// Close removes every listener. Later On calls return inactive handles and
// Emit delivers nothing. Close is idempotent.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, sub := range e.byID {
		sub.cancelled.Store(true)
	}
	e.subs = make(map[Topic][]*Subscription)
	e.byID = make(map[string]*Subscription)
	e.closed = true
}
