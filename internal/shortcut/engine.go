package shortcut

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/graphview/internal/event"
	"github.com/dshills/graphview/internal/input/key"
	"github.com/dshills/graphview/internal/input/mouse"
)

// Emitter is the part of the graph event bus the engine listens on.
type Emitter interface {
	On(t event.Topic, h event.HandlerFunc, opts ...event.SubscriptionOption) *event.Subscription
	Off(sub *event.Subscription) bool
}

// Callback receives the event that completed the combination:
// key.Event, mouse.PointerEvent or *mouse.WheelEvent.
type Callback func(ev any)

// BindingID names one Bind call.
type BindingID string

type binding struct {
	id       BindingID
	held     []Token
	extended Extended
	inert    bool
	fn       Callback
	removed  atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine tracks held keys and fires combination callbacks.
type Engine struct {
	mu        sync.Mutex
	emitter   Emitter
	logger    *slog.Logger
	bindings  []*binding
	held      map[Token]struct{}
	satisfied map[BindingID]struct{}
	subs      []*event.Subscription
	destroyed bool
}

// New creates an engine listening on emitter. Nothing is attached until the
// first Bind.
func New(emitter Emitter, opts ...Option) *Engine {
	e := &Engine{
		emitter:   emitter,
		logger:    slog.Default(),
		held:      make(map[Token]struct{}),
		satisfied: make(map[BindingID]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bind registers fn for combination. Binding the same combination twice
// registers two independent bindings. Returns "" after Destroy.
func (e *Engine) Bind(combination []Key, fn Callback) BindingID {
	tokens, ok := ParseCombination(combination)

	b := &binding{
		id:    BindingID(uuid.NewString()),
		fn:    fn,
		inert: !ok || fn == nil,
	}
	for _, t := range tokens {
		if t.Device != DeviceExtended {
			b.held = append(b.held, t)
			continue
		}
		if b.extended != ExtNone && b.extended != t.Extended {
			// wheel and drag never happen in the same event
			b.inert = true
		}
		b.extended = t.Extended
	}
	if b.inert {
		e.logger.Debug("[shortcut] combination can never fire", "combination", combination)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed {
		return ""
	}
	if e.subs == nil {
		e.attachLocked()
	}
	e.bindings = append(e.bindings, b)
	return b.id
}

// Unbind removes a single binding. Unknown IDs are ignored.
func (e *Engine) Unbind(id BindingID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, b := range e.bindings {
		if b.id == id {
			b.removed.Store(true)
			e.bindings = append(e.bindings[:i:i], e.bindings[i+1:]...)
			delete(e.satisfied, id)
			return
		}
	}
}

// UnbindAll removes every binding, detaches the engine from the bus and
// forgets held keys. It is safe to call at any time, any number of times.
func (e *Engine) UnbindAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetLocked()
}

// Destroy releases everything UnbindAll does and disables later Bind calls.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetLocked()
	e.destroyed = true
}

// Len returns the number of registered bindings.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bindings)
}

// Held reports whether the token is currently held.
func (e *Engine) Held(t Token) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.held[t]
	return ok
}

func (e *Engine) resetLocked() {
	for _, b := range e.bindings {
		b.removed.Store(true)
	}
	e.bindings = nil
	e.held = make(map[Token]struct{})
	e.satisfied = make(map[BindingID]struct{})
	e.detachLocked()
}

func (e *Engine) attachLocked() {
	if e.emitter == nil {
		e.subs = []*event.Subscription{}
		return
	}
	e.subs = []*event.Subscription{
		e.emitter.On(event.TopicKeyDown, e.onKeyDown),
		e.emitter.On(event.TopicKeyUp, e.onKeyUp),
		e.emitter.On(event.TopicPointerDown, e.onPointerDown),
		e.emitter.On(event.TopicPointerUp, e.onPointerUp),
		e.emitter.On(event.TopicWheel, e.onWheel),
		e.emitter.On(event.TopicDrag, e.onDrag),
		e.emitter.On(event.TopicBlur, e.onBlur),
	}
}

func (e *Engine) detachLocked() {
	for _, sub := range e.subs {
		e.safeOff(sub)
	}
	e.subs = nil
}

// safeOff detaches a listener from an emitter that may already be torn down.
func (e *Engine) safeOff(sub *event.Subscription) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("[shortcut] detach failed", "topic", sub.Topic(), "panic", r)
		}
	}()
	e.emitter.Off(sub)
}

func (e *Engine) onKeyDown(_ context.Context, payload any) error {
	ev, ok := payload.(key.Event)
	if !ok {
		return nil
	}
	e.press(TokenForKeyEvent(ev), ev)
	return nil
}

func (e *Engine) onKeyUp(_ context.Context, payload any) error {
	ev, ok := payload.(key.Event)
	if !ok {
		return nil
	}
	e.release(TokenForKeyEvent(ev))
	return nil
}

func (e *Engine) onPointerDown(_ context.Context, payload any) error {
	ev, ok := payload.(mouse.PointerEvent)
	if !ok {
		return nil
	}
	e.press(TokenForButton(ev.Button), ev)
	return nil
}

func (e *Engine) onPointerUp(_ context.Context, payload any) error {
	ev, ok := payload.(mouse.PointerEvent)
	if !ok {
		return nil
	}
	e.release(TokenForButton(ev.Button))
	return nil
}

func (e *Engine) onWheel(_ context.Context, payload any) error {
	e.trigger(ExtWheel, payload)
	return nil
}

func (e *Engine) onDrag(_ context.Context, payload any) error {
	e.trigger(ExtDrag, payload)
	return nil
}

func (e *Engine) onBlur(context.Context, any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.held = make(map[Token]struct{})
	e.satisfied = make(map[BindingID]struct{})
	return nil
}

// press records t as held and fires every binding it completes.
func (e *Engine) press(t Token, ev any) {
	if !t.Valid() {
		return
	}

	e.mu.Lock()
	e.held[t] = struct{}{}
	var fire []*binding
	for _, b := range e.bindings {
		if b.inert || b.extended != ExtNone {
			continue
		}
		if _, done := e.satisfied[b.id]; done {
			continue
		}
		if e.allHeldLocked(b.held) {
			e.satisfied[b.id] = struct{}{}
			fire = append(fire, b)
		}
	}
	e.mu.Unlock()

	run(fire, ev)
}

// release forgets t and re-arms every binding that contains it.
func (e *Engine) release(t Token) {
	if !t.Valid() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.held, t)
	for _, b := range e.bindings {
		for _, bt := range b.held {
			if bt == t {
				delete(e.satisfied, b.id)
				break
			}
		}
	}
}

// trigger fires bindings that include ext and whose other keys are held.
func (e *Engine) trigger(ext Extended, ev any) {
	e.mu.Lock()
	var fire []*binding
	for _, b := range e.bindings {
		if b.inert || b.extended != ext {
			continue
		}
		if e.allHeldLocked(b.held) {
			fire = append(fire, b)
		}
	}
	e.mu.Unlock()

	run(fire, ev)
}

func (e *Engine) allHeldLocked(tokens []Token) bool {
	for _, t := range tokens {
		if _, ok := e.held[t]; !ok {
			return false
		}
	}
	return true
}

// run invokes callbacks outside the engine lock, skipping bindings removed
// by an earlier callback in the same batch.
func run(fire []*binding, ev any) {
	for _, b := range fire {
		if b.removed.Load() {
			continue
		}
		b.fn(ev)
	}
}
