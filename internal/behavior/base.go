package behavior

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/dshills/graphview/internal/graph"
	"github.com/dshills/graphview/internal/shortcut"
	"github.com/dshills/graphview/internal/surface"
	"github.com/dshills/graphview/internal/task"
)

// Graph is the view of the running graph that behaviors use.
// *graph.Graph implements it.
type Graph interface {
	shortcut.Emitter

	// TranslateBy moves the view. The channel receives one value when the
	// move settles.
	TranslateBy(ctx context.Context, delta graph.Point, absolute bool) <-chan error

	// Canvas returns the canvas the graph is drawn on. May be nil.
	Canvas() *surface.Canvas
}

// Context is the shared runtime a behavior is attached to. Behaviors read
// it but do not own it.
type Context struct {
	Graph  Graph
	Logger *slog.Logger
}

// Behavior is an attached interaction behavior.
type Behavior interface {
	// Type returns the registry type name, e.g. "scroll-canvas".
	Type() string

	// Key returns the key that identifies the behavior on its graph.
	Key() string

	// Destroy detaches all listeners. Safe to call more than once.
	Destroy()
}

// Updatable is a Behavior whose options can be replaced in place from a
// Spec of its own type. Implementations keep Key equal to spec.Key.
type Updatable interface {
	Behavior
	UpdateSpec(spec Spec) error
}

// Base holds the state every behavior shares. Embed it and call init from
// the constructor.
type Base struct {
	ctx       Context
	logger    *slog.Logger
	tasks     *task.Group
	life      context.Context
	cancel    context.CancelFunc
	destroyed atomic.Bool
}

func (b *Base) init(ctx Context) {
	b.ctx = ctx
	b.logger = ctx.Logger
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.tasks = task.NewGroup(b.logger)
	b.life, b.cancel = context.WithCancel(context.Background())
}

// Context returns the runtime context the behavior was created with.
func (b *Base) Context() Context {
	return b.ctx
}

// Logger returns the behavior's logger.
func (b *Base) Logger() *slog.Logger {
	return b.logger
}

// Destroyed reports whether Destroy has been called.
func (b *Base) Destroyed() bool {
	return b.destroyed.Load()
}

// Destroy marks the behavior destroyed and cancels in-flight work.
func (b *Base) Destroy() {
	if !b.destroyed.CompareAndSwap(false, true) {
		return
	}
	b.cancel()
}

// Go runs fn on a tracked goroutine.
func (b *Base) Go(name string, fn func()) {
	b.tasks.Go(name, fn)
}

// Wait blocks until every goroutine started with Go has returned.
func (b *Base) Wait() {
	b.tasks.Wait()
}

// lifetime returns a context cancelled by Destroy.
func (b *Base) lifetime() context.Context {
	return b.life
}

// Enable decides whether a behavior reacts to an event. It is either an
// EnableBool or an EnablePredicate; nil inherits the default.
type Enable interface {
	enabled(ev any) bool
}

// EnableBool enables or disables a behavior unconditionally.
type EnableBool bool

func (e EnableBool) enabled(any) bool { return bool(e) }

// EnablePredicate decides per event. ev is the triggering input event.
type EnablePredicate func(ev any) bool

func (p EnablePredicate) enabled(ev any) bool {
	if p == nil {
		return true
	}
	return p(ev)
}

// evalEnable resolves e for ev. A panicking predicate disables.
func evalEnable(e Enable, ev any, logger *slog.Logger) (ok bool) {
	if e == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("[behavior] enable predicate panicked", "panic", r)
			ok = false
		}
	}()
	return e.enabled(ev)
}

// isDisabled reports whether e is a constant false.
func isDisabled(e Enable) bool {
	b, ok := e.(EnableBool)
	return ok && !bool(b)
}
