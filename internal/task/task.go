// Package task runs tracked background work with panic recovery.
//
// Behaviors issue view commands synchronously on the event loop and await
// their completion on a Group goroutine, so a slow command never blocks the
// next input event. Wait lets owners and tests block until every completion
// has settled.
package task

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// Group tracks goroutines started with Go. The zero value is ready to use
// and logs recovered panics to slog.Default.
type Group struct {
	wg     sync.WaitGroup
	logger *slog.Logger

	// OnPanic is called after a panic is recovered. May be nil.
	OnPanic func(name string, recovered any)
}

// NewGroup creates a group that logs to logger (nil means slog.Default).
func NewGroup(logger *slog.Logger) *Group {
	return &Group{logger: logger}
}

// Go runs fn on a new goroutine. A panic in fn is recovered and logged; it
// does not crash the process.
func (g *Group) Go(name string, fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.recover(name)
		fn()
	}()
}

// Wait blocks until every goroutine started with Go has returned.
func (g *Group) Wait() {
	g.wg.Wait()
}

func (g *Group) recover(name string) {
	r := recover()
	if r == nil {
		return
	}
	logger := g.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("[task] recovered panic",
		"task", name, "panic", r, "stack", string(debug.Stack()))
	if g.OnPanic != nil {
		func() {
			defer func() { _ = recover() }()
			g.OnPanic(name, r)
		}()
	}
}
