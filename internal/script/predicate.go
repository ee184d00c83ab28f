// Package script compiles Lua enable predicates for behaviors.
//
// A predicate is either a Lua expression or a chunk that returns a value.
// The triggering event is available as the local "event":
//
//	event.type == "wheel" and not event.shift
//
//	if event.type == "key" then return event.key ~= "Escape" end
//	return true
//
// Event tables carry a "type" field ("key", "wheel", "pointer", "drag" or
// "unknown"), the modifier flags ctrl, alt, shift and meta, and
// type-specific fields: key, action (key and pointer), delta_x and delta_y
// (wheel and drag), button, x and y (wheel and pointer).
//
// Predicates run in a state with only the base, table, string and math
// libraries. Each evaluation is bounded by a timeout.
package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 50 * time.Millisecond

// Option configures a Predicate.
type Option func(*Predicate)

// WithTimeout sets the evaluation time limit.
func WithTimeout(d time.Duration) Option {
	return func(p *Predicate) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger Func reports evaluation errors to.
func WithLogger(l *slog.Logger) Option {
	return func(p *Predicate) {
		if l != nil {
			p.logger = l
		}
	}
}

// Predicate is a compiled Lua predicate. gopher-lua states are not
// goroutine-safe, so evaluations are serialized.
type Predicate struct {
	mu      sync.Mutex
	L       *lua.LState
	fn      *lua.LFunction
	source  string
	timeout time.Duration
	logger  *slog.Logger
	closed  bool
}

// Compile compiles src into a predicate. src is tried as an expression
// first and as a chunk second; a *CompileError reports the chunk error.
func Compile(src string, opts ...Option) (*Predicate, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptySource
	}

	p := &Predicate{
		source:  src,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	fn, err := L.LoadString("local event = ...; return " + src)
	if err != nil {
		fn, err = L.LoadString("local event = ...; " + src)
	}
	if err != nil {
		L.Close()
		return nil, &CompileError{Source: src, Err: err}
	}

	p.L = L
	p.fn = fn
	return p, nil
}

// openSafeLibraries opens the base, table, string and math libraries and
// removes the loaders.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(func(*lua.LState) int { return 0 }))
}

// Source returns the source the predicate was compiled from.
func (p *Predicate) Source() string {
	return p.source
}

// Eval runs the predicate for ev and reports Lua truthiness of the result.
func (p *Predicate) Eval(ev any) (result bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false, ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	p.L.SetContext(ctx)
	defer p.L.RemoveContext()

	top := p.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		p.L.SetTop(top)
	}()

	p.L.Push(p.fn)
	p.L.Push(eventTable(p.L, ev))
	if err := p.L.PCall(1, 1, nil); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return false, fmt.Errorf("%w after %s", ErrTimeout, p.timeout)
		}
		return false, fmt.Errorf("eval predicate: %w", err)
	}
	return lua.LVAsBool(p.L.Get(-1)), nil
}

// Func adapts the predicate to a plain function. Evaluation errors are
// logged and count as false.
func (p *Predicate) Func() func(ev any) bool {
	return func(ev any) bool {
		ok, err := p.Eval(ev)
		if err != nil {
			p.logger.Warn("[script] predicate failed", "source", p.source, "error", err)
			return false
		}
		return ok
	}
}

// Close releases the Lua state. Later evaluations return ErrClosed.
func (p *Predicate) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.L.Close()
}
