// Package graph is the runtime graph: a node-link model, the viewport the
// surface shows it through, and the event bus interaction behaviors listen on.
//
// Graph embeds *event.Emitter, so the surface publishes input with Emit and
// behaviors subscribe with On and Off.
//
// # Translation
//
// TranslateBy moves the view and returns a channel that receives exactly one
// value when the move settles. Without animation the move is applied before
// TranslateBy returns. With WithAnimation the move is spread over frames on a
// background goroutine; cancelling the context snaps the remaining distance
// and reports ctx.Err().
package graph

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/graphview/internal/event"
	"github.com/dshills/graphview/internal/surface"
	"github.com/dshills/graphview/internal/task"
)

// DefaultFrameInterval is the animation step interval.
const DefaultFrameInterval = 16 * time.Millisecond

// ViewportChange is the payload of event.TopicViewportChanged.
type ViewportChange struct {
	// Offset is the view offset after the step.
	Offset Point

	// Delta is the displacement applied by the step.
	Delta Point
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the graph's logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithAnimation animates every translation over d.
func WithAnimation(d time.Duration) Option {
	return func(g *Graph) {
		g.animate = d
	}
}

// WithFrameInterval sets the animation step interval.
func WithFrameInterval(d time.Duration) Option {
	return func(g *Graph) {
		if d > 0 {
			g.frame = d
		}
	}
}

// WithViewport sets the viewport instead of a default 80x24 one.
func WithViewport(v *Viewport) Option {
	return func(g *Graph) {
		if v != nil {
			g.viewport = v
		}
	}
}

// Graph is a running graph bound to a canvas.
type Graph struct {
	*event.Emitter

	mu        sync.RWMutex
	nodes     []Node
	nodeIndex map[string]int
	edges     []Edge

	canvas   *surface.Canvas
	viewport *Viewport
	logger   *slog.Logger
	animate  time.Duration
	frame    time.Duration

	tasks     *task.Group
	ctx       context.Context
	cancel    context.CancelFunc
	destroyed atomic.Bool
}

// New creates a graph drawn on canvas. canvas may be nil for a headless graph.
func New(canvas *surface.Canvas, opts ...Option) *Graph {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Graph{
		Emitter:   event.NewEmitter(),
		nodeIndex: make(map[string]int),
		canvas:    canvas,
		viewport:  NewViewport(80, 24),
		logger:    slog.Default(),
		frame:     DefaultFrameInterval,
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.tasks = task.NewGroup(g.logger)
	return g
}

// Canvas returns the canvas the graph is drawn on.
func (g *Graph) Canvas() *surface.Canvas {
	return g.canvas
}

// Viewport returns the graph's viewport.
func (g *Graph) Viewport() *Viewport {
	return g.viewport
}

// Position returns the current view offset.
func (g *Graph) Position() Point {
	return g.viewport.Offset()
}

// TranslateBy moves the view by delta, or to delta when absolute is true.
// The returned channel receives one value and is then closed.
func (g *Graph) TranslateBy(ctx context.Context, delta Point, absolute bool) <-chan error {
	done := make(chan error, 1)
	if g.destroyed.Load() {
		done <- ErrDestroyed
		close(done)
		return done
	}
	if absolute {
		delta = delta.Sub(g.viewport.Offset())
	}

	if g.animate <= 0 || delta.IsZero() {
		g.step(ctx, delta)
		done <- nil
		close(done)
		return done
	}

	g.tasks.Go("graph.translate", func() {
		defer close(done)
		done <- g.animateBy(ctx, delta)
	})
	return done
}

// TranslateTo moves the view so its offset equals p.
func (g *Graph) TranslateTo(ctx context.Context, p Point) <-chan error {
	return g.TranslateBy(ctx, p, true)
}

func (g *Graph) animateBy(ctx context.Context, delta Point) error {
	frames := int(math.Ceil(float64(g.animate) / float64(g.frame)))
	if frames < 1 {
		frames = 1
	}
	step := delta.Scale(1 / float64(frames))

	ticker := time.NewTicker(g.frame)
	defer ticker.Stop()

	var applied Point
	for i := 1; i <= frames; i++ {
		select {
		case <-ctx.Done():
			g.step(ctx, delta.Sub(applied))
			return ctx.Err()
		case <-g.ctx.Done():
			return ErrDestroyed
		case <-ticker.C:
		}

		s := step
		if i == frames {
			s = delta.Sub(applied)
		}
		g.step(ctx, s)
		applied = applied.Add(s)
	}
	return nil
}

func (g *Graph) step(ctx context.Context, delta Point) {
	offset := g.viewport.Translate(delta)
	change := ViewportChange{Offset: offset, Delta: delta}
	if err := g.Emit(context.WithoutCancel(ctx), event.TopicViewportChanged, change); err != nil {
		g.logger.Debug("[graph] viewport listener failed", "error", err)
	}
}

// Destroyed reports whether Destroy has been called.
func (g *Graph) Destroyed() bool {
	return g.destroyed.Load()
}

// Destroy stops running animations and closes the event bus. Safe to call
// more than once.
func (g *Graph) Destroy() {
	if !g.destroyed.CompareAndSwap(false, true) {
		return
	}
	g.cancel()
	g.tasks.Wait()
	g.Close()
}
