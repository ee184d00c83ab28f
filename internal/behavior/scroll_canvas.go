package behavior

import (
	"context"
	"errors"
	"sync"

	"github.com/dshills/graphview/internal/event"
	"github.com/dshills/graphview/internal/graph"
	"github.com/dshills/graphview/internal/input/mouse"
	"github.com/dshills/graphview/internal/shortcut"
	"github.com/dshills/graphview/internal/surface"
)

// TypeScrollCanvas is the registry type name of ScrollCanvas.
const TypeScrollCanvas = "scroll-canvas"

// StepDistance is the displacement of one combination-key pan.
const StepDistance = 10

// Direction restricts panning to one axis.
type Direction string

const (
	// DirectionBoth pans on both axes.
	DirectionBoth Direction = ""
	// DirectionX pans horizontally only.
	DirectionX Direction = "x"
	// DirectionY pans vertically only.
	DirectionY Direction = "y"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionBoth || d == DirectionX || d == DirectionY
}

// CombinationKey maps each pan direction to a key combination. Empty
// directions are bound but never fire.
type CombinationKey struct {
	Up    []shortcut.Key
	Down  []shortcut.Key
	Left  []shortcut.Key
	Right []shortcut.Key
}

// ScrollCanvasOptions configures a ScrollCanvas.
type ScrollCanvasOptions struct {
	// Key identifies the behavior on its graph.
	Key string

	// Enable gates every pan. Nil means enabled.
	Enable Enable

	// Trigger selects combination mode. Nil selects wheel mode.
	Trigger *CombinationKey

	// Direction restricts panning to one axis.
	Direction Direction

	// Sensitivity scales every displacement. Nil means 1; an explicit 0
	// freezes panning.
	Sensitivity *float64

	// OnFinish is called after each translation completes.
	OnFinish func()
}

// DefaultScrollCanvasOptions returns the defaults options are merged over.
func DefaultScrollCanvasOptions() ScrollCanvasOptions {
	return ScrollCanvasOptions{
		Enable:      EnableBool(true),
		Direction:   DirectionBoth,
		Sensitivity: Scale(1),
	}
}

// Scale returns a pointer to v for ScrollCanvasOptions.Sensitivity.
func Scale(v float64) *float64 {
	return &v
}

// merge returns o with zero fields taken from defaults.
func (o ScrollCanvasOptions) merge(defaults ScrollCanvasOptions) ScrollCanvasOptions {
	if o.Key == "" {
		o.Key = defaults.Key
	}
	if o.Enable == nil {
		o.Enable = defaults.Enable
	}
	if o.Trigger == nil {
		o.Trigger = defaults.Trigger
	}
	if o.Direction == DirectionBoth {
		o.Direction = defaults.Direction
	}
	if o.Sensitivity == nil {
		o.Sensitivity = defaults.Sensitivity
	}
	if o.Sensitivity != nil {
		o.Sensitivity = Scale(*o.Sensitivity)
	}
	if o.OnFinish == nil {
		o.OnFinish = defaults.OnFinish
	}
	return o
}

// ScrollCanvas pans the view in response to wheel events or key
// combinations.
type ScrollCanvas struct {
	Base

	mu       sync.Mutex
	opts     ScrollCanvasOptions
	closing  bool
	engine   *shortcut.Engine
	element  *surface.Element
	wheelSub *event.Subscription
}

// NewScrollCanvas creates a ScrollCanvas attached to ctx.Graph.
func NewScrollCanvas(ctx Context, opts ScrollCanvasOptions) *ScrollCanvas {
	s := &ScrollCanvas{}
	s.init(ctx)

	var bus shortcut.Emitter
	if ctx.Graph != nil {
		bus = ctx.Graph
	}
	s.engine = shortcut.New(bus, shortcut.WithLogger(s.Logger()))
	s.opts = opts.merge(DefaultScrollCanvasOptions())
	s.bindEvents()
	return s
}

// Type returns TypeScrollCanvas.
func (s *ScrollCanvas) Type() string {
	return TypeScrollCanvas
}

// Key returns the behavior key.
func (s *ScrollCanvas) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Key
}

// Options returns the merged options in effect.
func (s *ScrollCanvas) Options() ScrollCanvasOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Update replaces the options, merged over the defaults, and rebinds.
// An empty Key keeps the current key. A no-op after Destroy.
func (s *ScrollCanvas) Update(opts ScrollCanvasOptions) {
	if s.Destroyed() {
		return
	}
	s.mu.Lock()
	defaults := DefaultScrollCanvasOptions()
	defaults.Key = s.opts.Key
	s.opts = opts.merge(defaults)
	s.mu.Unlock()
	s.bindEvents()
}

// UpdateSpec implements Updatable. spec.Options must be nil, a
// ScrollCanvasOptions or a *ScrollCanvasOptions; a non-empty spec.Key
// replaces the options key.
func (s *ScrollCanvas) UpdateSpec(spec Spec) error {
	opts, err := scrollCanvasOptions(spec)
	if err != nil {
		return err
	}
	s.Update(opts)
	return nil
}

// bindEvents tears down both modes and installs the one the options select.
func (s *ScrollCanvas) bindEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeWheelLocked()
	s.engine.UnbindAll()

	if s.closing {
		return
	}

	trigger := s.opts.Trigger
	if trigger == nil {
		el := s.domElement()
		if el == nil {
			s.Logger().Debug("[behavior] no surface element, wheel panning inactive", "key", s.opts.Key)
			return
		}
		s.element = el
		s.wheelSub = el.AddEventListener(event.TopicWheel, s.onWheel)
		return
	}

	bindings := []struct {
		combo []shortcut.Key
		delta graph.Point
	}{
		{trigger.Up, graph.Point{X: 0, Y: -StepDistance}},
		{trigger.Down, graph.Point{X: 0, Y: StepDistance}},
		{trigger.Left, graph.Point{X: -StepDistance, Y: 0}},
		{trigger.Right, graph.Point{X: StepDistance, Y: 0}},
	}
	for _, b := range bindings {
		delta := b.delta
		s.engine.Bind(b.combo, func(ev any) {
			s.scroll(s.lifetime(), delta, ev)
		})
	}
}

func (s *ScrollCanvas) removeWheelLocked() {
	if s.element != nil && s.wheelSub != nil {
		s.element.RemoveEventListener(s.wheelSub)
	}
	s.element = nil
	s.wheelSub = nil
}

func (s *ScrollCanvas) domElement() *surface.Element {
	g := s.Context().Graph
	if g == nil {
		return nil
	}
	return g.Canvas().ContextService().DomElement()
}

func (s *ScrollCanvas) onWheel(_ context.Context, payload any) error {
	ev, ok := payload.(*mouse.WheelEvent)
	if !ok || ev == nil {
		return nil
	}
	ev.PreventDefault()
	s.scroll(s.lifetime(), graph.Point{X: -ev.DeltaX, Y: -ev.DeltaY}, ev)
	return nil
}

// scroll validates ev, formats value and issues the translation. The
// translation is issued before scroll returns; its completion is awaited
// on a tracked goroutine.
func (s *ScrollCanvas) scroll(ctx context.Context, value graph.Point, ev any) {
	if !s.validate(ev) {
		return
	}
	g := s.Context().Graph
	if g == nil {
		return
	}
	opts := s.Options()
	delta := formatDisplacement(value, opts.Direction, *opts.Sensitivity)

	done := g.TranslateBy(ctx, delta, false)
	s.Go("scroll-canvas.translate", func() {
		if err := <-done; err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, graph.ErrDestroyed) {
				s.Logger().Debug("[behavior] translation interrupted", "key", opts.Key, "error", err)
			} else {
				s.Logger().Warn("[behavior] translation failed", "key", opts.Key, "delta", delta, "error", err)
			}
			return
		}
		if s.Destroyed() || opts.OnFinish == nil {
			return
		}
		opts.OnFinish()
	})
}

func (s *ScrollCanvas) validate(ev any) bool {
	if s.Destroyed() {
		return false
	}
	s.mu.Lock()
	enable := s.opts.Enable
	s.mu.Unlock()
	return evalEnable(enable, ev, s.Logger())
}

// formatDisplacement scales value by sensitivity and applies the axis lock.
func formatDisplacement(value graph.Point, dir Direction, sensitivity float64) graph.Point {
	v := value.Scale(sensitivity)
	switch dir {
	case DirectionX:
		v.Y = 0
	case DirectionY:
		v.X = 0
	}
	return v
}

// Destroy unbinds the key combinations, removes the wheel listener and
// marks the behavior destroyed. Pending completions are dropped.
func (s *ScrollCanvas) Destroy() {
	s.mu.Lock()
	s.closing = true
	s.removeWheelLocked()
	s.engine.Destroy()
	s.mu.Unlock()

	s.Base.Destroy()
}
