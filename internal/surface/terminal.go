package surface

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/graphview/internal/event"
	"github.com/dshills/graphview/internal/input/key"
	"github.com/dshills/graphview/internal/input/mouse"
)

// Bus is the logical event bus the terminal publishes input to.
type Bus interface {
	Emit(ctx context.Context, t event.Topic, payload any) error
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithWheelStep sets the wheel delta reported per terminal wheel tick.
func WithWheelStep(step float64) TerminalOption {
	return func(t *Terminal) {
		if step > 0 {
			t.wheelStep = step
		}
	}
}

// WithRedraw sets a callback run on the event loop after resizes and
// Interrupt calls.
func WithRedraw(fn func()) TerminalOption {
	return func(t *Terminal) {
		t.redraw = fn
	}
}

// WithTerminalLogger sets the terminal's logger.
func WithTerminalLogger(l *slog.Logger) TerminalOption {
	return func(t *Terminal) {
		if l != nil {
			t.logger = l
		}
	}
}

// Terminal is a tcell-backed surface. Run converts terminal events into
// key, pointer, drag, wheel and blur events.
//
// Terminals only report key presses, so every key event is published as a
// down/up pair, with the reported modifiers pressed before the key and
// released after it.
type Terminal struct {
	mu        sync.Mutex
	screen    tcell.Screen
	element   *Element
	canvas    *Canvas
	logger    *slog.Logger
	wheelStep float64
	redraw    func()
	started   bool

	// Event loop state, touched only by Route.
	buttons tcell.ButtonMask
	drag    mouse.DragTracker
}

// NewTerminal creates a terminal surface on the controlling tty.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, opts...), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen, opts ...TerminalOption) *Terminal {
	el := NewElement()
	t := &Terminal{
		screen:    screen,
		element:   el,
		canvas:    NewCanvas(el),
		logger:    slog.Default(),
		wheelStep: 3,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init prepares the screen and enables mouse and focus reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.started = true
	t.screen.EnableMouse()
	t.screen.EnableFocus()
	return nil
}

// Shutdown tears down the element and restores the terminal. Safe to call
// more than once, and before Init.
func (t *Terminal) Shutdown() {
	t.canvas.Detach()
	t.element.Remove()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		t.screen.Fini()
		t.started = false
	}
}

// Canvas returns the canvas whose element receives wheel events.
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// Size returns the current terminal dimensions.
func (t *Terminal) Size() (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// Clear clears the back buffer.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

// DrawText writes s starting at (x, y). Cells outside the screen are skipped.
func (t *Terminal) DrawText(x, y int, s string, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range s {
		if x >= 0 && x < w {
			t.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// Show flushes the back buffer to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

// Interrupt wakes the event loop and runs the redraw callback on it.
func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

// Run polls terminal events and routes them until ctx is cancelled or the
// screen is finalized.
func (t *Terminal) Run(ctx context.Context, bus Bus) error {
	stop := context.AfterFunc(ctx, t.Interrupt)
	defer stop()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		t.Route(ctx, bus, ev)
	}
}

// Route converts one tcell event and publishes it.
func (t *Terminal) Route(ctx context.Context, bus Bus, ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		t.routeKey(ctx, bus, e)
	case *tcell.EventMouse:
		t.routeMouse(ctx, bus, e)
	case *tcell.EventFocus:
		if !e.Focused {
			t.publish(ctx, bus, event.TopicBlur, nil)
		}
	case *tcell.EventResize:
		t.mu.Lock()
		t.screen.Sync()
		t.mu.Unlock()
		t.runRedraw()
	case *tcell.EventInterrupt:
		t.runRedraw()
	}
}

func (t *Terminal) runRedraw() {
	if t.redraw != nil {
		t.redraw()
	}
}

func (t *Terminal) routeKey(ctx context.Context, bus Bus, e *tcell.EventKey) {
	k, r, mods := convertKey(e)
	if k == key.KeyNone {
		return
	}

	modKeys := mods.Keys()
	for _, mk := range modKeys {
		t.publish(ctx, bus, event.TopicKeyDown, key.Down(mk, mods))
	}
	down, up := key.Down(k, mods), key.Up(k, mods)
	if k == key.KeyRune {
		down, up = key.RuneDown(r, mods), key.RuneUp(r, mods)
	}
	t.publish(ctx, bus, event.TopicKeyDown, down)
	t.publish(ctx, bus, event.TopicKeyUp, up)
	for i := len(modKeys) - 1; i >= 0; i-- {
		t.publish(ctx, bus, event.TopicKeyUp, key.Up(modKeys[i], key.ModNone))
	}
}

var pointerButtons = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.Button1, mouse.ButtonLeft},
	{tcell.Button3, mouse.ButtonMiddle},
	{tcell.Button2, mouse.ButtonRight},
}

var wheelButtons = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.WheelUp, mouse.ButtonScrollUp},
	{tcell.WheelDown, mouse.ButtonScrollDown},
	{tcell.WheelLeft, mouse.ButtonScrollLeft},
	{tcell.WheelRight, mouse.ButtonScrollRight},
}

func (t *Terminal) routeMouse(ctx context.Context, bus Bus, e *tcell.EventMouse) {
	x, y := e.Position()
	pos := mouse.Position{X: x, Y: y}
	mods := convertMod(e.Modifiers())
	buttons := e.Buttons()

	for _, wb := range wheelButtons {
		if buttons&wb.mask == 0 {
			continue
		}
		wheel := mouse.WheelFromButton(wb.button, t.wheelStep, pos, mods)
		// The native element sees the event first and may cancel it.
		if err := t.element.DispatchEvent(ctx, event.TopicWheel, wheel); err != nil {
			t.logger.Debug("[surface] wheel listener failed", "error", err)
		}
		t.publish(ctx, bus, event.TopicWheel, wheel)
	}

	prev := t.buttons
	t.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	for _, pb := range pointerButtons {
		was, is := prev&pb.mask != 0, buttons&pb.mask != 0
		switch {
		case is && !was:
			t.drag.Press(pos, pb.button)
			t.publish(ctx, bus, event.TopicPointerDown, mouse.PointerEvent{
				Position: pos, Button: pb.button, Modifiers: mods, Action: mouse.ActionPress, Timestamp: e.When(),
			})
		case was && !is:
			t.publish(ctx, bus, event.TopicPointerUp, mouse.PointerEvent{
				Position: pos, Button: pb.button, Modifiers: mods, Action: mouse.ActionRelease, Timestamp: e.When(),
			})
			if t.drag.Button() == pb.button {
				t.drag.Release()
			}
		}
	}

	if t.buttons != 0 {
		if delta, ok := t.drag.Move(pos); ok {
			t.publish(ctx, bus, event.TopicDrag, mouse.PointerEvent{
				Position: pos, Button: t.drag.Button(), Modifiers: mods,
				Action: mouse.ActionDrag, Delta: delta, Timestamp: e.When(),
			})
		}
	}
}

func (t *Terminal) publish(ctx context.Context, bus Bus, topic event.Topic, payload any) {
	if bus == nil {
		return
	}
	if err := bus.Emit(ctx, topic, payload); err != nil {
		t.logger.Debug("[surface] listener failed", "topic", topic, "error", err)
	}
}

var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertKey maps a tcell key event to a key, rune and modifiers.
// Control characters are reported as Ctrl plus the letter.
func convertKey(e *tcell.EventKey) (key.Key, rune, key.Modifier) {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		if e.Rune() == ' ' {
			return key.KeySpace, 0, mods
		}
		return key.KeyRune, e.Rune(), mods
	}
	if named, ok := namedKeys[k]; ok {
		return named, 0, mods
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.KeyRune, 'a' + rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)
	}
	if k == tcell.KeyCtrlSpace {
		return key.KeySpace, 0, mods.With(key.ModCtrl)
	}
	return key.KeyNone, 0, mods
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
