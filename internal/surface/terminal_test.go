package surface

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/graphview/internal/event"
	"github.com/dshills/graphview/internal/input/key"
	"github.com/dshills/graphview/internal/input/mouse"
)

type recorded struct {
	topic   event.Topic
	payload any
}

type recordingBus struct {
	mu     sync.Mutex
	events []recorded
}

func (b *recordingBus) Emit(_ context.Context, t event.Topic, payload any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recorded{t, payload})
	return nil
}

func (b *recordingBus) snapshot() []recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recorded(nil), b.events...)
}

func newTestTerminal(t *testing.T, opts ...TerminalOption) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	opts = append([]TerminalOption{WithTerminalLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	term := NewTerminalWithScreen(screen, opts...)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(term.Shutdown)
	return term
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		wantKey  key.Key
		wantRune rune
		wantMods key.Modifier
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.KeyRune, 'a', key.ModNone},
		{"space rune", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), key.KeySpace, 0, key.ModNone},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), key.KeyUp, 0, key.ModShift},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.KeyEnter, 0, key.ModNone},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), key.KeyRune, 'c', key.ModCtrl},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), key.KeyRune, 'x', key.ModAlt},
		{"function", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.KeyF5, 0, key.ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, r, mods := convertKey(tt.ev)
			if k != tt.wantKey || r != tt.wantRune || mods != tt.wantMods {
				t.Errorf("convertKey = (%v, %q, %v), want (%v, %q, %v)",
					k, r, mods, tt.wantKey, tt.wantRune, tt.wantMods)
			}
		})
	}
}

func TestTerminalRouteKeySynthesizesModifiers(t *testing.T) {
	term := newTestTerminal(t)
	bus := &recordingBus{}

	term.Route(context.Background(), bus, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl))

	got := bus.snapshot()
	want := []struct {
		topic event.Topic
		key   key.Key
	}{
		{event.TopicKeyDown, key.KeyControl},
		{event.TopicKeyDown, key.KeyUp},
		{event.TopicKeyUp, key.KeyUp},
		{event.TopicKeyUp, key.KeyControl},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, w := range want {
		ev, ok := got[i].payload.(key.Event)
		if !ok {
			t.Fatalf("event %d payload = %T, want key.Event", i, got[i].payload)
		}
		if got[i].topic != w.topic || ev.Key != w.key {
			t.Errorf("event %d = (%s, %v), want (%s, %v)", i, got[i].topic, ev.Key, w.topic, w.key)
		}
	}
}

func TestTerminalRouteWheel(t *testing.T) {
	term := newTestTerminal(t, WithWheelStep(2))
	bus := &recordingBus{}

	var native *mouse.WheelEvent
	el := term.Canvas().ContextService().DomElement()
	el.AddEventListener(event.TopicWheel, func(_ context.Context, payload any) error {
		native = payload.(*mouse.WheelEvent)
		native.PreventDefault()
		return nil
	})

	term.Route(context.Background(), bus, tcell.NewEventMouse(4, 5, tcell.WheelDown, tcell.ModNone))

	if native == nil {
		t.Fatal("element listener did not receive the wheel event")
	}
	if native.DeltaY != 2 || native.DeltaX != 0 {
		t.Errorf("delta = (%v, %v), want (0, 2)", native.DeltaX, native.DeltaY)
	}
	if !native.DefaultPrevented() {
		t.Error("DefaultPrevented() = false, want true")
	}

	got := bus.snapshot()
	if len(got) != 1 || got[0].topic != event.TopicWheel || got[0].payload != native {
		t.Errorf("bus events = %+v, want the same wheel event on %s", got, event.TopicWheel)
	}
}

func TestTerminalRoutePointerAndDrag(t *testing.T) {
	term := newTestTerminal(t)
	bus := &recordingBus{}
	ctx := context.Background()

	term.Route(ctx, bus, tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	term.Route(ctx, bus, tcell.NewEventMouse(4, 3, tcell.Button1, tcell.ModNone))
	term.Route(ctx, bus, tcell.NewEventMouse(4, 3, tcell.ButtonNone, tcell.ModNone))

	got := bus.snapshot()
	topics := []event.Topic{event.TopicPointerDown, event.TopicDrag, event.TopicPointerUp}
	if len(got) != len(topics) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(topics), got)
	}
	for i, topic := range topics {
		if got[i].topic != topic {
			t.Errorf("event %d topic = %s, want %s", i, got[i].topic, topic)
		}
	}

	drag := got[1].payload.(mouse.PointerEvent)
	if drag.Delta != (mouse.Position{X: 3, Y: 2}) {
		t.Errorf("drag delta = %+v, want {3 2}", drag.Delta)
	}
	if drag.Button != mouse.ButtonLeft {
		t.Errorf("drag button = %v, want left", drag.Button)
	}
}

func TestTerminalRouteBlur(t *testing.T) {
	term := newTestTerminal(t)
	bus := &recordingBus{}

	term.Route(context.Background(), bus, tcell.NewEventFocus(true))
	term.Route(context.Background(), bus, tcell.NewEventFocus(false))

	got := bus.snapshot()
	if len(got) != 1 || got[0].topic != event.TopicBlur {
		t.Errorf("events = %+v, want a single blur", got)
	}
}

func TestTerminalDrawText(t *testing.T) {
	term := newTestTerminal(t)

	term.DrawText(2, 1, "hi", tcell.StyleDefault)
	term.DrawText(-1, 0, "ab", tcell.StyleDefault)
	term.DrawText(0, 1000, "offscreen", tcell.StyleDefault)

	if r, _, _, _ := term.screen.GetContent(2, 1); r != 'h' {
		t.Errorf("cell (2,1) = %q, want 'h'", r)
	}
	if r, _, _, _ := term.screen.GetContent(3, 1); r != 'i' {
		t.Errorf("cell (3,1) = %q, want 'i'", r)
	}
	if r, _, _, _ := term.screen.GetContent(0, 0); r != 'b' {
		t.Errorf("cell (0,0) = %q, want 'b'", r)
	}
}

func TestTerminalRunStopsOnCancel(t *testing.T) {
	redraws := make(chan struct{}, 4)
	term := newTestTerminal(t, WithRedraw(func() { redraws <- struct{}{} }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- term.Run(ctx, &recordingBus{})
	}()

	term.Interrupt()
	select {
	case <-redraws:
	case <-time.After(2 * time.Second):
		t.Fatal("Interrupt did not trigger a redraw")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestTerminalShutdownDetachesCanvas(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	canvas := term.Canvas()

	term.Shutdown()

	if canvas.ContextService().DomElement() != nil {
		t.Error("DomElement() after Shutdown should be nil")
	}
}
