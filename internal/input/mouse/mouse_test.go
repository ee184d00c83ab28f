package mouse

import (
	"testing"

	"github.com/dshills/graphview/internal/input/key"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
		{ButtonScrollUp, "scroll-up"},
		{ButtonScrollRight, "scroll-right"},
		{ButtonForward, "forward"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestButtonIsScroll(t *testing.T) {
	for _, b := range []Button{ButtonScrollUp, ButtonScrollDown, ButtonScrollLeft, ButtonScrollRight} {
		if !b.IsScroll() {
			t.Errorf("%s.IsScroll() = false, want true", b)
		}
	}
	for _, b := range []Button{ButtonNone, ButtonLeft, ButtonMiddle, ButtonRight, ButtonBack, ButtonForward} {
		if b.IsScroll() {
			t.Errorf("%s.IsScroll() = true, want false", b)
		}
	}
}

func TestButtonFromName(t *testing.T) {
	tests := []struct {
		name string
		want Button
	}{
		{"left", ButtonLeft},
		{"MouseLeft", ButtonLeft},
		{"pointer:right", ButtonRight},
		{"mousemiddle", ButtonMiddle},
		{"Back", ButtonBack},
		{"scroll-up", ButtonNone},
		{"thumb", ButtonNone},
	}
	for _, tt := range tests {
		if got := ButtonFromName(tt.name); got != tt.want {
			t.Errorf("ButtonFromName(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestWheelPreventDefault(t *testing.T) {
	ev := NewWheelEvent(1, 2, Position{}, key.ModNone)
	ev.SetCancelable(false)
	ev.PreventDefault()
	if ev.DefaultPrevented() {
		t.Fatal("PreventDefault took effect on a non-cancelable event")
	}
	ev.SetCancelable(true)
	ev.PreventDefault()
	if !ev.DefaultPrevented() {
		t.Fatal("PreventDefault ignored on a cancelable event")
	}
}

func TestWheelFromButton(t *testing.T) {
	tests := []struct {
		name   string
		button Button
		mods   key.Modifier
		dx, dy float64
	}{
		{"up", ButtonScrollUp, key.ModNone, 0, -3},
		{"down", ButtonScrollDown, key.ModNone, 0, 3},
		{"left", ButtonScrollLeft, key.ModNone, -3, 0},
		{"right", ButtonScrollRight, key.ModNone, 3, 0},
		{"shift-down", ButtonScrollDown, key.ModShift, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := WheelFromButton(tt.button, 3, Position{X: 1, Y: 2}, tt.mods)
			if ev == nil {
				t.Fatal("WheelFromButton returned nil")
			}
			if ev.DeltaX != tt.dx || ev.DeltaY != tt.dy {
				t.Errorf("delta = (%v, %v), want (%v, %v)", ev.DeltaX, ev.DeltaY, tt.dx, tt.dy)
			}
		})
	}
	if WheelFromButton(ButtonLeft, 3, Position{}, key.ModNone) != nil {
		t.Error("non-scroll button produced a wheel event")
	}
}

func TestDragTracker(t *testing.T) {
	var d DragTracker
	if _, ok := d.Move(Position{X: 5}); ok {
		t.Fatal("Move without press reported a drag")
	}

	d.Press(Position{X: 1, Y: 1}, ButtonLeft)
	if !d.Active() || d.Button() != ButtonLeft {
		t.Fatal("Press did not start tracking")
	}
	if _, ok := d.Move(Position{X: 1, Y: 1}); ok {
		t.Error("Move to the same position reported a drag")
	}
	delta, ok := d.Move(Position{X: 4, Y: 0})
	if !ok || delta != (Position{X: 3, Y: -1}) {
		t.Errorf("Move delta = %v, %v", delta, ok)
	}
	delta, _ = d.Move(Position{X: 6, Y: 2})
	if delta != (Position{X: 2, Y: 2}) {
		t.Errorf("second delta = %v", delta)
	}
	if d.Total() != (Position{X: 5, Y: 1}) {
		t.Errorf("Total() = %v", d.Total())
	}
	d.Release()
	if d.Active() {
		t.Error("Release left tracker active")
	}
}
