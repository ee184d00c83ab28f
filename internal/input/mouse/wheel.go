package mouse

import (
	"time"

	"github.com/dshills/graphview/internal/input/key"
)

// WheelEvent represents continuous wheel motion. Positive DeltaY means the
// wheel moved down (toward the user), positive DeltaX means right.
type WheelEvent struct {
	DeltaX float64
	DeltaY float64

	// Position is where the pointer was when the wheel moved.
	Position Position

	// Modifiers are the keyboard modifiers held during the event.
	Modifiers key.Modifier

	Timestamp time.Time

	cancelable       bool
	defaultPrevented bool
}

// NewWheelEvent creates a cancelable wheel event stamped with the current time.
func NewWheelEvent(dx, dy float64, pos Position, mods key.Modifier) *WheelEvent {
	return &WheelEvent{
		DeltaX:     dx,
		DeltaY:     dy,
		Position:   pos,
		Modifiers:  mods,
		Timestamp:  time.Now(),
		cancelable: true,
	}
}

// SetCancelable controls whether PreventDefault takes effect. Dispatchers
// clear it while a passive listener runs.
func (e *WheelEvent) SetCancelable(cancelable bool) {
	e.cancelable = cancelable
}

// PreventDefault asks the host not to apply its own scrolling.
// It has no effect while the event is not cancelable.
func (e *WheelEvent) PreventDefault() {
	if e.cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *WheelEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// WheelFromButton converts a terminal scroll pseudo-button into a wheel
// event moving step units along the matching axis. Returns nil for
// non-scroll buttons.
func WheelFromButton(b Button, step float64, pos Position, mods key.Modifier) *WheelEvent {
	var dx, dy float64
	switch b {
	case ButtonScrollUp:
		dy = -step
	case ButtonScrollDown:
		dy = step
	case ButtonScrollLeft:
		dx = -step
	case ButtonScrollRight:
		dx = step
	default:
		return nil
	}
	// Shift turns vertical wheel motion horizontal, as browsers do.
	if mods.HasShift() && dx == 0 {
		dx, dy = dy, 0
	}
	return NewWheelEvent(dx, dy, pos, mods)
}
