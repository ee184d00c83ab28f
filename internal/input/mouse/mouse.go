package mouse

import (
	"strings"
	"time"

	"github.com/dshills/graphview/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
	// ButtonScrollLeft indicates horizontal scroll left.
	ButtonScrollLeft
	// ButtonScrollRight indicates horizontal scroll right.
	ButtonScrollRight
	// ButtonBack is the back navigation button (mouse button 4).
	ButtonBack
	// ButtonForward is the forward navigation button (mouse button 5).
	ButtonForward
)

var buttonNames = map[Button]string{
	ButtonLeft:        "left",
	ButtonMiddle:      "middle",
	ButtonRight:       "right",
	ButtonScrollUp:    "scroll-up",
	ButtonScrollDown:  "scroll-down",
	ButtonScrollLeft:  "scroll-left",
	ButtonScrollRight: "scroll-right",
	ButtonBack:        "back",
	ButtonForward:     "forward",
}

// String returns a string representation of the button.
func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return "none"
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b >= ButtonScrollUp && b <= ButtonScrollRight
}

// ButtonFromName returns the button for a name such as "left", "MouseLeft"
// or "pointer:right" (case-insensitive). Scroll pseudo-buttons are not
// resolvable by name. Returns ButtonNone if the name is not recognized.
func ButtonFromName(name string) Button {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "pointer:")
	name = strings.TrimPrefix(name, "mouse")
	switch name {
	case "left", "primary":
		return ButtonLeft
	case "middle", "auxiliary":
		return ButtonMiddle
	case "right", "secondary":
		return ButtonRight
	case "back":
		return ButtonBack
	case "forward":
		return ButtonForward
	}
	return ButtonNone
}

// Action represents the type of pointer action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates pointer movement (no button held).
	ActionMove
	// ActionDrag indicates pointer movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Sub returns p - other.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// PointerEvent represents a pointer input event.
type PointerEvent struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action is the type of pointer action.
	Action Action

	// Delta is the movement since the previous drag update (ActionDrag only).
	Delta Position

	// Timestamp is when the event occurred.
	Timestamp time.Time
}
