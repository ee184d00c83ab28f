package key

import (
	"fmt"
	"time"
	"unicode"
)

// Action is the transition a key event reports.
type Action uint8

const (
	// ActionDown reports a key being pressed.
	ActionDown Action = iota
	// ActionUp reports a key being released.
	ActionUp
)

// String returns "down" or "up".
func (a Action) String() string {
	if a == ActionUp {
		return "up"
	}
	return "down"
}

// Event represents a single key transition.
type Event struct {
	// Key identifies the key.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the modifier keys held when the event occurred.
	Modifiers Modifier

	// Action is the transition (down or up).
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Down creates a key-down event for a special key.
func Down(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods, Action: ActionDown, Timestamp: time.Now()}
}

// Up creates a key-up event for a special key.
func Up(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods, Action: ActionUp, Timestamp: time.Now()}
}

// RuneDown creates a key-down event for a character.
func RuneDown(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods, Action: ActionDown, Timestamp: time.Now()}
}

// RuneUp creates a key-up event for a character.
func RuneUp(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods, Action: ActionUp, Timestamp: time.Now()}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsDown returns true for key-down events.
func (e Event) IsDown() bool {
	return e.Action == ActionDown
}

// Name returns the key name the way a browser reports event.key:
// the character for rune keys, the key name otherwise.
func (e Event) Name() string {
	if e.IsRune() {
		return string(e.Rune)
	}
	return e.Key.String()
}

// Equals returns true if two events represent the same key transition.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers &&
		e.Action == other.Action
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s, Action: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String(), e.Action)
}
