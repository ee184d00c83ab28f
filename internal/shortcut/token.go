package shortcut

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/graphview/internal/input/key"
	"github.com/dshills/graphview/internal/input/mouse"
)

// Key is a single logical input as written in a combination, e.g. "ArrowUp",
// "Control" or "MouseLeft".
type Key string

// Device classifies a Token.
type Device uint8

const (
	DeviceInvalid Device = iota
	DeviceKeyboard
	DevicePointer
	DeviceExtended
)

// String returns the device name.
func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DevicePointer:
		return "pointer"
	case DeviceExtended:
		return "extended"
	default:
		return "invalid"
	}
}

// Extended identifies the instantaneous events a combination can include.
type Extended uint8

const (
	ExtNone Extended = iota
	ExtWheel
	ExtDrag
)

// Token is the normalized, comparable form of a Key.
type Token struct {
	Device   Device
	Key      key.Key
	Rune     rune
	Button   mouse.Button
	Extended Extended
}

// Valid reports whether the token can ever be matched.
func (t Token) Valid() bool {
	return t.Device != DeviceInvalid
}

// String returns a canonical name for the token.
func (t Token) String() string {
	switch t.Device {
	case DeviceKeyboard:
		if t.Key == key.KeyRune {
			return string(t.Rune)
		}
		return t.Key.String()
	case DevicePointer:
		return "Mouse" + strings.ToUpper(t.Button.String()[:1]) + t.Button.String()[1:]
	case DeviceExtended:
		if t.Extended == ExtWheel {
			return "wheel"
		}
		return "drag"
	default:
		return "invalid"
	}
}

// ParseKey normalizes k. Unrecognized keys yield an invalid Token.
func ParseKey(k Key) Token {
	raw := string(k)
	if raw != " " {
		raw = strings.TrimSpace(raw)
	}
	if raw == "" {
		return Token{}
	}

	switch strings.ToLower(raw) {
	case "wheel":
		return Token{Device: DeviceExtended, Extended: ExtWheel}
	case "drag":
		return Token{Device: DeviceExtended, Extended: ExtDrag}
	}

	if kk := key.KeyFromName(raw); kk != key.KeyNone {
		return keyToken(kk, 0)
	}

	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsPrint(r) {
			return keyToken(key.KeyRune, r)
		}
		return Token{}
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "mouse") || strings.HasPrefix(lower, "pointer:") {
		if b := mouse.ButtonFromName(raw); b != mouse.ButtonNone {
			return Token{Device: DevicePointer, Button: b}
		}
	}
	return Token{}
}

// ParseCombination normalizes every key of a combination. The second result
// is false if any key is invalid or the combination is empty.
func ParseCombination(keys []Key) ([]Token, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	tokens := make([]Token, 0, len(keys))
	ok := true
	for _, k := range keys {
		t := ParseKey(k)
		if !t.Valid() {
			ok = false
		}
		tokens = append(tokens, t)
	}
	return tokens, ok
}

// TokenForKeyEvent returns the token a key event presses or releases.
func TokenForKeyEvent(ev key.Event) Token {
	if ev.Key == key.KeyNone || (ev.Key == key.KeyRune && ev.Rune == 0) {
		return Token{}
	}
	return keyToken(ev.Key, ev.Rune)
}

// TokenForButton returns the token a pointer button presses or releases.
func TokenForButton(b mouse.Button) Token {
	if b == mouse.ButtonNone || b.IsScroll() {
		return Token{}
	}
	return Token{Device: DevicePointer, Button: b}
}

func keyToken(k key.Key, r rune) Token {
	if k != key.KeyRune {
		return Token{Device: DeviceKeyboard, Key: k}
	}
	if r == ' ' {
		return Token{Device: DeviceKeyboard, Key: key.KeySpace}
	}
	return Token{Device: DeviceKeyboard, Key: key.KeyRune, Rune: unicode.ToLower(r)}
}
