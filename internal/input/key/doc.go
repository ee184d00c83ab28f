// Package key provides keyboard key identifiers and key events for the
// interaction layer.
//
//   - Key: identifies a physical key (navigation, function, modifier keys, or runes)
//   - Modifier: bitmask of held modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key transition (down or up) with a timestamp
//
// Key names are looked up case-insensitively and accept both terminal-style
// names ("Up", "PgDn", "Esc") and browser-style names ("ArrowUp", "PageDown",
// "Control"), so combinations written for either vocabulary resolve to the
// same Key.
package key
