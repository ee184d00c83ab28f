// Package shortcut turns key, pointer-button, wheel and drag events into
// combination callbacks.
//
// A combination is a set of Keys that must be held at the same time:
//
//	eng := shortcut.New(graph)
//	eng.Bind([]shortcut.Key{"Control", "ArrowUp"}, func(ev any) { ... })
//	defer eng.Destroy()
//
// # Firing
//
// Combinations of keyboard and pointer-button keys are edge-triggered: a
// binding fires once when the last of its keys goes down and cannot fire
// again until one of its keys is released and the full set is pressed
// again. Pressing unrelated keys in between does not re-fire it.
//
// Combinations that include the extended keys "wheel" or "drag" fire on
// every wheel or drag event that happens while the rest of the
// combination is held.
//
// # Key Grammar
//
// Keys are matched case-insensitively:
//
//   - key names: "ArrowUp", "Up", "Enter", "Esc", "F5", "Space"
//   - modifier keys: "Control", "Ctrl", "Shift", "Alt", "Meta", "Cmd"
//   - single characters: "a", "+", "1" (letters ignore case)
//   - pointer buttons: "MouseLeft", "MouseRight", "pointer:middle"
//   - extended: "wheel", "drag"
//
// Unknown keys never raise an error. A combination containing one, or an
// empty combination, is accepted but can never fire.
//
// # Lifecycle
//
// The engine attaches its bus listeners on the first Bind and detaches all
// of them in UnbindAll, which also forgets held keys. Destroy does the same
// and turns later Bind calls into no-ops. Losing focus (the "blur" topic)
// clears held keys, since key-up events are not delivered while unfocused.
package shortcut
