// Package config loads behavior configuration from TOML and reloads it
// when the file changes.
//
// A configuration file lists behaviors to attach to the graph:
//
//	[graph]
//	animation = "120ms"
//
//	[terminal]
//	wheel_step = 3.0
//
//	[[behaviors]]
//	type = "scroll-canvas"
//	key = "wheel-pan"
//	direction = "x"
//	sensitivity = 2.0
//	enable = "not event.shift"
//
//	[[behaviors]]
//	type = "scroll-canvas"
//	key = "arrow-pan"
//	[behaviors.trigger]
//	up = ["ArrowUp"]
//	down = ["ArrowDown"]
//	left = ["ArrowLeft"]
//	right = ["ArrowRight"]
//
// enable is either a boolean or a Lua predicate (see package script).
//
// Load and Parse return a *File; Compile turns it into behavior.Specs
// ready for behavior.Controller.Reconcile. A Watcher reloads the file on
// change and hands each successfully parsed File to a callback.
package config
