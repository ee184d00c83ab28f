// Package behavior implements interaction behaviors: components that listen
// to input on a graph and turn it into view changes.
//
// Every behavior embeds Base, which carries the shared Context, the
// destroyed flag and a task group for asynchronous completions:
//
//	sc := behavior.NewScrollCanvas(behavior.Context{Graph: g}, behavior.ScrollCanvasOptions{
//	    Direction:   behavior.DirectionX,
//	    Sensitivity: behavior.Scale(2),
//	})
//	defer sc.Destroy()
//
// # Options
//
// Options are merged over per-type defaults field by field. A zero-valued
// field inherits its default, so a nil Sensitivity means 1 and a nil Enable
// means enabled. An explicit Sensitivity of 0 freezes panning.
//
// # Scroll Canvas
//
// With no Trigger, ScrollCanvas listens for wheel events on the surface
// element, cancels their default action and pans by the negated deltas.
// With a Trigger it instead binds four key combinations through a
// shortcut.Engine, each panning 10 units in its direction. Switching modes
// with Update removes every listener of the old mode first.
//
// Translations are issued in event order. Their completion is awaited off
// the event loop, so OnFinish callbacks of translations with different
// latency may run out of order. Nothing runs after Destroy.
//
// # Controller
//
// A Controller owns the behaviors of one graph keyed by Spec.Key.
// Reconcile brings the set in line with a new list of specs, updating
// behaviors in place when their type is unchanged.
package behavior
