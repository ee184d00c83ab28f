// Package mouse provides pointer and wheel input records for the
// interaction layer.
//
// # Core Types
//
// PointerEvent reports a button transition or pointer movement:
//
//	event := mouse.PointerEvent{
//	    Position:  mouse.Position{X: 10, Y: 4},
//	    Button:    mouse.ButtonLeft,
//	    Action:    mouse.ActionPress,
//	    Timestamp: time.Now(),
//	}
//
// WheelEvent carries continuous wheel deltas in view units. Listeners that
// were registered as non-passive may call PreventDefault to stop the host
// from applying its own scrolling:
//
//	ev := mouse.NewWheelEvent(0, 3, pos, key.ModNone)
//	ev.PreventDefault()
//
// Terminals report wheel motion as discrete button presses;
// WheelFromButton converts those into deltas.
//
// # Drag Handling
//
// DragTracker turns a press followed by movement into drag updates with the
// delta since the previous position.
package mouse
