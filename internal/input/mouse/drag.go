package mouse

// DragTracker turns press/move/release sequences into drag updates.
// It is not safe for concurrent use; the event loop owns it.
type DragTracker struct {
	active  bool
	button  Button
	start   Position
	current Position
}

// Press begins tracking a potential drag with the given button.
func (t *DragTracker) Press(pos Position, button Button) {
	t.active = true
	t.button = button
	t.start = pos
	t.current = pos
}

// Move records a pointer move. It returns the delta since the previous
// position and true when a drag is in progress and the pointer moved.
func (t *DragTracker) Move(pos Position) (Position, bool) {
	if !t.active || pos.Equal(t.current) {
		return Position{}, false
	}
	delta := pos.Sub(t.current)
	t.current = pos
	return delta, true
}

// Release ends the current drag.
func (t *DragTracker) Release() {
	*t = DragTracker{}
}

// Active returns true if a button is held.
func (t *DragTracker) Active() bool {
	return t.active
}

// Button returns the button held during the drag.
func (t *DragTracker) Button() Button {
	return t.button
}

// Total returns the distance dragged from the press position.
func (t *DragTracker) Total() Position {
	return t.current.Sub(t.start)
}
