package event

// Topic names an event stream.
type Topic string

// Input topics emitted on the graph bus and the surface element.
const (
	TopicKeyDown     Topic = "keydown"
	TopicKeyUp       Topic = "keyup"
	TopicPointerDown Topic = "pointerdown"
	TopicPointerUp   Topic = "pointerup"
	TopicDrag        Topic = "drag"
	TopicWheel       Topic = "wheel"
	// TopicBlur is emitted when the surface loses input focus.
	TopicBlur Topic = "blur"
)

// Graph lifecycle topics.
const (
	// TopicViewportChanged carries the new view offset after a translation step.
	TopicViewportChanged Topic = "viewport.changed"
)
