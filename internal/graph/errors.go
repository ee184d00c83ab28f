package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrDestroyed is returned by operations on a destroyed graph.
	ErrDestroyed = errors.New("graph destroyed")

	// ErrDuplicateNode is returned when adding a node whose ID exists.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrUnknownNode is returned when an edge references a missing node.
	ErrUnknownNode = errors.New("unknown node")
)
