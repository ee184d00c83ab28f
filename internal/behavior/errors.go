package behavior

import "errors"

// Sentinel errors for behavior construction and control.
var (
	// ErrUnknownType is returned when no factory is registered for a type.
	ErrUnknownType = errors.New("unknown behavior type")

	// ErrTypeRegistered is returned when registering a type twice.
	ErrTypeRegistered = errors.New("behavior type already registered")

	// ErrDuplicateKey is returned when two behaviors share a key.
	ErrDuplicateKey = errors.New("duplicate behavior key")

	// ErrOptionsType is returned when options of the wrong type are passed.
	ErrOptionsType = errors.New("options type mismatch")

	// ErrControllerDestroyed is returned by a destroyed controller.
	ErrControllerDestroyed = errors.New("controller destroyed")
)
