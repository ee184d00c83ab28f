package script

import (
	"errors"
	"fmt"
)

// Errors for predicate compilation and evaluation.
var (
	// ErrEmptySource is returned when compiling an empty predicate.
	ErrEmptySource = errors.New("empty predicate source")

	// ErrClosed is returned when evaluating a closed predicate.
	ErrClosed = errors.New("predicate is closed")

	// ErrTimeout is returned when evaluation exceeds its time limit.
	ErrTimeout = errors.New("predicate timed out")
)

// CompileError reports Lua source that failed to compile.
type CompileError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("compile predicate %q: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
