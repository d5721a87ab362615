package engine

import "errors"

// Sentinel errors returned by draw and lifecycle operations. The transport
// layer maps these to client-visible error codes.
var (
	// ErrNotRunning is returned when a draw or undo is attempted on an
	// event that is not in the running state.
	ErrNotRunning = errors.New("not running")

	// ErrEventEnded is returned when start is attempted on an ended event.
	ErrEventEnded = errors.New("event ended")

	// ErrPoolExhausted is returned when a draw is attempted with no
	// undrawn numbers left.
	ErrPoolExhausted = errors.New("no remaining numbers")

	// ErrNothingToUndo is returned when an undo is attempted with an
	// empty draw history.
	ErrNothingToUndo = errors.New("nothing to undo")
)
