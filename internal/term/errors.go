package term

import "errors"

// Sentinel errors for the term package.
var (
	// ErrInvalidSize is returned when a requested grid size is invalid.
	ErrInvalidSize = errors.New("invalid terminal size")

	// ErrClosed is returned when an operation is attempted on a closed terminal.
	ErrClosed = errors.New("terminal is closed")

	// ErrStub marks a recognized-but-unimplemented sequence (semantic stub).
	// It is passed to the configured LogSink; it is never returned to callers.
	ErrStub = errors.New("unimplemented terminal sequence")
)
