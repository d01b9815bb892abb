package processor

import "errors"

// Failure taxonomy for the frame processor. Callers classify failures with
// errors.Is; the wrapped message carries the diagnostic detail.
var (
	// ErrInvalidInput is returned for empty, mis-sized, or
	// unsupported-layout pixel buffers.
	ErrInvalidInput = errors.New("processor: invalid input")

	// ErrInvalidParameter is returned for bad algorithm parameters such
	// as an even or non-positive blur kernel. Inverted thresholds
	// (high < low) are a documented caller responsibility, not this
	// error: they degrade output but do not fail.
	ErrInvalidParameter = errors.New("processor: invalid parameter")

	// ErrProcessingFailure is returned when an internal transform step
	// fails. The operation is all-or-nothing: no partial output is ever
	// returned alongside it.
	ErrProcessingFailure = errors.New("processor: processing failure")
)
