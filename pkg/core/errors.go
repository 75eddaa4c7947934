package core

import "errors"

var (
	// ErrInvalidArgument is returned for wrong sample counts, wrong descriptor
	// lengths and otherwise malformed inputs.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDegenerateBreakpoints is returned when a piecewise segment has zero
	// width and its coefficients cannot be solved.
	ErrDegenerateBreakpoints = errors.New("degenerate breakpoints")
	// ErrLengthMismatch is returned when paired sequences differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
)
