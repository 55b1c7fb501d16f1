package coil

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a design that cannot be laid out at all
	ErrInvalidInput = errors.New("invalid input")

	// ErrCoverageShortfall marks a layout that left strands unplaced
	ErrCoverageShortfall = errors.New("coverage shortfall")
)

// InputError reports which input made the design invalid
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// ShortfallError reports how many strands fit out of how many were requested
type ShortfallError struct {
	Requested int
	Placed    int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("window holds %d of %d strands (%d unplaced)", e.Placed, e.Requested, e.Requested-e.Placed)
}

func (e *ShortfallError) Unwrap() error {
	return ErrCoverageShortfall
}
