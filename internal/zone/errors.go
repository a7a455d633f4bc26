package zone

import (
	"errors"
	"fmt"

	"github.com/roach88/tzcore/internal/temporal"
)

var (
	// ErrInvalidInterval reports an interval whose end is not after its start
	// or whose offsets are inconsistent.
	ErrInvalidInterval = errors.New("invalid zone interval")

	// ErrInvalidMapping reports a mapping result whose count and intervals
	// disagree.
	ErrInvalidMapping = errors.New("invalid local mapping")

	// ErrInvalidOperation reports an accessor called on a mapping whose count
	// does not satisfy the accessor.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidPeriods reports a precalculated period list that is empty,
	// non-contiguous, or does not hand over to its tail.
	ErrInvalidPeriods = errors.New("invalid precalculated periods")

	// ErrSkippedTime reports a local date-time that falls in a gap.
	ErrSkippedTime = errors.New("local date-time is skipped")

	// ErrAmbiguousTime reports a local date-time that occurs twice.
	ErrAmbiguousTime = errors.New("local date-time is ambiguous")
)

// ResolveError is returned by Resolve when a policy rejects a mapping.
type ResolveError struct {
	// Kind is ErrSkippedTime or ErrAmbiguousTime.
	Kind error

	// Local is the local date-time that could not be resolved.
	Local temporal.LocalDateTime

	// Mapping is the mapping that was rejected.
	Mapping Mapping
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Local)
}

// Unwrap exposes Kind to errors.Is.
func (e *ResolveError) Unwrap() error {
	return e.Kind
}

// IsSkipped returns true if err reports a local date-time inside a gap.
// Uses errors.Is to handle wrapped errors.
func IsSkipped(err error) bool {
	return errors.Is(err, ErrSkippedTime)
}

// IsAmbiguous returns true if err reports an ambiguous local date-time.
// Uses errors.Is to handle wrapped errors.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousTime)
}
