package zone

import "github.com/roach88/tzcore/internal/temporal"

// AmbiguityPolicy chooses between the two instants of an ambiguous local
// date-time.
type AmbiguityPolicy int

const (
	ReturnEarlier AmbiguityPolicy = iota
	ReturnLater
	RejectAmbiguous
)

// GapPolicy chooses an instant for a local date-time inside a gap.
type GapPolicy int

const (
	// ShiftForward moves the local date-time forward by the length of the gap.
	ShiftForward GapPolicy = iota
	// ReturnStartOfLaterInterval returns the transition instant that opened
	// the gap.
	ReturnStartOfLaterInterval
	RejectSkipped
)

// Resolver combines the two policies.
type Resolver struct {
	Ambiguous AmbiguityPolicy
	Gap       GapPolicy
}

var (
	// LenientResolver never fails.
	LenientResolver = Resolver{Ambiguous: ReturnEarlier, Gap: ShiftForward}

	// StrictResolver fails for both gaps and ambiguities.
	StrictResolver = Resolver{Ambiguous: RejectAmbiguous, Gap: RejectSkipped}
)

// Resolve maps local to a single instant in m under r.
func Resolve(m Map, local temporal.LocalDateTime, r Resolver) (temporal.Instant, error) {
	mapping, before := mapLocal(m, local, local.MinusOffset(m.MinOffset()))
	switch mapping.Count() {
	case 1:
		return local.MinusOffset(mapping.early.WallOffset()), nil
	case 2:
		switch r.Ambiguous {
		case ReturnEarlier:
			return local.MinusOffset(mapping.early.WallOffset()), nil
		case ReturnLater:
			return local.MinusOffset(mapping.late.WallOffset()), nil
		}
		return temporal.Instant{}, &ResolveError{Kind: ErrAmbiguousTime, Local: local, Mapping: mapping}
	}

	switch r.Gap {
	case ShiftForward:
		return local.MinusOffset(before.WallOffset()), nil
	case ReturnStartOfLaterInterval:
		return before.End(), nil
	}
	return temporal.Instant{}, &ResolveError{Kind: ErrSkippedTime, Local: local, Mapping: mapping}
}
