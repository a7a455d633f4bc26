// Package zone defines zone intervals and the Map capability shared by every
// kind of time zone: fixed offset, precalculated composite, rule-based
// daylight, and the caching decorator.
//
// A Map answers one question: which ZoneInterval covers an instant. Everything
// else in this package is built from that question:
//
//   - MapLocal maps a local date-time to 0, 1 or 2 candidate intervals (gap,
//     unambiguous, ambiguous)
//   - NextTransition and PreviousTransition find offset changes, returning
//     false once the zone has no further transitions
//   - Transitions and IntervalsBetween enumerate a range
//   - Resolve turns a local date-time into an instant under a Resolver policy
//
// Maps that can answer these faster implement LocalMapper or
// TransitionSource; the package functions use those implementations when
// present.
//
// All types in this package are immutable once constructed and safe for
// concurrent use.
package zone
