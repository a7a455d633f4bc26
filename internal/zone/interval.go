package zone

import (
	"fmt"

	"github.com/roach88/tzcore/internal/temporal"
)

// ZoneInterval is one maximal half-open span [Start, End) during which a
// zone's name, wall offset and savings are constant.
//
// Start may be temporal.BeforeMinValue and End may be temporal.AfterMaxValue,
// meaning the interval is unbounded in that direction. Intervals are
// immutable and are handed out by pointer so that callers can rely on
// identity (see the cache package).
type ZoneInterval struct {
	name       string
	start      temporal.Instant
	end        temporal.Instant
	wallOffset temporal.Offset
	savings    temporal.Offset
}

// NewZoneInterval validates and creates an interval. The standard offset is
// derived as wallOffset - savings and must itself be a valid offset.
func NewZoneInterval(name string, start, end temporal.Instant, wallOffset, savings temporal.Offset) (*ZoneInterval, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end %s is not after start %s", ErrInvalidInterval, end, start)
	}
	if _, err := temporal.NewOffset(wallOffset.Seconds() - savings.Seconds()); err != nil {
		return nil, fmt.Errorf("%w: standard offset: %v", ErrInvalidInterval, err)
	}
	return &ZoneInterval{
		name:       name,
		start:      start,
		end:        end,
		wallOffset: wallOffset,
		savings:    savings,
	}, nil
}

// MustZoneInterval is like NewZoneInterval but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustZoneInterval(name string, start, end temporal.Instant, wallOffset, savings temporal.Offset) *ZoneInterval {
	iv, err := NewZoneInterval(name, start, end, wallOffset, savings)
	if err != nil {
		panic(err)
	}
	return iv
}

// Name returns the interval's abbreviation or rule name.
func (z *ZoneInterval) Name() string { return z.name }

// Start returns the inclusive start, possibly temporal.BeforeMinValue.
func (z *ZoneInterval) Start() temporal.Instant { return z.start }

// End returns the exclusive end, possibly temporal.AfterMaxValue.
func (z *ZoneInterval) End() temporal.Instant { return z.end }

// HasStart reports whether the interval is bounded in the past.
func (z *ZoneInterval) HasStart() bool { return z.start != temporal.BeforeMinValue }

// HasEnd reports whether the interval is bounded in the future.
func (z *ZoneInterval) HasEnd() bool { return z.end != temporal.AfterMaxValue }

// WallOffset returns the total UTC offset (standard offset plus savings).
func (z *ZoneInterval) WallOffset() temporal.Offset { return z.wallOffset }

// Savings returns the daylight savings portion of the wall offset.
func (z *ZoneInterval) Savings() temporal.Offset { return z.savings }

// StandardOffset returns the base offset, WallOffset - Savings.
func (z *ZoneInterval) StandardOffset() temporal.Offset {
	return z.wallOffset.Minus(z.savings)
}

// LocalStart returns Start as observed on the interval's wall clock.
func (z *ZoneInterval) LocalStart() temporal.LocalDateTime {
	return z.start.PlusOffset(z.wallOffset)
}

// LocalEnd returns End as observed on the interval's wall clock.
func (z *ZoneInterval) LocalEnd() temporal.LocalDateTime {
	return z.end.PlusOffset(z.wallOffset)
}

// Duration returns End - Start, or false when either end is unbounded.
func (z *ZoneInterval) Duration() (temporal.Duration, bool) {
	if !z.HasStart() || !z.HasEnd() {
		return 0, false
	}
	return z.end.Minus(z.start), true
}

// Contains reports whether Start <= t < End.
func (z *ZoneInterval) Contains(t temporal.Instant) bool {
	if t.Before(z.start) {
		return false
	}
	return !z.HasEnd() || t.Before(z.end)
}

// ContainsLocal reports whether LocalStart <= l < LocalEnd.
func (z *ZoneInterval) ContainsLocal(l temporal.LocalDateTime) bool {
	if z.HasStart() && l.Before(z.LocalStart()) {
		return false
	}
	return !z.HasEnd() || l.Before(z.LocalEnd())
}

// Equal reports whether both intervals carry identical attributes.
func (z *ZoneInterval) Equal(o *ZoneInterval) bool {
	if z == nil || o == nil {
		return z == o
	}
	return z.name == o.name &&
		z.start == o.start &&
		z.end == o.end &&
		z.wallOffset == o.wallOffset &&
		z.savings == o.savings
}

// WithStart returns a copy starting at start.
func (z *ZoneInterval) WithStart(start temporal.Instant) (*ZoneInterval, error) {
	return NewZoneInterval(z.name, start, z.end, z.wallOffset, z.savings)
}

// WithEnd returns a copy ending at end.
func (z *ZoneInterval) WithEnd(end temporal.Instant) (*ZoneInterval, error) {
	return NewZoneInterval(z.name, z.start, end, z.wallOffset, z.savings)
}

func (z *ZoneInterval) String() string {
	return fmt.Sprintf("%s: [%s, %s) %s (%s)", z.name, z.start, z.end, z.wallOffset, z.savings)
}
