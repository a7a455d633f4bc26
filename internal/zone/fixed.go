package zone

import "github.com/roach88/tzcore/internal/temporal"

// Fixed is a zone with a single, eternal offset.
type Fixed struct {
	id       string
	interval *ZoneInterval
}

// UTC is the fixed zone with zero offset.
var UTC = NewFixed("UTC", temporal.Zero)

// NewFixed creates a fixed zone. An empty id is replaced by FixedID(offset).
func NewFixed(id string, offset temporal.Offset) *Fixed {
	if id == "" {
		id = FixedID(offset)
	}
	return &Fixed{
		id:       id,
		interval: MustZoneInterval(id, temporal.BeforeMinValue, temporal.AfterMaxValue, offset, temporal.Zero),
	}
}

// FixedID returns the conventional identifier for a fixed offset: "UTC" for
// zero and "UTC+05:30" style otherwise.
func FixedID(offset temporal.Offset) string {
	if offset == temporal.Zero {
		return "UTC"
	}
	return "UTC" + offset.String()
}

// ID returns the zone identifier.
func (f *Fixed) ID() string { return f.id }

// Offset returns the zone's only offset.
func (f *Fixed) Offset() temporal.Offset { return f.interval.WallOffset() }

// ZoneInterval returns the same interval for every instant.
func (f *Fixed) ZoneInterval(temporal.Instant) *ZoneInterval { return f.interval }

// MinOffset returns the zone's offset.
func (f *Fixed) MinOffset() temporal.Offset { return f.interval.WallOffset() }

// MaxOffset returns the zone's offset.
func (f *Fixed) MaxOffset() temporal.Offset { return f.interval.WallOffset() }

// IsFixed always returns true.
func (f *Fixed) IsFixed() bool { return true }

// MapLocal always maps to the single interval.
func (f *Fixed) MapLocal(local temporal.LocalDateTime) Mapping {
	return Mapping{local: local, early: f.interval, count: 1}
}

// NextTransition always returns false.
func (f *Fixed) NextTransition(temporal.Instant) (Transition, bool) { return Transition{}, false }

// PreviousTransition always returns false.
func (f *Fixed) PreviousTransition(temporal.Instant) (Transition, bool) { return Transition{}, false }
