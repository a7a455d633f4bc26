package temporal

import (
	"fmt"
	"math"
	"time"
)

// Instant is a point on the UTC time line, held as ticks since the Unix epoch.
//
// The zero value is the Unix epoch.
type Instant struct {
	ticks int64
}

var (
	minTicks = daysFromCivil(MinYear, time.January, 1) * TicksPerDay
	maxTicks = daysFromCivil(MaxYear+1, time.January, 1)*TicksPerDay - 1

	// MinValue is the earliest valid instant (-9998-01-01T00:00:00Z).
	MinValue = Instant{ticks: minTicks}

	// MaxValue is the latest valid instant (9999-12-31T23:59:59.9999999Z).
	MaxValue = Instant{ticks: maxTicks}

	// BeforeMinValue marks an interval that is unbounded in the past.
	BeforeMinValue = Instant{ticks: math.MinInt64}

	// AfterMaxValue marks an interval that is unbounded in the future.
	AfterMaxValue = Instant{ticks: math.MaxInt64}
)

// FromUnixTicks creates an instant from ticks since the Unix epoch.
func FromUnixTicks(ticks int64) Instant {
	return Instant{ticks: ticks}
}

// FromUnixSeconds creates an instant from seconds since the Unix epoch.
func FromUnixSeconds(seconds int64) Instant {
	return Instant{ticks: seconds * TicksPerSecond}
}

// FromUTC creates an instant from UTC calendar fields. Out-of-range fields
// are not normalised; use NewLocalDateTime first when validation matters.
func FromUTC(year int, month time.Month, day, hour, minute, second int) Instant {
	days := daysFromCivil(year, month, day)
	return Instant{ticks: days*TicksPerDay +
		int64(hour)*TicksPerHour +
		int64(minute)*TicksPerMinute +
		int64(second)*TicksPerSecond}
}

// FromTime converts a time.Time.
func FromTime(t time.Time) Instant {
	return Instant{ticks: t.Unix()*TicksPerSecond + int64(t.Nanosecond())/100}
}

// UnixTicks returns the number of ticks since the Unix epoch.
func (i Instant) UnixTicks() int64 {
	return i.ticks
}

// IsValid reports whether i is neither BeforeMinValue nor AfterMaxValue.
func (i Instant) IsValid() bool {
	return i != BeforeMinValue && i != AfterMaxValue
}

// Compare returns -1, 0 or +1.
func (i Instant) Compare(o Instant) int {
	switch {
	case i.ticks < o.ticks:
		return -1
	case i.ticks > o.ticks:
		return 1
	}
	return 0
}

// Before reports whether i is strictly earlier than o.
func (i Instant) Before(o Instant) bool {
	return i.ticks < o.ticks
}

// After reports whether i is strictly later than o.
func (i Instant) After(o Instant) bool {
	return i.ticks > o.ticks
}

// Plus adds d. The unbounded sentinels are returned unchanged.
func (i Instant) Plus(d Duration) Instant {
	if !i.IsValid() {
		return i
	}
	return Instant{ticks: i.ticks + int64(d)}
}

// Minus returns the duration i - o. Both instants must be valid.
func (i Instant) Minus(o Instant) Duration {
	return Duration(i.ticks - o.ticks)
}

// PlusOffset returns the local date-time observed at i under offset o.
// Unbounded instants map to the matching unbounded local values.
func (i Instant) PlusOffset(o Offset) LocalDateTime {
	switch i {
	case BeforeMinValue:
		return LocalBeforeMinValue
	case AfterMaxValue:
		return LocalAfterMaxValue
	}
	return LocalDateTime{ticks: i.ticks + o.Ticks()}
}

// Time converts i to a UTC time.Time. Sentinels clamp to MinValue/MaxValue.
func (i Instant) Time() time.Time {
	t := i.ticks
	switch i {
	case BeforeMinValue:
		t = minTicks
	case AfterMaxValue:
		t = maxTicks
	}
	sec := floorDiv(t, TicksPerSecond)
	rem := t - sec*TicksPerSecond
	return time.Unix(sec, rem*100).UTC()
}

// String renders i in extended ISO-8601 form with a trailing Z.
func (i Instant) String() string {
	switch i {
	case BeforeMinValue:
		return "StartOfTime"
	case AfterMaxValue:
		return "EndOfTime"
	}
	return LocalDateTime{ticks: i.ticks}.String() + "Z"
}

// MarshalText implements encoding.TextMarshaler.
func (i Instant) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// MinInstant returns the earlier of a and b.
func MinInstant(a, b Instant) Instant {
	if a.ticks <= b.ticks {
		return a
	}
	return b
}

// MaxInstant returns the later of a and b.
func MaxInstant(a, b Instant) Instant {
	if a.ticks >= b.ticks {
		return a
	}
	return b
}

// ParseInstant parses an RFC 3339 timestamp such as "2000-03-09T20:00:00Z".
func ParseInstant(s string) (Instant, error) {
	switch s {
	case "StartOfTime":
		return BeforeMinValue, nil
	case "EndOfTime":
		return AfterMaxValue, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Instant{}, fmt.Errorf("parse instant %q: %w", s, err)
	}
	return FromTime(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Instant) UnmarshalText(text []byte) error {
	v, err := ParseInstant(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
