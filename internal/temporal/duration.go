package temporal

import (
	"math"
	"time"
)

// Tick-based units.
const (
	TicksPerMillisecond int64 = 10_000
	TicksPerSecond            = 1000 * TicksPerMillisecond
	TicksPerMinute            = 60 * TicksPerSecond
	TicksPerHour              = 60 * TicksPerMinute
	TicksPerDay               = 24 * TicksPerHour
)

// Duration is an elapsed span measured in 100 ns ticks.
type Duration int64

// Common durations.
const (
	Tick   Duration = 1
	Second Duration = Duration(TicksPerSecond)
	Minute Duration = Duration(TicksPerMinute)
	Hour   Duration = Duration(TicksPerHour)
	Day    Duration = Duration(TicksPerDay)
)

// FromStd converts a time.Duration, truncating to whole ticks.
func FromStd(d time.Duration) Duration {
	return Duration(int64(d) / 100)
}

// Ticks returns the number of ticks in d.
func (d Duration) Ticks() int64 {
	return int64(d)
}

// Std converts d to a time.Duration, saturating at the time.Duration range.
func (d Duration) Std() time.Duration {
	const limit = math.MaxInt64 / 100
	switch {
	case int64(d) > limit:
		return time.Duration(math.MaxInt64)
	case int64(d) < -limit:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(int64(d) * 100)
}

func (d Duration) String() string {
	return d.Std().String()
}
