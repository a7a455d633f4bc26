package temporal

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidLocalDateTime is returned for out-of-range calendar fields.
var ErrInvalidLocalDateTime = errors.New("invalid local date-time")

// LocalDateTime is a date and time of day with no zone or offset, held as
// ticks since 1970-01-01T00:00 in an unspecified local frame.
type LocalDateTime struct {
	ticks int64
}

var (
	// LocalBeforeMinValue is the local image of BeforeMinValue.
	LocalBeforeMinValue = LocalDateTime{ticks: math.MinInt64}

	// LocalAfterMaxValue is the local image of AfterMaxValue.
	LocalAfterMaxValue = LocalDateTime{ticks: math.MaxInt64}
)

// NewLocalDateTime validates calendar fields and builds a LocalDateTime.
func NewLocalDateTime(year int, month time.Month, day, hour, minute, second int) (LocalDateTime, error) {
	switch {
	case year < MinYear || year > MaxYear:
		return LocalDateTime{}, fmt.Errorf("%w: year %d", ErrInvalidLocalDateTime, year)
	case month < time.January || month > time.December:
		return LocalDateTime{}, fmt.Errorf("%w: month %d", ErrInvalidLocalDateTime, month)
	case day < 1 || day > DaysInMonth(year, month):
		return LocalDateTime{}, fmt.Errorf("%w: day %d of %d-%02d", ErrInvalidLocalDateTime, day, year, month)
	case hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59:
		return LocalDateTime{}, fmt.Errorf("%w: time %02d:%02d:%02d", ErrInvalidLocalDateTime, hour, minute, second)
	}
	return LocalMidnight(year, month, day).Plus(
		Duration(int64(hour)*TicksPerHour + int64(minute)*TicksPerMinute + int64(second)*TicksPerSecond)), nil
}

// MustLocalDateTime is like NewLocalDateTime but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustLocalDateTime(year int, month time.Month, day, hour, minute, second int) LocalDateTime {
	l, err := NewLocalDateTime(year, month, day, hour, minute, second)
	if err != nil {
		panic(err)
	}
	return l
}

// LocalMidnight returns the start of the given date. The date is not
// validated; callers are expected to pass in-range fields.
func LocalMidnight(year int, month time.Month, day int) LocalDateTime {
	return LocalDateTime{ticks: daysFromCivil(year, month, day) * TicksPerDay}
}

// ParseLocalDateTime parses "2006-01-02T15:04:05" (seconds optional).
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	var (
		t   time.Time
		err error
	)
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err = time.Parse(layout, s); err == nil {
			break
		}
	}
	if err != nil {
		return LocalDateTime{}, fmt.Errorf("parse local date-time %q: %w", s, err)
	}
	return NewLocalDateTime(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// IsValid reports whether l is not one of the unbounded sentinels.
func (l LocalDateTime) IsValid() bool {
	return l != LocalBeforeMinValue && l != LocalAfterMaxValue
}

func (l LocalDateTime) days() int64 {
	return floorDiv(l.ticks, TicksPerDay)
}

// Date returns the calendar date of l.
func (l LocalDateTime) Date() (year int, month time.Month, day int) {
	return civilFromDays(l.days())
}

// Year returns the calendar year of l.
func (l LocalDateTime) Year() int {
	y, _, _ := l.Date()
	return y
}

// Month returns the month of l.
func (l LocalDateTime) Month() time.Month {
	_, m, _ := l.Date()
	return m
}

// Day returns the day of month of l.
func (l LocalDateTime) Day() int {
	_, _, d := l.Date()
	return d
}

// TimeOfDay returns the elapsed time since local midnight.
func (l LocalDateTime) TimeOfDay() Duration {
	return Duration(floorMod(l.ticks, TicksPerDay))
}

// Clock returns hour, minute and second.
func (l LocalDateTime) Clock() (hour, minute, second int) {
	tod := int64(l.TimeOfDay())
	return int(tod / TicksPerHour), int(tod / TicksPerMinute % 60), int(tod / TicksPerSecond % 60)
}

// DayOfWeek returns the ISO day of week.
func (l LocalDateTime) DayOfWeek() IsoDayOfWeek {
	return dayOfWeek(l.days())
}

// Plus adds d. Sentinels are returned unchanged.
func (l LocalDateTime) Plus(d Duration) LocalDateTime {
	if !l.IsValid() {
		return l
	}
	return LocalDateTime{ticks: l.ticks + int64(d)}
}

// PlusDays adds whole days.
func (l LocalDateTime) PlusDays(days int) LocalDateTime {
	return l.Plus(Duration(int64(days) * TicksPerDay))
}

// MinusOffset returns the instant at which a clock running at offset o shows
// l. Sentinels map to the matching unbounded instants.
func (l LocalDateTime) MinusOffset(o Offset) Instant {
	switch l {
	case LocalBeforeMinValue:
		return BeforeMinValue
	case LocalAfterMaxValue:
		return AfterMaxValue
	}
	return Instant{ticks: l.ticks - o.Ticks()}
}

// Compare returns -1, 0 or +1.
func (l LocalDateTime) Compare(o LocalDateTime) int {
	switch {
	case l.ticks < o.ticks:
		return -1
	case l.ticks > o.ticks:
		return 1
	}
	return 0
}

// Before reports whether l is strictly earlier than o.
func (l LocalDateTime) Before(o LocalDateTime) bool {
	return l.ticks < o.ticks
}

// After reports whether l is strictly later than o.
func (l LocalDateTime) After(o LocalDateTime) bool {
	return l.ticks > o.ticks
}

// String renders l as yyyy-MM-ddTHH:mm:ss, adding fractional seconds only when
// present.
func (l LocalDateTime) String() string {
	switch l {
	case LocalBeforeMinValue:
		return "StartOfTime"
	case LocalAfterMaxValue:
		return "EndOfTime"
	}
	y, mo, d := l.Date()
	h, mi, s := l.Clock()
	year := fmt.Sprintf("%04d", y)
	if y < 0 {
		year = fmt.Sprintf("-%04d", -y)
	}
	base := fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d", year, int(mo), d, h, mi, s)
	if frac := floorMod(l.ticks, TicksPerSecond); frac != 0 {
		base += fmt.Sprintf(".%07d", frac)
	}
	return base
}

// MarshalText implements encoding.TextMarshaler.
func (l LocalDateTime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LocalDateTime) UnmarshalText(text []byte) error {
	v, err := ParseLocalDateTime(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
