package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/tzcore/internal/temporal"
)

// ErrInvalidYearOffset reports a YearOffset with out-of-range fields.
var ErrInvalidYearOffset = errors.New("invalid year offset")

// maxTimeOfDay bounds TimeOfDay; transition times such as 26:00 or -1:00
// are legal, up to a week either way.
const maxTimeOfDay = 167 * temporal.Hour

// Mode says which clock a YearOffset's time of day is read on.
type Mode int

const (
	// ModeUTC reads the time of day in UTC.
	ModeUTC Mode = iota
	// ModeStandard reads it on the zone's standard-time clock.
	ModeStandard
	// ModeWall reads it on the wall clock in force just before the transition.
	ModeWall
)

func (m Mode) String() string {
	switch m {
	case ModeUTC:
		return "utc"
	case ModeStandard:
		return "standard"
	case ModeWall:
		return "wall"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "utc", "standard" and "wall", or the zic suffixes
// "u", "s" and "w".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "utc", "u", "g", "z":
		return ModeUTC, nil
	case "standard", "s":
		return ModeStandard, nil
	case "wall", "w", "":
		return ModeWall, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidYearOffset, s)
}

// YearOffset locates a transition within a year.
//
// DayOfMonth is 1..31, or -1..-31 to count from the end of the month. With a
// zero DayOfWeek the transition falls on that day; otherwise it falls on the
// given weekday on or after (AdvanceDayOfWeek) or on or before that day,
// rolling into the adjacent month when needed. A day past the end of a short
// month is clamped to its last day. TimeOfDay is added to local midnight and
// may exceed 24 hours.
type YearOffset struct {
	Mode             Mode
	Month            time.Month
	DayOfMonth       int
	DayOfWeek        temporal.IsoDayOfWeek
	AdvanceDayOfWeek bool
	TimeOfDay        temporal.Duration
}

// Validate checks every field.
func (y YearOffset) Validate() error {
	switch {
	case y.Mode < ModeUTC || y.Mode > ModeWall:
		return fmt.Errorf("%w: mode %d", ErrInvalidYearOffset, int(y.Mode))
	case y.Month < time.January || y.Month > time.December:
		return fmt.Errorf("%w: month %d", ErrInvalidYearOffset, int(y.Month))
	case y.DayOfMonth == 0 || y.DayOfMonth > 31 || y.DayOfMonth < -31:
		return fmt.Errorf("%w: day of month %d", ErrInvalidYearOffset, y.DayOfMonth)
	case y.DayOfMonth > 0 && y.DayOfMonth > temporal.DaysInMonth(2000, y.Month):
		return fmt.Errorf("%w: %s has no day %d", ErrInvalidYearOffset, y.Month, y.DayOfMonth)
	case y.DayOfWeek < 0 || y.DayOfWeek > temporal.Sunday:
		return fmt.Errorf("%w: day of week %d", ErrInvalidYearOffset, int(y.DayOfWeek))
	case y.TimeOfDay > maxTimeOfDay || y.TimeOfDay < -maxTimeOfDay:
		return fmt.Errorf("%w: time of day %s", ErrInvalidYearOffset, y.TimeOfDay)
	}
	return nil
}

// OccurrenceForYear returns the local date-time of the transition in year.
func (y YearOffset) OccurrenceForYear(year int) temporal.LocalDateTime {
	dim := temporal.DaysInMonth(year, y.Month)
	day := y.DayOfMonth
	if day < 0 {
		day = dim + day + 1
	}
	day = max(1, min(day, dim))

	date := temporal.LocalMidnight(year, y.Month, day)
	if y.DayOfWeek != 0 {
		diff := int(y.DayOfWeek) - int(date.DayOfWeek())
		if y.AdvanceDayOfWeek && diff < 0 {
			diff += 7
		} else if !y.AdvanceDayOfWeek && diff > 0 {
			diff -= 7
		}
		date = date.PlusDays(diff)
	}
	return date.Plus(y.TimeOfDay)
}

// ruleOffset returns the offset that converts an occurrence to UTC.
func (y YearOffset) ruleOffset(standard, previousSavings temporal.Offset) temporal.Offset {
	switch y.Mode {
	case ModeUTC:
		return temporal.Zero
	case ModeStandard:
		return standard
	}
	return standard.Plus(previousSavings)
}

func (y YearOffset) String() string {
	var day string
	switch {
	case y.DayOfWeek == 0:
		day = fmt.Sprintf("%s %d", y.Month, y.DayOfMonth)
	case y.DayOfMonth == -1 && !y.AdvanceDayOfWeek:
		day = fmt.Sprintf("last %s of %s", y.DayOfWeek, y.Month)
	case y.AdvanceDayOfWeek:
		day = fmt.Sprintf("%s>=%d %s", y.DayOfWeek, y.DayOfMonth, y.Month)
	default:
		day = fmt.Sprintf("%s<=%d %s", y.DayOfWeek, y.DayOfMonth, y.Month)
	}
	tod := y.TimeOfDay.Std()
	return fmt.Sprintf("%s at %02d:%02d (%s)", day, int(tod.Hours()), int(tod.Minutes())%60, y.Mode)
}
