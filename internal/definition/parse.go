package definition

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/tzcore/internal/recurrence"
	"github.com/roach88/tzcore/internal/temporal"
)

var weekdays = map[string]temporal.IsoDayOfWeek{
	"mon": temporal.Monday, "monday": temporal.Monday,
	"tue": temporal.Tuesday, "tuesday": temporal.Tuesday,
	"wed": temporal.Wednesday, "wednesday": temporal.Wednesday,
	"thu": temporal.Thursday, "thursday": temporal.Thursday,
	"fri": temporal.Friday, "friday": temporal.Friday,
	"sat": temporal.Saturday, "saturday": temporal.Saturday,
	"sun": temporal.Sunday, "sunday": temporal.Sunday,
}

func parseWeekday(s string) (temporal.IsoDayOfWeek, error) {
	if s == "" {
		return 0, nil
	}
	d, ok := weekdays[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

// parseTimeOfDay accepts "[-]h[:mm[:ss]]"; hours may exceed 23.
func parseTimeOfDay(s string) (temporal.Duration, error) {
	neg := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), ":")
	if s == "" || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	var d temporal.Duration
	units := []temporal.Duration{temporal.Hour, temporal.Minute, temporal.Second}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (i > 0 && (len(p) != 2 || n > 59)) {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		d += temporal.Duration(n) * units[i]
	}
	if neg {
		d = -d
	}
	return d, nil
}

// parseOffset treats an empty string as zero.
func parseOffset(s string) (temporal.Offset, error) {
	if s == "" {
		return temporal.Zero, nil
	}
	return temporal.ParseOffset(s)
}

// parseBound parses a period boundary; empty is the given sentinel.
func parseBound(s string, unbounded temporal.Instant) (temporal.Instant, error) {
	if s == "" {
		return unbounded, nil
	}
	return temporal.ParseInstant(s)
}

func (r Rule) recurrence() (*recurrence.Recurrence, error) {
	savings, err := parseOffset(r.Savings)
	if err != nil {
		return nil, err
	}
	mode, err := recurrence.ParseMode(r.Mode)
	if err != nil {
		return nil, err
	}
	weekday, err := parseWeekday(r.Weekday)
	if err != nil {
		return nil, err
	}
	at, err := parseTimeOfDay(r.At)
	if err != nil {
		return nil, err
	}
	from, to := recurrence.BeginningOfTime, recurrence.EndOfTime
	if r.From != nil {
		from = *r.From
	}
	if r.To != nil {
		to = *r.To
	}
	return recurrence.NewRecurrence(r.Name, savings, recurrence.YearOffset{
		Mode:             mode,
		Month:            time.Month(r.Month),
		DayOfMonth:       r.Day,
		DayOfWeek:        weekday,
		AdvanceDayOfWeek: r.OnOrAfter,
		TimeOfDay:        at,
	}, from, to)
}
