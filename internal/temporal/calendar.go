package temporal

import (
	"strconv"
	"time"
)

// Supported calendar range.
const (
	MinYear = -9998
	MaxYear = 9999
)

// IsoDayOfWeek numbers days Monday=1 through Sunday=7.
type IsoDayOfWeek int

const (
	Monday IsoDayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// FromWeekday converts a time.Weekday (Sunday=0) to its ISO number.
func FromWeekday(wd time.Weekday) IsoDayOfWeek {
	if wd == time.Sunday {
		return Sunday
	}
	return IsoDayOfWeek(wd)
}

// Weekday converts back to time.Weekday.
func (d IsoDayOfWeek) Weekday() time.Weekday {
	return time.Weekday(int(d) % 7)
}

func (d IsoDayOfWeek) String() string {
	if d < Monday || d > Sunday {
		return "IsoDayOfWeek(" + strconv.Itoa(int(d)) + ")"
	}
	return d.Weekday().String()
}

// IsLeapYear reports whether year is a leap year in the ISO calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// daysFromCivil returns the number of days since 1970-01-01 for the given
// ISO date. Month and day must already be in range.
func daysFromCivil(year int, month time.Month, day int) int64 {
	y := int64(year)
	if month <= time.February {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (int64(month) + 9) % 12
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(days int64) (int, time.Month, int) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), time.Month(m), int(d)
}

// dayOfWeek returns the ISO day of week for a day count since the epoch.
// 1970-01-01 was a Thursday.
func dayOfWeek(days int64) IsoDayOfWeek {
	return IsoDayOfWeek(floorMod(days+3, 7) + 1)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
