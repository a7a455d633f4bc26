package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_RoundTripAgainstTimePackage(t *testing.T) {
	dates := []time.Time{
		time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1969, time.December, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC),
		time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
	}

	for _, d := range dates {
		t.Run(d.Format("2006-01-02"), func(t *testing.T) {
			days := daysFromCivil(d.Year(), d.Month(), d.Day())
			assert.Equal(t, d.Unix()/86400, days)

			y, m, day := civilFromDays(days)
			assert.Equal(t, d.Year(), y)
			assert.Equal(t, d.Month(), m)
			assert.Equal(t, d.Day(), day)

			assert.Equal(t, d.Weekday(), dayOfWeek(days).Weekday())
		})
	}
}

func TestCalendar_DaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2000, time.February))
	assert.Equal(t, 28, DaysInMonth(1900, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2023, time.April))
	assert.Equal(t, 31, DaysInMonth(2023, time.December))
}

func TestIsoDayOfWeek_Conversion(t *testing.T) {
	assert.Equal(t, Sunday, FromWeekday(time.Sunday))
	assert.Equal(t, Monday, FromWeekday(time.Monday))
	assert.Equal(t, time.Sunday, Sunday.Weekday())
	assert.Equal(t, time.Saturday, Saturday.Weekday())
	assert.Equal(t, "Thursday", Thursday.String())
}

func TestInstant_FromUTCMatchesFromTime(t *testing.T) {
	want := FromTime(time.Date(2000, time.March, 9, 20, 0, 0, 0, time.UTC))
	got := FromUTC(2000, time.March, 9, 20, 0, 0)
	assert.Equal(t, want, got)
	assert.Equal(t, "2000-03-09T20:00:00Z", got.String())
	assert.Equal(t, time.Date(2000, time.March, 9, 20, 0, 0, 0, time.UTC), got.Time())
}

func TestInstant_Sentinels(t *testing.T) {
	assert.False(t, BeforeMinValue.IsValid())
	assert.False(t, AfterMaxValue.IsValid())
	assert.True(t, MinValue.IsValid())
	assert.True(t, MaxValue.IsValid())
	assert.True(t, BeforeMinValue.Before(MinValue))
	assert.True(t, AfterMaxValue.After(MaxValue))

	assert.Equal(t, BeforeMinValue, BeforeMinValue.Plus(Hour))
	assert.Equal(t, AfterMaxValue, AfterMaxValue.Plus(-Hour))
	assert.Equal(t, LocalBeforeMinValue, BeforeMinValue.PlusOffset(OffsetFromHours(5)))
	assert.Equal(t, LocalAfterMaxValue, AfterMaxValue.PlusOffset(OffsetFromHours(-5)))
	assert.Equal(t, "StartOfTime", BeforeMinValue.String())
	assert.Equal(t, "EndOfTime", AfterMaxValue.String())
	assert.Equal(t, "-9998-01-01T00:00:00Z", MinValue.String())
	assert.Equal(t, "9999-12-31T23:59:59.9999999Z", MaxValue.String())
}

func TestInstant_CompareAndArithmetic(t *testing.T) {
	a := FromUnixSeconds(100)
	b := a.Plus(Second)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, Second, b.Minus(a))
	assert.Equal(t, a, MinInstant(a, b))
	assert.Equal(t, b, MaxInstant(a, b))
}

func TestInstant_Parse(t *testing.T) {
	i, err := ParseInstant("2000-10-04T20:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, FromUTC(2000, time.October, 4, 20, 0, 0), i)

	i, err = ParseInstant("2000-10-05T01:00:00+05:00")
	require.NoError(t, err)
	assert.Equal(t, FromUTC(2000, time.October, 4, 20, 0, 0), i)

	i, err = ParseInstant("EndOfTime")
	require.NoError(t, err)
	assert.Equal(t, AfterMaxValue, i)

	_, err = ParseInstant("yesterday")
	assert.Error(t, err)
}

func TestOffset_Construction(t *testing.T) {
	o, err := NewOffset(5*3600 + 30*60)
	require.NoError(t, err)
	assert.Equal(t, "+05:30", o.String())

	_, err = NewOffset(24 * 3600)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
	_, err = NewOffset(-24 * 3600)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	assert.Panics(t, func() { OffsetFromHours(25) })
}

func TestOffset_Arithmetic(t *testing.T) {
	std := OffsetFromHours(5)
	savings := OffsetFromHours(1)

	assert.Equal(t, OffsetFromHours(6), std.Plus(savings))
	assert.Equal(t, OffsetFromHours(4), std.Minus(savings))
	assert.Equal(t, OffsetFromHours(-5), std.Negate())
	assert.Equal(t, std, MinOffset(std, std.Plus(savings)))
	assert.Equal(t, std.Plus(savings), MaxOffset(std, std.Plus(savings)))
	assert.Equal(t, int64(5*3600)*TicksPerSecond, std.Ticks())
}

func TestOffset_ParseAndFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+05", "+05:00"},
		{"-08:00", "-08:00"},
		{"+05:45", "+05:45"},
		{"+00:44:30", "+00:44:30"},
		{"Z", "+00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			o, err := ParseOffset(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, o.String())
		})
	}

	for _, bad := range []string{"", "5", "+5:99", "+25", "+01:02:03:04", "+aa"} {
		_, err := ParseOffset(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestLocalDateTime_Validation(t *testing.T) {
	_, err := NewLocalDateTime(2001, time.February, 29, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidLocalDateTime)

	_, err = NewLocalDateTime(2000, time.February, 29, 24, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidLocalDateTime)

	_, err = NewLocalDateTime(10000, time.January, 1, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidLocalDateTime)

	l, err := NewLocalDateTime(2000, time.February, 29, 23, 59, 59)
	require.NoError(t, err)
	assert.Equal(t, "2000-02-29T23:59:59", l.String())
}

func TestLocalDateTime_Fields(t *testing.T) {
	l := MustLocalDateTime(2000, time.March, 10, 1, 30, 15)

	y, m, d := l.Date()
	assert.Equal(t, 2000, y)
	assert.Equal(t, time.March, m)
	assert.Equal(t, 10, d)

	h, mi, s := l.Clock()
	assert.Equal(t, 1, h)
	assert.Equal(t, 30, mi)
	assert.Equal(t, 15, s)

	assert.Equal(t, Friday, l.DayOfWeek())
	assert.Equal(t, Hour+30*Minute+15*Second, l.TimeOfDay())
}

func TestLocalDateTime_NegativeYearFormatting(t *testing.T) {
	l := LocalMidnight(-5, time.June, 1)
	assert.Equal(t, "-0005-06-01T00:00:00", l.String())
	assert.Equal(t, -5, l.Year())
}

func TestLocalDateTime_OffsetConversion(t *testing.T) {
	l := MustLocalDateTime(2000, time.March, 10, 1, 0, 0)
	i := l.MinusOffset(OffsetFromHours(5))

	assert.Equal(t, FromUTC(2000, time.March, 9, 20, 0, 0), i)
	assert.Equal(t, l, i.PlusOffset(OffsetFromHours(5)))

	assert.Equal(t, BeforeMinValue, LocalBeforeMinValue.MinusOffset(OffsetFromHours(1)))
	assert.Equal(t, AfterMaxValue, LocalAfterMaxValue.MinusOffset(OffsetFromHours(1)))
}

func TestLocalDateTime_Parse(t *testing.T) {
	l, err := ParseLocalDateTime("2000-10-05T01:30")
	require.NoError(t, err)
	assert.Equal(t, MustLocalDateTime(2000, time.October, 5, 1, 30, 0), l)

	l, err = ParseLocalDateTime("2000-10-05T01:30:45")
	require.NoError(t, err)
	assert.Equal(t, MustLocalDateTime(2000, time.October, 5, 1, 30, 45), l)

	_, err = ParseLocalDateTime("2000-13-05T01:30")
	assert.Error(t, err)
}

func TestDuration_Std(t *testing.T) {
	assert.Equal(t, time.Hour, Hour.Std())
	assert.Equal(t, Hour, FromStd(time.Hour))
	assert.Equal(t, "1h0m0s", Hour.String())
}
