package zone

import (
	"testing"
	"time"

	"github.com/roach88/tzcore/internal/temporal"
)

var (
	plus5 = temporal.OffsetFromHours(5)
	plus6 = temporal.OffsetFromHours(6)
	hour  = temporal.OffsetFromHours(1)

	// Summer time starts at 01:00 local (+05) on 2000-03-10 and ends at
	// 02:00 local (+06) on 2000-10-05.
	summerStart = temporal.FromUTC(2000, time.March, 9, 20, 0, 0)
	summerEnd   = temporal.FromUTC(2000, time.October, 4, 20, 0, 0)
)

// newSummerZone builds a precalculated zone with one summer period in 2000.
func newSummerZone(t *testing.T) *Precalculated {
	t.Helper()
	p, err := NewPrecalculated([]*ZoneInterval{
		MustZoneInterval("winter", temporal.BeforeMinValue, summerStart, plus5, temporal.Zero),
		MustZoneInterval("summer", summerStart, summerEnd, plus6, hour),
		MustZoneInterval("winter", summerEnd, temporal.AfterMaxValue, plus5, temporal.Zero),
	}, nil)
	if err != nil {
		t.Fatalf("NewPrecalculated() failed: %v", err)
	}
	return p
}

func local(year int, month time.Month, day, hour, minute int) temporal.LocalDateTime {
	return temporal.MustLocalDateTime(year, month, day, hour, minute, 0)
}
