package testutil

import "github.com/roach88/tzcore/internal/definition"

// SummerZone is a daylight zone at +05:00 that springs forward at 01:00 wall
// time on March 10 and falls back at 02:00 wall time on October 5, every
// year.
func SummerZone() definition.Zone {
	return definition.Zone{
		ID:       "Test/Summer",
		Kind:     definition.KindDaylight,
		Standard: "+05:00",
		Rules: []definition.Rule{
			{Name: "summer", Savings: "+01:00", Month: 3, Day: 10, At: "1:00"},
			{Name: "winter", Savings: "+00:00", Month: 10, Day: 5, At: "2:00"},
		},
	}
}

// AbolishedZone follows the SummerZone rules from 1990 through 2000 and
// stays on standard time before and after.
func AbolishedZone() definition.Zone {
	from, to := 1990, 2000
	tail := SummerZone()
	tail.ID = ""
	for i := range tail.Rules {
		tail.Rules[i].From = &from
		tail.Rules[i].To = &to
	}
	return definition.Zone{
		ID:   "Test/Abolished",
		Kind: definition.KindPrecalculated,
		Periods: []definition.Period{
			{Name: "winter", End: "1990-03-09T20:00:00Z", Offset: "+05:00"},
		},
		Tail: &tail,
	}
}

// FixedZone is a fixed +05:30 zone.
func FixedZone() definition.Zone {
	return definition.Zone{ID: "Test/Fixed", Kind: definition.KindFixed, Offset: "+05:30"}
}
