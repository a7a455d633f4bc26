package zone

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tzcore/internal/temporal"
)

func TestMapLocal_GapAndAmbiguity(t *testing.T) {
	z := newSummerZone(t)

	tests := []struct {
		name  string
		local temporal.LocalDateTime
		count int
		early string
		late  string
	}{
		{"before gap", local(2000, time.March, 10, 0, 59), 1, "winter", ""},
		{"gap start", local(2000, time.March, 10, 1, 0), 0, "", ""},
		{"inside gap", local(2000, time.March, 10, 1, 30), 0, "", ""},
		{"gap end", local(2000, time.March, 10, 2, 0), 1, "summer", ""},
		{"before ambiguity", local(2000, time.October, 5, 0, 59), 1, "summer", ""},
		{"ambiguity start", local(2000, time.October, 5, 1, 0), 2, "summer", "winter"},
		{"inside ambiguity", local(2000, time.October, 5, 1, 30), 2, "summer", "winter"},
		{"ambiguity end", local(2000, time.October, 5, 2, 0), 1, "winter", ""},
		{"far past", local(1900, time.January, 1, 0, 0), 1, "winter", ""},
		{"far future", local(2100, time.July, 1, 12, 0), 1, "winter", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MapLocal(z, tt.local)
			require.Equal(t, tt.count, m.Count())
			if tt.early != "" {
				assert.Equal(t, tt.early, m.EarlyInterval().Name())
			}
			if tt.late != "" {
				assert.Equal(t, tt.late, m.LateInterval().Name())
			}
		})
	}
}

func TestMapLocal_AmbiguousIntervalsOrderedByStart(t *testing.T) {
	z := newSummerZone(t)

	m := MapLocal(z, local(2000, time.October, 5, 1, 15))
	require.Equal(t, 2, m.Count())
	assert.True(t, m.EarlyInterval().Start().Before(m.LateInterval().Start()))
	assert.True(t, m.EarlyInterval().ContainsLocal(m.LocalDateTime()))
	assert.True(t, m.LateInterval().ContainsLocal(m.LocalDateTime()))
}

func TestMapLocalFrom_GuessDoesNotChangeResult(t *testing.T) {
	z := newSummerZone(t)
	l := local(2000, time.October, 5, 1, 30)

	for _, guessOffset := range []temporal.Offset{temporal.Zero, plus5, plus6} {
		m := MapLocalFrom(z, l, l.MinusOffset(guessOffset))
		assert.Equal(t, 2, m.Count(), "guess offset %s", guessOffset)
	}
}

func TestNextTransition_WalksIntervals(t *testing.T) {
	z := newSummerZone(t)

	tr, ok := NextTransition(z, temporal.FromUTC(2000, time.January, 1, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, Transition{Instant: summerStart, OffsetBefore: plus5, OffsetAfter: plus6}, tr)

	tr, ok = NextTransition(z, summerStart)
	require.True(t, ok)
	assert.Equal(t, Transition{Instant: summerEnd, OffsetBefore: plus6, OffsetAfter: plus5}, tr)

	_, ok = NextTransition(z, summerEnd)
	assert.False(t, ok, "no transitions after the last one")

	_, ok = NextTransition(z, temporal.AfterMaxValue)
	assert.False(t, ok)
}

func TestPreviousTransition_IncludesInstantItself(t *testing.T) {
	z := newSummerZone(t)

	tr, ok := PreviousTransition(z, summerEnd)
	require.True(t, ok)
	assert.Equal(t, summerEnd, tr.Instant)

	tr, ok = PreviousTransition(z, summerEnd.Plus(-temporal.Tick))
	require.True(t, ok)
	assert.Equal(t, summerStart, tr.Instant)
	assert.Equal(t, plus5, tr.OffsetBefore)
	assert.Equal(t, plus6, tr.OffsetAfter)

	_, ok = PreviousTransition(z, summerStart.Plus(-temporal.Tick))
	assert.False(t, ok)
}

func TestNextTransition_SkipsBoundariesWithoutOffsetChange(t *testing.T) {
	p, err := NewPrecalculated([]*ZoneInterval{
		MustZoneInterval("LMT", temporal.BeforeMinValue, summerStart, plus5, temporal.Zero),
		MustZoneInterval("STD", summerStart, summerEnd, plus5, temporal.Zero),
		MustZoneInterval("DST", summerEnd, temporal.AfterMaxValue, plus6, hour),
	}, nil)
	require.NoError(t, err)

	tr, ok := NextTransition(p, temporal.MinValue)
	require.True(t, ok)
	assert.Equal(t, summerEnd, tr.Instant)
}

func TestTransitions_Range(t *testing.T) {
	z := newSummerZone(t)

	all := slices.Collect(Transitions(z, temporal.BeforeMinValue, temporal.AfterMaxValue))
	require.Len(t, all, 2)
	assert.Equal(t, summerStart, all[0].Instant)
	assert.Equal(t, summerEnd, all[1].Instant)

	fromStart := slices.Collect(Transitions(z, summerStart, summerEnd))
	require.Len(t, fromStart, 1, "start is inclusive, end exclusive")
	assert.Equal(t, summerStart, fromStart[0].Instant)

	var first []Transition
	for tr := range Transitions(z, temporal.BeforeMinValue, temporal.AfterMaxValue) {
		first = append(first, tr)
		break
	}
	assert.Len(t, first, 1)
}

func TestIntervalsBetween(t *testing.T) {
	z := newSummerZone(t)

	ivs := IntervalsBetween(z,
		temporal.FromUTC(2000, time.January, 1, 0, 0, 0),
		temporal.FromUTC(2001, time.January, 1, 0, 0, 0))
	require.Len(t, ivs, 3)
	assert.Equal(t, "winter", ivs[0].Name())
	assert.Equal(t, "summer", ivs[1].Name())
	assert.Equal(t, "winter", ivs[2].Name())

	ivs = IntervalsBetween(z, summerStart, summerEnd)
	require.Len(t, ivs, 1)
	assert.Equal(t, "summer", ivs[0].Name())
}

func TestMap_EveryInstantIsCovered(t *testing.T) {
	z := newSummerZone(t)

	for at := temporal.FromUTC(2000, time.January, 1, 0, 0, 0); at.Before(temporal.FromUTC(2001, time.January, 1, 0, 0, 0)); at = at.Plus(7 * temporal.Hour) {
		iv := z.ZoneInterval(at)
		assert.True(t, iv.Contains(at), "%s not in %s", at, iv)
	}
	assert.True(t, z.ZoneInterval(temporal.BeforeMinValue).Contains(temporal.BeforeMinValue))
	assert.True(t, z.ZoneInterval(temporal.AfterMaxValue).Contains(temporal.AfterMaxValue))
}
