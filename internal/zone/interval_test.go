package zone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tzcore/internal/temporal"
)

func TestZoneInterval_Construction(t *testing.T) {
	iv, err := NewZoneInterval("summer", summerStart, summerEnd, plus6, hour)
	require.NoError(t, err)

	assert.Equal(t, "summer", iv.Name())
	assert.Equal(t, summerStart, iv.Start())
	assert.Equal(t, summerEnd, iv.End())
	assert.Equal(t, plus6, iv.WallOffset())
	assert.Equal(t, hour, iv.Savings())
	assert.Equal(t, plus5, iv.StandardOffset())
	assert.Equal(t, iv.WallOffset(), iv.StandardOffset().Plus(iv.Savings()))
}

func TestZoneInterval_RejectsEmptyOrReversed(t *testing.T) {
	_, err := NewZoneInterval("x", summerStart, summerStart, plus5, temporal.Zero)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewZoneInterval("x", summerEnd, summerStart, plus5, temporal.Zero)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	assert.Panics(t, func() {
		MustZoneInterval("x", summerEnd, summerStart, plus5, temporal.Zero)
	})
}

func TestZoneInterval_RejectsOutOfRangeStandardOffset(t *testing.T) {
	_, err := NewZoneInterval("x", summerStart, summerEnd,
		temporal.OffsetFromHours(-23), temporal.OffsetFromHours(2))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestZoneInterval_LocalRange(t *testing.T) {
	iv := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)

	assert.Equal(t, local(2000, time.March, 10, 2, 0), iv.LocalStart())
	assert.Equal(t, local(2000, time.October, 5, 2, 0), iv.LocalEnd())

	d, ok := iv.Duration()
	require.True(t, ok)
	assert.Equal(t, summerEnd.Minus(summerStart), d)
}

func TestZoneInterval_Unbounded(t *testing.T) {
	iv := MustZoneInterval("forever", temporal.BeforeMinValue, temporal.AfterMaxValue, plus5, temporal.Zero)

	assert.False(t, iv.HasStart())
	assert.False(t, iv.HasEnd())
	assert.Equal(t, temporal.LocalBeforeMinValue, iv.LocalStart())
	assert.Equal(t, temporal.LocalAfterMaxValue, iv.LocalEnd())

	_, ok := iv.Duration()
	assert.False(t, ok)

	assert.True(t, iv.Contains(temporal.BeforeMinValue))
	assert.True(t, iv.Contains(temporal.MinValue))
	assert.True(t, iv.Contains(temporal.MaxValue))
	assert.True(t, iv.Contains(temporal.AfterMaxValue))
	assert.True(t, iv.ContainsLocal(local(1, time.January, 1, 0, 0)))
}

func TestZoneInterval_ContainsIsHalfOpen(t *testing.T) {
	iv := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)

	assert.True(t, iv.Contains(summerStart))
	assert.False(t, iv.Contains(summerStart.Plus(-temporal.Tick)))
	assert.True(t, iv.Contains(summerEnd.Plus(-temporal.Tick)))
	assert.False(t, iv.Contains(summerEnd))

	assert.True(t, iv.ContainsLocal(iv.LocalStart()))
	assert.False(t, iv.ContainsLocal(iv.LocalEnd()))
}

func TestZoneInterval_Equality(t *testing.T) {
	a := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)
	b := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)
	c := MustZoneInterval("other", summerStart, summerEnd, plus6, hour)

	assert.True(t, a.Equal(b))
	assert.NotSame(t, a, b)
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestZoneInterval_WithStartAndEnd(t *testing.T) {
	iv := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)

	shorter, err := iv.WithStart(summerStart.Plus(temporal.Day))
	require.NoError(t, err)
	assert.Equal(t, summerStart.Plus(temporal.Day), shorter.Start())
	assert.Equal(t, summerStart, iv.Start(), "original must be unchanged")

	_, err = iv.WithEnd(summerStart)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
