package zone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tzcore/internal/temporal"
)

func TestMapping_Factories(t *testing.T) {
	summer := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)
	winter := MustZoneInterval("winter", summerEnd, temporal.AfterMaxValue, plus5, temporal.Zero)
	l := local(2000, time.October, 5, 1, 30)

	none := NoMatch(l)
	assert.Equal(t, 0, none.Count())
	assert.Nil(t, none.EarlyInterval())
	assert.Nil(t, none.LateInterval())

	one, err := Unambiguous(l, winter)
	require.NoError(t, err)
	assert.Equal(t, 1, one.Count())
	assert.Same(t, winter, one.EarlyInterval())
	assert.Nil(t, one.LateInterval())

	two, err := Ambiguous(l, summer, winter)
	require.NoError(t, err)
	assert.Equal(t, 2, two.Count())
	assert.Same(t, summer, two.EarlyInterval())
	assert.Same(t, winter, two.LateInterval())
	assert.Equal(t, l, two.LocalDateTime())
}

func TestMapping_FactoriesRejectInconsistentInput(t *testing.T) {
	summer := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)
	winter := MustZoneInterval("winter", summerEnd, temporal.AfterMaxValue, plus5, temporal.Zero)

	_, err := Unambiguous(local(2000, time.October, 5, 1, 30), nil)
	assert.ErrorIs(t, err, ErrInvalidMapping)

	_, err = Unambiguous(local(1999, time.January, 1, 0, 0), summer)
	assert.ErrorIs(t, err, ErrInvalidMapping, "interval must contain the local date-time")

	_, err = Ambiguous(local(2000, time.October, 5, 1, 30), winter, summer)
	assert.ErrorIs(t, err, ErrInvalidMapping, "early must precede late")

	_, err = Ambiguous(local(2000, time.October, 5, 2, 30), summer, winter)
	assert.ErrorIs(t, err, ErrInvalidMapping, "both intervals must contain the local date-time")

	_, err = Ambiguous(local(2000, time.October, 5, 1, 30), summer, nil)
	assert.ErrorIs(t, err, ErrInvalidMapping)
}

func TestMapping_Accessors(t *testing.T) {
	summer := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)
	winter := MustZoneInterval("winter", summerEnd, temporal.AfterMaxValue, plus5, temporal.Zero)
	l := local(2000, time.October, 5, 1, 30)

	t.Run("no match", func(t *testing.T) {
		m := NoMatch(l)
		_, err := m.Single()
		assert.ErrorIs(t, err, ErrInvalidOperation)
		_, err = m.First()
		assert.ErrorIs(t, err, ErrInvalidOperation)
		_, err = m.Last()
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})

	t.Run("unambiguous", func(t *testing.T) {
		m, err := Unambiguous(l, winter)
		require.NoError(t, err)

		single, err := m.Single()
		require.NoError(t, err)
		assert.Same(t, winter, single)

		first, err := m.First()
		require.NoError(t, err)
		assert.Same(t, winter, first)

		last, err := m.Last()
		require.NoError(t, err)
		assert.Same(t, winter, last)
	})

	t.Run("ambiguous", func(t *testing.T) {
		m, err := Ambiguous(l, summer, winter)
		require.NoError(t, err)

		_, err = m.Single()
		assert.ErrorIs(t, err, ErrInvalidOperation)
		assert.Contains(t, err.Error(), "found 2")

		first, err := m.First()
		require.NoError(t, err)
		assert.Same(t, summer, first)

		last, err := m.Last()
		require.NoError(t, err)
		assert.Same(t, winter, last)
	})
}

func TestMapping_OutOfRangeCountFailsEveryAccessor(t *testing.T) {
	summer := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)

	for _, count := range []int{-1, 3, 42} {
		m := Mapping{early: summer, late: summer, count: count}

		_, err := m.Single()
		assert.ErrorIs(t, err, ErrInvalidMapping, "Single with count %d", count)
		_, err = m.First()
		assert.ErrorIs(t, err, ErrInvalidMapping, "First with count %d", count)
		_, err = m.Last()
		assert.ErrorIs(t, err, ErrInvalidMapping, "Last with count %d", count)
	}
}

func TestMapping_String(t *testing.T) {
	summer := MustZoneInterval("summer", summerStart, summerEnd, plus6, hour)
	winter := MustZoneInterval("winter", summerEnd, temporal.AfterMaxValue, plus5, temporal.Zero)
	l := local(2000, time.October, 5, 1, 30)

	two, err := Ambiguous(l, summer, winter)
	require.NoError(t, err)
	assert.Equal(t, "2000-10-05T01:30:00: summer or winter", two.String())
	assert.Equal(t, "2000-10-05T01:30:00: no match", NoMatch(l).String())
}
