package zone

import (
	"fmt"
	"sort"

	"github.com/roach88/tzcore/internal/temporal"
)

// Precalculated is a composite zone: an explicit, contiguous list of
// intervals followed by an optional tail map that takes over where the last
// interval ends.
//
// Tail intervals that began before the hand-over are clipped to start at it,
// which allocates a new interval per call; wrap the zone with the cache
// package when identity or speed matters.
type Precalculated struct {
	periods   []*ZoneInterval
	tail      Map
	tailStart temporal.Instant
	minOffset temporal.Offset
	maxOffset temporal.Offset
}

// NewPrecalculated validates periods and builds the zone. The first period
// must be unbounded in the past and each period must end where the next
// starts. With a nil tail the last period must be unbounded in the future;
// otherwise it must be bounded and the tail answers from its end onwards.
func NewPrecalculated(periods []*ZoneInterval, tail Map) (*Precalculated, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: at least one period is required", ErrInvalidPeriods)
	}
	if periods[0].HasStart() {
		return nil, fmt.Errorf("%w: first period %s must start at the beginning of time", ErrInvalidPeriods, periods[0])
	}
	for i := 1; i < len(periods); i++ {
		if periods[i-1].End() != periods[i].Start() {
			return nil, fmt.Errorf("%w: period %d ends at %s but period %d starts at %s",
				ErrInvalidPeriods, i-1, periods[i-1].End(), i, periods[i].Start())
		}
	}
	last := periods[len(periods)-1]
	switch {
	case tail == nil && last.HasEnd():
		return nil, fmt.Errorf("%w: last period %s must be unbounded without a tail", ErrInvalidPeriods, last)
	case tail != nil && !last.HasEnd():
		return nil, fmt.Errorf("%w: last period %s must end where the tail starts", ErrInvalidPeriods, last)
	}

	p := &Precalculated{
		periods:   append([]*ZoneInterval(nil), periods...),
		tail:      tail,
		tailStart: last.End(),
		minOffset: periods[0].WallOffset(),
		maxOffset: periods[0].WallOffset(),
	}
	for _, period := range periods[1:] {
		p.minOffset = temporal.MinOffset(p.minOffset, period.WallOffset())
		p.maxOffset = temporal.MaxOffset(p.maxOffset, period.WallOffset())
	}
	if tail != nil {
		p.minOffset = temporal.MinOffset(p.minOffset, tail.MinOffset())
		p.maxOffset = temporal.MaxOffset(p.maxOffset, tail.MaxOffset())
	}
	return p, nil
}

// ZoneInterval returns the period containing at, or the tail's interval.
func (p *Precalculated) ZoneInterval(at temporal.Instant) *ZoneInterval {
	if p.tail != nil && !at.Before(p.tailStart) {
		interval := p.tail.ZoneInterval(at)
		if interval.Start().Before(p.tailStart) {
			clipped, err := interval.WithStart(p.tailStart)
			if err != nil {
				panic(err)
			}
			return clipped
		}
		return interval
	}
	i := sort.Search(len(p.periods), func(i int) bool {
		return !p.periods[i].HasEnd() || at.Before(p.periods[i].End())
	})
	return p.periods[i]
}

// MinOffset returns the smallest wall offset of any period or the tail.
func (p *Precalculated) MinOffset() temporal.Offset { return p.minOffset }

// MaxOffset returns the largest wall offset of any period or the tail.
func (p *Precalculated) MaxOffset() temporal.Offset { return p.maxOffset }

// IsFixed reports whether the zone is a single period with no tail.
func (p *Precalculated) IsFixed() bool {
	return len(p.periods) == 1 && p.tail == nil
}

// Periods returns a copy of the explicit periods.
func (p *Precalculated) Periods() []*ZoneInterval {
	return append([]*ZoneInterval(nil), p.periods...)
}

// Tail returns the tail map, or nil.
func (p *Precalculated) Tail() Map { return p.tail }
