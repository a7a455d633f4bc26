package zone

import (
	"iter"

	"github.com/roach88/tzcore/internal/temporal"
)

// Map is the capability every zone variant provides: the interval in force
// at any instant. ZoneInterval is total; every instant, including the
// unbounded sentinels, maps to exactly one interval.
type Map interface {
	ZoneInterval(at temporal.Instant) *ZoneInterval
	MinOffset() temporal.Offset
	MaxOffset() temporal.Offset
	IsFixed() bool
}

// LocalMapper is implemented by maps with their own local mapping strategy.
type LocalMapper interface {
	MapLocal(local temporal.LocalDateTime) Mapping
}

// TransitionSource is implemented by maps that can find transitions without
// walking intervals.
type TransitionSource interface {
	NextTransition(at temporal.Instant) (Transition, bool)
	PreviousTransition(at temporal.Instant) (Transition, bool)
}

// Transition is one discrete change of wall offset.
type Transition struct {
	Instant      temporal.Instant
	OffsetBefore temporal.Offset
	OffsetAfter  temporal.Offset
}

func (t Transition) String() string {
	return t.Instant.String() + " " + t.OffsetBefore.String() + " -> " + t.OffsetAfter.String()
}

// MapLocal returns the intervals whose wall-clock range contains local.
func MapLocal(m Map, local temporal.LocalDateTime) Mapping {
	if lm, ok := m.(LocalMapper); ok {
		return lm.MapLocal(local)
	}
	return MapLocalFrom(m, local, local.MinusOffset(m.MinOffset()))
}

// MapLocalFrom maps local using guess as the first approximation of the
// matching instant. The interval at guess and its immediate neighbours are
// examined, which is sufficient whenever intervals are longer than the
// spread between MinOffset and MaxOffset.
//
// Boundary policy: a gap's start belongs to neither interval and its end
// belongs to the later one; an ambiguity's start belongs to both intervals
// and its end only to the later one.
func MapLocalFrom(m Map, local temporal.LocalDateTime, guess temporal.Instant) Mapping {
	mapping, _ := mapLocal(m, local, guess)
	return mapping
}

// mapLocal additionally returns, for a gap, the interval that ends where the
// gap begins.
func mapLocal(m Map, local temporal.LocalDateTime, guess temporal.Instant) (Mapping, *ZoneInterval) {
	interval := m.ZoneInterval(guess)
	if interval.ContainsLocal(local) {
		if earlier := earlierMatching(m, interval, local); earlier != nil {
			return mustMapping(Ambiguous(local, earlier, interval)), nil
		}
		if later := laterMatching(m, interval, local); later != nil {
			return mustMapping(Ambiguous(local, interval, later)), nil
		}
		return mustMapping(Unambiguous(local, interval)), nil
	}

	if earlier := earlierMatching(m, interval, local); earlier != nil {
		return mustMapping(Unambiguous(local, earlier)), nil
	}
	if later := laterMatching(m, interval, local); later != nil {
		return mustMapping(Unambiguous(local, later)), nil
	}

	before := interval
	if interval.HasStart() && local.Before(interval.LocalStart()) {
		before = m.ZoneInterval(interval.Start().Plus(-temporal.Tick))
	}
	return NoMatch(local), before
}

func earlierMatching(m Map, interval *ZoneInterval, local temporal.LocalDateTime) *ZoneInterval {
	if !interval.HasStart() {
		return nil
	}
	candidate := m.ZoneInterval(interval.Start().Plus(-temporal.Tick))
	if candidate.ContainsLocal(local) {
		return candidate
	}
	return nil
}

func laterMatching(m Map, interval *ZoneInterval, local temporal.LocalDateTime) *ZoneInterval {
	if !interval.HasEnd() {
		return nil
	}
	candidate := m.ZoneInterval(interval.End())
	if candidate.ContainsLocal(local) {
		return candidate
	}
	return nil
}

// NextTransition returns the first transition strictly after at, or false
// when the zone never changes offset again.
func NextTransition(m Map, at temporal.Instant) (Transition, bool) {
	if ts, ok := m.(TransitionSource); ok {
		return ts.NextTransition(at)
	}
	interval := m.ZoneInterval(at)
	for interval.HasEnd() {
		next := m.ZoneInterval(interval.End())
		if next.WallOffset() != interval.WallOffset() {
			return Transition{
				Instant:      interval.End(),
				OffsetBefore: interval.WallOffset(),
				OffsetAfter:  next.WallOffset(),
			}, true
		}
		interval = next
	}
	return Transition{}, false
}

// PreviousTransition returns the latest transition at or before at, or
// false when the zone never changed offset before it.
func PreviousTransition(m Map, at temporal.Instant) (Transition, bool) {
	if ts, ok := m.(TransitionSource); ok {
		return ts.PreviousTransition(at)
	}
	interval := m.ZoneInterval(at)
	for interval.HasStart() {
		prev := m.ZoneInterval(interval.Start().Plus(-temporal.Tick))
		if prev.WallOffset() != interval.WallOffset() {
			return Transition{
				Instant:      interval.Start(),
				OffsetBefore: prev.WallOffset(),
				OffsetAfter:  interval.WallOffset(),
			}, true
		}
		interval = prev
	}
	return Transition{}, false
}

// Transitions yields every transition in [start, end) in order.
func Transitions(m Map, start, end temporal.Instant) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		at := start.Plus(-temporal.Tick)
		for {
			t, ok := NextTransition(m, at)
			if !ok || !t.Instant.Before(end) {
				return
			}
			if !yield(t) {
				return
			}
			at = t.Instant
		}
	}
}

// IntervalsBetween returns the intervals overlapping [start, end), in order.
func IntervalsBetween(m Map, start, end temporal.Instant) []*ZoneInterval {
	interval := m.ZoneInterval(start)
	out := []*ZoneInterval{interval}
	for interval.HasEnd() && interval.End().Before(end) {
		interval = m.ZoneInterval(interval.End())
		out = append(out, interval)
	}
	return out
}
