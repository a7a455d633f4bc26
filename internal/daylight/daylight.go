// Package daylight implements a zone map driven by a standard offset and two
// alternating yearly rules, one for standard time and one for daylight time.
package daylight

import (
	"errors"
	"fmt"

	"github.com/roach88/tzcore/internal/recurrence"
	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/zone"
)

var (
	// ErrSameSavings reports two rules that would not change the offset.
	ErrSameSavings = errors.New("daylight rules must have different savings")
	// ErrMissingRule reports a nil recurrence.
	ErrMissingRule = errors.New("daylight map requires two rules")
)

// Map is a zone.Map computing intervals on demand from two recurrences. The
// rules may be valid over different year ranges: a firing of the rule already
// in force changes nothing and is not a transition.
//
// ZoneInterval allocates a fresh interval per call; wrap a Map in a cache
// for stable identity.
type Map struct {
	standard temporal.Offset
	a, b     *recurrence.Recurrence
	// initial is the rule in force before any rule fires.
	initial *recurrence.Recurrence
}

// New creates a daylight map. Before either rule fires the zone keeps
// standard time: the zero-savings rule if there is one, otherwise the rule
// saving less.
func New(standard temporal.Offset, a, b *recurrence.Recurrence) (*Map, error) {
	if a == nil || b == nil {
		return nil, ErrMissingRule
	}
	if a.Savings() == b.Savings() {
		return nil, fmt.Errorf("%w: %q and %q both save %s", ErrSameSavings, a.Name(), b.Name(), a.Savings())
	}
	for _, r := range []*recurrence.Recurrence{a, b} {
		if _, err := temporal.NewOffset(standard.Seconds() + r.Savings().Seconds()); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name(), err)
		}
	}

	m := &Map{standard: standard, a: a, b: b}
	switch {
	case b.Savings() == temporal.Zero:
		m.initial = b
	case a.Savings() == temporal.Zero, a.Savings().Compare(b.Savings()) < 0:
		m.initial = a
	default:
		m.initial = b
	}
	return m, nil
}

// StandardOffset returns the offset both rules' savings are added to.
func (m *Map) StandardOffset() temporal.Offset { return m.standard }

// Rules returns the two recurrences in construction order.
func (m *Map) Rules() (*recurrence.Recurrence, *recurrence.Recurrence) { return m.a, m.b }

// IsFixed always returns false.
func (m *Map) IsFixed() bool { return false }

// MinOffset returns the standard offset plus the smaller savings.
func (m *Map) MinOffset() temporal.Offset {
	return m.standard.Plus(temporal.MinOffset(m.a.Savings(), m.b.Savings()))
}

// MaxOffset returns the standard offset plus the larger savings.
func (m *Map) MaxOffset() temporal.Offset {
	return m.standard.Plus(temporal.MaxOffset(m.a.Savings(), m.b.Savings()))
}

// ZoneInterval returns the interval in force at at. Its start is the latest
// transition at or before at and its end the earliest one after it; either
// is unbounded when the rules have no such transition.
func (m *Map) ZoneInterval(at temporal.Instant) *zone.ZoneInterval {
	start, rule, ok := m.previousOrSame(at)
	if !ok {
		start, rule = temporal.BeforeMinValue, m.initial
	}
	end, _, ok := m.next(at)
	if !ok {
		end = temporal.AfterMaxValue
	}
	return zone.MustZoneInterval(rule.Name(), start, end, m.wall(rule), rule.Savings())
}

// MapLocal maps local starting from a standard-time guess, which lands
// within an hour or two of the answer.
func (m *Map) MapLocal(local temporal.LocalDateTime) zone.Mapping {
	return zone.MapLocalFrom(m, local, local.MinusOffset(m.standard))
}

// NextTransition returns the first transition strictly after at.
func (m *Map) NextTransition(at temporal.Instant) (zone.Transition, bool) {
	t, rule, ok := m.next(at)
	if !ok {
		return zone.Transition{}, false
	}
	return zone.Transition{Instant: t, OffsetBefore: m.wall(m.other(rule)), OffsetAfter: m.wall(rule)}, true
}

// PreviousTransition returns the last transition at or before at.
func (m *Map) PreviousTransition(at temporal.Instant) (zone.Transition, bool) {
	t, rule, ok := m.previousOrSame(at)
	if !ok {
		return zone.Transition{}, false
	}
	return zone.Transition{Instant: t, OffsetBefore: m.wall(m.other(rule)), OffsetAfter: m.wall(rule)}, true
}

func (m *Map) other(r *recurrence.Recurrence) *recurrence.Recurrence {
	if r == m.a {
		return m.b
	}
	return m.a
}

func (m *Map) wall(r *recurrence.Recurrence) temporal.Offset {
	return m.standard.Plus(r.Savings())
}

// ruleAt returns the rule in force at at. Every firing leaves its own rule in
// force, so this is the rule of the latest firing of either.
func (m *Map) ruleAt(at temporal.Instant) *recurrence.Recurrence {
	ta, okA := m.a.PreviousOrSame(at, m.standard, m.b.Savings())
	tb, okB := m.b.PreviousOrSame(at, m.standard, m.a.Savings())
	switch {
	case okA && (!okB || !tb.After(ta)):
		return m.a
	case okB:
		return m.b
	}
	return m.initial
}

// next finds the first transition after at: the next firing of the rule not
// in force. Each rule's wall time is read against the other rule's savings.
func (m *Map) next(at temporal.Instant) (temporal.Instant, *recurrence.Recurrence, bool) {
	cur := m.ruleAt(at)
	o := m.other(cur)
	t, ok := o.Next(at, m.standard, cur.Savings())
	if !ok {
		return temporal.Instant{}, nil, false
	}
	return t, o, true
}

// previousOrSame finds the transition that put the current rule in force:
// its first firing after the other rule last fired.
func (m *Map) previousOrSame(at temporal.Instant) (temporal.Instant, *recurrence.Recurrence, bool) {
	cur := m.ruleAt(at)
	o := m.other(cur)
	from, ok := o.PreviousOrSame(at, m.standard, cur.Savings())
	if !ok {
		if cur == m.initial {
			return temporal.Instant{}, nil, false
		}
		from = temporal.BeforeMinValue
	}
	t, ok := cur.Next(from, m.standard, o.Savings())
	if !ok || t.After(at) {
		// Both rules fired at the same instant; the other one wins.
		if from == temporal.BeforeMinValue {
			return temporal.Instant{}, nil, false
		}
		return from, o, true
	}
	return t, cur, true
}

func (m *Map) String() string {
	return fmt.Sprintf("daylight %s [%s; %s]", m.standard, m.a, m.b)
}
