package zone

import (
	"fmt"

	"github.com/roach88/tzcore/internal/temporal"
)

// Mapping is the result of mapping a local date-time to zone intervals.
//
// Count is 0 when the local date-time falls in a gap, 1 when it is
// unambiguous, and 2 when it occurs twice. Build values with NoMatch,
// Unambiguous or Ambiguous; the zero value is an empty NoMatch.
type Mapping struct {
	local temporal.LocalDateTime
	early *ZoneInterval
	late  *ZoneInterval
	count int
}

// NoMatch returns a mapping with no candidate intervals.
func NoMatch(local temporal.LocalDateTime) Mapping {
	return Mapping{local: local}
}

// Unambiguous returns a mapping with exactly one candidate interval, which
// must contain local on its wall clock.
func Unambiguous(local temporal.LocalDateTime, interval *ZoneInterval) (Mapping, error) {
	if interval == nil {
		return Mapping{}, fmt.Errorf("%w: unambiguous mapping requires an interval", ErrInvalidMapping)
	}
	if !interval.ContainsLocal(local) {
		return Mapping{}, fmt.Errorf("%w: %s does not contain local %s", ErrInvalidMapping, interval, local)
	}
	return Mapping{local: local, early: interval, count: 1}, nil
}

// Ambiguous returns a mapping with two candidate intervals. early must start
// before late and both must contain local on their wall clocks.
func Ambiguous(local temporal.LocalDateTime, early, late *ZoneInterval) (Mapping, error) {
	if early == nil || late == nil {
		return Mapping{}, fmt.Errorf("%w: ambiguous mapping requires two intervals", ErrInvalidMapping)
	}
	if !early.Start().Before(late.Start()) {
		return Mapping{}, fmt.Errorf("%w: early interval %s does not precede %s", ErrInvalidMapping, early, late)
	}
	if !early.ContainsLocal(local) || !late.ContainsLocal(local) {
		return Mapping{}, fmt.Errorf("%w: local %s not contained in both %s and %s", ErrInvalidMapping, local, early, late)
	}
	return Mapping{local: local, early: early, late: late, count: 2}, nil
}

// mustMapping panics on construction errors that indicate a bug in a Map
// implementation rather than bad input.
func mustMapping(m Mapping, err error) Mapping {
	if err != nil {
		panic(err)
	}
	return m
}

// LocalDateTime returns the local date-time that was mapped.
func (m Mapping) LocalDateTime() temporal.LocalDateTime { return m.local }

// Count returns the number of candidate intervals.
func (m Mapping) Count() int { return m.count }

// EarlyInterval returns the earlier candidate, or nil when Count is 0.
func (m Mapping) EarlyInterval() *ZoneInterval { return m.early }

// LateInterval returns the later candidate, or nil unless Count is 2.
func (m Mapping) LateInterval() *ZoneInterval { return m.late }

// Single returns the only candidate. It fails unless Count is 1.
func (m Mapping) Single() (*ZoneInterval, error) {
	if err := m.checkCount(); err != nil {
		return nil, err
	}
	if m.count != 1 {
		return nil, fmt.Errorf("%w: Single requires exactly one interval for %s, found %d", ErrInvalidOperation, m.local, m.count)
	}
	return m.early, nil
}

// First returns the earlier candidate. It fails when Count is 0.
func (m Mapping) First() (*ZoneInterval, error) {
	if err := m.checkCount(); err != nil {
		return nil, err
	}
	if m.count == 0 {
		return nil, fmt.Errorf("%w: First requires at least one interval for %s, found 0", ErrInvalidOperation, m.local)
	}
	return m.early, nil
}

// Last returns the later candidate, or the only one when Count is 1. It fails
// when Count is 0.
func (m Mapping) Last() (*ZoneInterval, error) {
	if err := m.checkCount(); err != nil {
		return nil, err
	}
	switch m.count {
	case 0:
		return nil, fmt.Errorf("%w: Last requires at least one interval for %s, found 0", ErrInvalidOperation, m.local)
	case 1:
		return m.early, nil
	}
	return m.late, nil
}

// checkCount rejects counts outside {0, 1, 2}; such a value can only come
// from a broken producer.
func (m Mapping) checkCount() error {
	if m.count < 0 || m.count > 2 {
		return fmt.Errorf("%w: count %d is outside 0..2", ErrInvalidMapping, m.count)
	}
	return nil
}

func (m Mapping) String() string {
	switch m.count {
	case 0:
		return fmt.Sprintf("%s: no match", m.local)
	case 1:
		return fmt.Sprintf("%s: %s", m.local, m.early.Name())
	case 2:
		return fmt.Sprintf("%s: %s or %s", m.local, m.early.Name(), m.late.Name())
	}
	return fmt.Sprintf("%s: invalid count %d", m.local, m.count)
}
