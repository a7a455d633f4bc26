package recurrence

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/tzcore/internal/temporal"
)

// Year window sentinels.
const (
	BeginningOfTime = math.MinInt32
	EndOfTime       = math.MaxInt32
)

// ErrInvalidWindow reports a recurrence whose first year follows its last.
var ErrInvalidWindow = errors.New("invalid recurrence window")

// Recurrence is a named yearly transition rule. It is immutable.
type Recurrence struct {
	name       string
	savings    temporal.Offset
	yearOffset YearOffset
	fromYear   int
	toYear     int
}

// NewRecurrence creates a rule that fires once a year in [fromYear, toYear].
// Pass BeginningOfTime or EndOfTime for an open window.
func NewRecurrence(name string, savings temporal.Offset, yearOffset YearOffset, fromYear, toYear int) (*Recurrence, error) {
	if err := yearOffset.Validate(); err != nil {
		return nil, fmt.Errorf("recurrence %q: %w", name, err)
	}
	if fromYear > toYear {
		return nil, fmt.Errorf("%w: %q from %d to %d", ErrInvalidWindow, name, fromYear, toYear)
	}
	return &Recurrence{
		name:       name,
		savings:    savings,
		yearOffset: yearOffset,
		fromYear:   fromYear,
		toYear:     toYear,
	}, nil
}

// MustRecurrence is like NewRecurrence but panics on error.
func MustRecurrence(name string, savings temporal.Offset, yearOffset YearOffset, fromYear, toYear int) *Recurrence {
	r, err := NewRecurrence(name, savings, yearOffset, fromYear, toYear)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Recurrence) Name() string             { return r.name }
func (r *Recurrence) Savings() temporal.Offset { return r.savings }
func (r *Recurrence) YearOffset() YearOffset   { return r.yearOffset }
func (r *Recurrence) FromYear() int            { return r.fromYear }
func (r *Recurrence) ToYear() int              { return r.toYear }
func (r *Recurrence) IsInfinite() bool         { return r.toYear == EndOfTime }

// years clamps the window to the supported calendar. An empty result
// (hi < lo) means the rule never fires.
func (r *Recurrence) years() (lo, hi int) {
	return max(r.fromYear, temporal.MinYear), min(r.toYear, temporal.MaxYear)
}

func (r *Recurrence) occurrence(year int, ruleOffset temporal.Offset) temporal.Instant {
	return r.yearOffset.OccurrenceForYear(year).MinusOffset(ruleOffset)
}

// InstantForYear returns the transition in year, or false when year lies
// outside the window. previousSavings is the savings in force just before
// the transition and matters only for wall-clock rules.
func (r *Recurrence) InstantForYear(year int, standard, previousSavings temporal.Offset) (temporal.Instant, bool) {
	lo, hi := r.years()
	if year < lo || year > hi {
		return temporal.Instant{}, false
	}
	return r.occurrence(year, r.yearOffset.ruleOffset(standard, previousSavings)), true
}

// Next returns the first transition strictly after at.
func (r *Recurrence) Next(at temporal.Instant, standard, previousSavings temporal.Offset) (temporal.Instant, bool) {
	if at == temporal.AfterMaxValue {
		return temporal.Instant{}, false
	}
	ruleOffset := r.yearOffset.ruleOffset(standard, previousSavings)
	year, hi := r.years()
	if at != temporal.BeforeMinValue {
		// Time of day can push an occurrence into the following year.
		year = max(year, at.PlusOffset(ruleOffset).Year()-1)
	}
	for ; year <= hi; year++ {
		if t := r.occurrence(year, ruleOffset); t.After(at) {
			return t, true
		}
	}
	return temporal.Instant{}, false
}

// PreviousOrSame returns the last transition at or before at.
func (r *Recurrence) PreviousOrSame(at temporal.Instant, standard, previousSavings temporal.Offset) (temporal.Instant, bool) {
	if at == temporal.BeforeMinValue {
		return temporal.Instant{}, false
	}
	ruleOffset := r.yearOffset.ruleOffset(standard, previousSavings)
	lo, year := r.years()
	if at != temporal.AfterMaxValue {
		year = min(year, at.PlusOffset(ruleOffset).Year()+1)
	}
	for ; year >= lo; year-- {
		if t := r.occurrence(year, ruleOffset); !t.After(at) {
			return t, true
		}
	}
	return temporal.Instant{}, false
}

func (r *Recurrence) String() string {
	to := "max"
	if !r.IsInfinite() {
		to = fmt.Sprint(r.toYear)
	}
	from := "min"
	if r.fromYear != BeginningOfTime {
		from = fmt.Sprint(r.fromYear)
	}
	return fmt.Sprintf("%s %s [%s..%s] %s", r.name, r.savings, from, to, r.yearOffset)
}
