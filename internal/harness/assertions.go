package harness

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/roach88/tzcore/internal/definition"
	"github.com/roach88/tzcore/internal/store"
	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/zone"
)

// AssertionError is returned when an assertion fails.
// It includes the full trace to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s %v\n", event.Seq, event.Query, event.Input, event.Output)
		}
	}
	return buf.String()
}

// AssertionContext provides what assertions need beyond the trace.
type AssertionContext struct {
	Zone       zone.Map
	Definition definition.Zone
	Ctx        context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertSameInterval:
			err = assertSameInterval(result, assertion, true)
		case AssertDistinctInterval:
			err = assertSameInterval(result, assertion, false)
		case AssertTransitionCount:
			if actx == nil || actx.Zone == nil {
				err = fmt.Errorf("assertion[%d]: transition_count requires a zone", i)
			} else {
				err = assertTransitionCount(actx.Zone, result.Trace, assertion)
			}
		case AssertReplay:
			if actx == nil || actx.Definition.ID == "" {
				err = fmt.Errorf("assertion[%d]: replay requires a definition", i)
			} else {
				err = assertReplay(actx.Ctx, actx.Definition, result.Trace, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertSameInterval checks that the listed interval queries returned the
// same pointer (same) or pairwise different pointers (!same).
func assertSameInterval(result *Result, assertion Assertion, same bool) error {
	intervals := make([]*zone.ZoneInterval, len(assertion.Queries))
	for i, q := range assertion.Queries {
		if q < 0 || q >= len(result.intervals) || result.intervals[q] == nil {
			return &AssertionError{
				Type:     assertion.Type,
				Expected: fmt.Sprintf("query %d to be an interval query", q),
				Actual:   "no interval recorded",
				Trace:    result.Trace,
			}
		}
		intervals[i] = result.intervals[q]
	}

	for i := 1; i < len(intervals); i++ {
		if same && intervals[i] != intervals[0] {
			return &AssertionError{
				Type:     assertion.Type,
				Expected: fmt.Sprintf("queries %v to return one interval", assertion.Queries),
				Actual:   fmt.Sprintf("query %d returned a different interval (%s)", assertion.Queries[i], intervals[i]),
				Trace:    result.Trace,
			}
		}
		if !same && slices.Contains(intervals[:i], intervals[i]) {
			return &AssertionError{
				Type:     assertion.Type,
				Expected: fmt.Sprintf("queries %v to return distinct intervals", assertion.Queries),
				Actual:   fmt.Sprintf("query %d repeated an earlier interval (%s)", assertion.Queries[i], intervals[i]),
				Trace:    result.Trace,
			}
		}
	}
	return nil
}

// assertTransitionCount checks the number of transitions in [from, to).
func assertTransitionCount(m zone.Map, trace []TraceEvent, assertion Assertion) error {
	from, to, err := parseRange(assertion)
	if err != nil {
		return err
	}

	count := 0
	for range zone.Transitions(m, from, to) {
		count++
	}
	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTransitionCount,
			Expected: fmt.Sprintf("%d transitions in [%s, %s)", assertion.Count, from, to),
			Actual:   fmt.Sprintf("%d transitions", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertReplay records the zone's transitions into a fresh in-memory store
// and checks that replaying the recording reproduces them.
func assertReplay(ctx context.Context, def definition.Zone, trace []TraceEvent, assertion Assertion) error {
	if ctx == nil {
		ctx = context.Background()
	}
	from, to, err := parseRange(assertion)
	if err != nil {
		return err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer st.Close()

	rec, err := st.Record(ctx, def, from, to)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	res, err := st.Verify(ctx, rec.ID, discardLogger())
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if !res.OK() {
		return &AssertionError{
			Type:     AssertReplay,
			Expected: fmt.Sprintf("%d recorded transitions to replay unchanged", rec.Transitions),
			Actual:   fmt.Sprintf("%d drifted, first at seq %d", len(res.Drift), res.Drift[0].Seq),
			Trace:    trace,
		}
	}
	return nil
}

func parseRange(assertion Assertion) (temporal.Instant, temporal.Instant, error) {
	from, err := temporal.ParseInstant(assertion.From)
	if err != nil {
		return temporal.Instant{}, temporal.Instant{}, fmt.Errorf("%s: %w", assertion.Type, err)
	}
	to, err := temporal.ParseInstant(assertion.To)
	if err != nil {
		return temporal.Instant{}, temporal.Instant{}, fmt.Errorf("%s: %w", assertion.Type, err)
	}
	return from, to, nil
}

// matchOutput checks that actual contains every expected field (subset
// match) and returns one message per mismatch, in key order.
func matchOutput(actual, expected map[string]any) []string {
	keys := make([]string, 0, len(expected))
	for k := range expected {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var msgs []string
	for _, key := range keys {
		want := expected[key]
		got, exists := actual[key]
		if !exists {
			msgs = append(msgs, fmt.Sprintf("%s missing, expected %v", key, want))
			continue
		}
		if !valuesEqual(got, want) {
			msgs = append(msgs, fmt.Sprintf("%s = %v, expected %v", key, got, want))
		}
	}
	return msgs
}

// valuesEqual compares two values, treating all integer types as int64.
func valuesEqual(actual, expected any) bool {
	return reflect.DeepEqual(normalize(actual), normalize(expected))
}

func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint64:
		return int64(n)
	}
	return v
}
