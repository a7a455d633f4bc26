package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/tzcore/internal/cache"
	"github.com/roach88/tzcore/internal/definition"
	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/testutil"
	"github.com/roach88/tzcore/internal/zone"
)

// Harness executes one scenario against one zone.
type Harness struct {
	def    definition.Zone
	zone   zone.Map
	seq    *testutil.Sequence
	logger *slog.Logger
}

// Run executes a scenario with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, discardLogger())
}

// RunWithLogger executes a scenario and returns the result.
//
// An error is returned when the scenario cannot be run at all: the
// definitions fail to load, the zone is missing or a query is malformed.
// Failed expectations and assertions are reported in the Result.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	return RunWithCollector(scenario, logger, nil)
}

// RunWithCollector is RunWithLogger that also registers the scenario's
// cache with collector under the scenario name. Uncached scenarios
// register nothing. A nil collector is ignored.
func RunWithCollector(scenario *Scenario, logger *slog.Logger, collector *cache.Collector) (*Result, error) {
	set, err := definition.LoadYAML(scenario.Definitions)
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions: %w", err)
	}
	def, ok := set.Lookup(scenario.Zone)
	if !ok {
		return nil, fmt.Errorf("zone %q not found in %s", scenario.Zone, scenario.Definitions)
	}

	var m zone.Map
	if scenario.Uncached {
		m, err = definition.BuildUncached(def)
	} else {
		m, err = definition.Build(def)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build zone %q: %w", scenario.Zone, err)
	}
	if c, ok := m.(*cache.Map); ok && collector != nil {
		collector.Add(scenario.Name, c)
	}

	h := &Harness{
		def:    def,
		zone:   m,
		seq:    testutil.NewSequence(),
		logger: logger.With("scenario", scenario.Name, "zone", scenario.Zone),
	}

	result := NewResult()
	if err := h.executeQueries(scenario.Queries, result); err != nil {
		return nil, fmt.Errorf("failed to execute queries: %w", err)
	}

	actx := &AssertionContext{Zone: h.zone, Definition: h.def, Ctx: context.Background()}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished", "queries", len(result.Trace), "pass", result.Pass)
	return result, nil
}

// executeQueries runs every query, appends its trace event and checks its
// expectation.
func (h *Harness) executeQueries(queries []Query, result *Result) error {
	for i, q := range queries {
		input, output, interval, err := h.execute(q)
		if err != nil {
			return fmt.Errorf("query %d: %w", i, err)
		}
		result.AddTrace(q.Type, input, output, h.seq.Next())
		result.intervals = append(result.intervals, interval)

		if q.Expect != nil {
			for _, msg := range matchOutput(output, q.Expect) {
				result.AddError(fmt.Sprintf("queries[%d] %s %s: %s", i, q.Type, input, msg))
			}
		}

		h.logger.Debug("query executed", "index", i, "type", q.Type, "input", input, "output", output)
	}
	return nil
}

// execute answers one query. The returned interval is set for interval
// queries only.
func (h *Harness) execute(q Query) (string, map[string]any, *zone.ZoneInterval, error) {
	switch q.Type {
	case QueryInterval:
		at, err := temporal.ParseInstant(q.At)
		if err != nil {
			return "", nil, nil, err
		}
		iv := h.zone.ZoneInterval(at)
		return at.String(), intervalOutput(iv), iv, nil

	case QueryMapLocal:
		local, err := temporal.ParseLocalDateTime(q.Local)
		if err != nil {
			return "", nil, nil, err
		}
		return local.String(), mappingOutput(zone.MapLocal(h.zone, local)), nil, nil

	case QueryNextTransition, QueryPreviousTransition:
		at, err := temporal.ParseInstant(q.At)
		if err != nil {
			return "", nil, nil, err
		}
		var t zone.Transition
		var ok bool
		if q.Type == QueryNextTransition {
			t, ok = zone.NextTransition(h.zone, at)
		} else {
			t, ok = zone.PreviousTransition(h.zone, at)
		}
		if !ok {
			return at.String(), map[string]any{"none": true}, nil, nil
		}
		return at.String(), transitionOutput(t), nil, nil

	default:
		return "", nil, nil, fmt.Errorf("unknown query type %q", q.Type)
	}
}

func intervalOutput(iv *zone.ZoneInterval) map[string]any {
	return map[string]any{
		"name":    iv.Name(),
		"start":   iv.Start().String(),
		"end":     iv.End().String(),
		"offset":  iv.WallOffset().String(),
		"savings": iv.Savings().String(),
	}
}

func mappingOutput(m zone.Mapping) map[string]any {
	out := map[string]any{"count": m.Count()}
	switch m.Count() {
	case 1:
		out["interval"] = m.EarlyInterval().Name()
	case 2:
		out["early"] = m.EarlyInterval().Name()
		out["late"] = m.LateInterval().Name()
	}
	return out
}

func transitionOutput(t zone.Transition) map[string]any {
	return map[string]any{
		"instant":       t.Instant.String(),
		"offset_before": t.OffsetBefore.String(),
		"offset_after":  t.OffsetAfter.String(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
