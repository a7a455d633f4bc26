package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/roach88/tzcore/internal/cache"
	"github.com/roach88/tzcore/internal/zone"
)

// newCollector returns the collector built caches are registered with, or
// nil without --metrics.
func newCollector(opts *RootOptions) *cache.Collector {
	if !opts.Metrics {
		return nil
	}
	return cache.NewCollector()
}

// registerCache adds m to col under id when m is cached. Fixed zones are
// never wrapped and export nothing.
func registerCache(col *cache.Collector, id string, m zone.Map) {
	if col == nil {
		return
	}
	if c, ok := m.(*cache.Map); ok {
		col.Add(id, c)
	}
}

// writeMetrics gathers col through a registry and writes the text
// exposition to stderr, leaving stdout to the command's result.
func writeMetrics(formatter *OutputFormatter, col *cache.Collector) error {
	if col == nil {
		return nil
	}
	reg := prometheus.NewRegistry()
	if err := reg.Register(col); err != nil {
		return fmt.Errorf("failed to register cache collector: %w", err)
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather cache metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(formatter.GetErrWriter(), mf); err != nil {
			return fmt.Errorf("failed to write cache metrics: %w", err)
		}
	}
	return nil
}

// withMetrics writes the metrics of col after a command's result has been
// written. The result has already gone out, so a metrics failure only
// changes the exit code; the command's own error wins.
func withMetrics(formatter *OutputFormatter, col *cache.Collector, err error) error {
	if merr := writeMetrics(formatter, col); merr != nil && err == nil {
		return WrapExitError(ExitCommandError, ErrCodeGeneric, merr)
	}
	return err
}
