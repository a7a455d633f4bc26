package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsFlag_Interval(t *testing.T) {
	out, errOut, err := executeCommand(t, "interval", zonesYAML, "Test/Summer", "2000-06-01T00:00:00Z", "--metrics")
	require.NoError(t, err)
	assert.Equal(t, "summer [2000-03-09T20:00:00Z, 2000-10-04T20:00:00Z) offset +06:00 savings +01:00\n", out)

	assert.Contains(t, errOut, "# TYPE tzcore_cache_hits_total counter")
	assert.Contains(t, errOut, `tzcore_cache_hits_total{cache="Test/Summer"} 0`)
	assert.Contains(t, errOut, `tzcore_cache_misses_total{cache="Test/Summer"} 1`)
	assert.Contains(t, errOut, `tzcore_cache_evictions_total{cache="Test/Summer"} 0`)
	assert.Contains(t, errOut, `tzcore_cache_slots{cache="Test/Summer"}`)
}

func TestMetricsFlag_JSONStdoutUntouched(t *testing.T) {
	out, errOut, err := executeCommand(t, "transitions", zonesYAML, "Test/Summer",
		"--from", "2000-01-01T00:00:00Z", "--to", "2001-01-01T00:00:00Z", "--format", "json", "--metrics")
	require.NoError(t, err)

	data := decodeData(t, out)
	assert.Len(t, data["transitions"], 2)
	assert.Contains(t, errOut, `tzcore_cache_misses_total{cache="Test/Summer"}`)
	assert.NotContains(t, out, "tzcore_cache")
}

func TestMetricsFlag_Off(t *testing.T) {
	_, errOut, err := executeCommand(t, "interval", zonesYAML, "Test/Summer", "2000-06-01T00:00:00Z")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "tzcore_cache")
}

func TestMetricsFlag_FixedZoneHasNoCache(t *testing.T) {
	_, errOut, err := executeCommand(t, "interval", zonesYAML, "Test/Fixed", "2000-06-01T00:00:00Z", "--metrics")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "tzcore_cache")
}

func TestMetricsFlag_MapFailureStillReports(t *testing.T) {
	_, errOut, err := executeCommand(t, "map", zonesYAML, "Test/Summer", "2000-03-10T01:30:00", "--resolve", "strict", "--metrics")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, errOut, `tzcore_cache_slots{cache="Test/Summer"}`)
}

func TestMetricsFlag_TestCommand(t *testing.T) {
	out, errOut, err := executeCommand(t, "test", filepath.Join("testdata", "scenarios"), "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ cli_summer")
	assert.Contains(t, errOut, `tzcore_cache_misses_total{cache="cli_summer"}`)
	assert.Contains(t, errOut, `tzcore_cache_hits_total{cache="cli_summer"}`)
}
