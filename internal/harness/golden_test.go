package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Summer(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/summer.yaml")
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, s))
}

func TestMarshalSnapshot_Canonical(t *testing.T) {
	data, err := MarshalSnapshot(TraceSnapshot{
		ScenarioName: "tiny",
		Trace: []TraceEvent{
			{Seq: 1, Query: QueryMapLocal, Input: "2000-03-10T01:30:00", Output: map[string]any{"count": 0}},
			{Seq: 2, Query: QueryNextTransition, Input: "2001-01-01T00:00:00Z", Output: map[string]any{"none": true}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"scenario_name":"tiny","trace":[`+
		`{"input":"2000-03-10T01:30:00","output":{"count":0},"query":"map_local","seq":1},`+
		`{"input":"2001-01-01T00:00:00Z","output":{"none":true},"query":"next_transition","seq":2}]}`, string(data))
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/abolished.yaml")
	require.NoError(t, err)

	var first []byte
	for i := range 3 {
		result, err := Run(s)
		require.NoError(t, err)
		data, err := MarshalSnapshot(TraceSnapshot{ScenarioName: s.Name, Trace: result.Trace})
		require.NoError(t, err)
		if i == 0 {
			first = data
			continue
		}
		assert.Equal(t, string(first), string(data))
	}
}

func TestMarshalSnapshot_EmptyTrace(t *testing.T) {
	data, err := MarshalSnapshot(TraceSnapshot{ScenarioName: "empty", Zone: "Test/Fixed"})
	require.NoError(t, err)
	assert.Equal(t, `{"scenario_name":"empty","trace":[],"zone":"Test/Fixed"}`, string(data))
}
