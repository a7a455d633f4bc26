// Package harness runs conformance scenarios against zone definitions.
//
// A scenario names a YAML definitions file and one zone in it, then lists
// queries with expected answers. Every query and its answer is appended to a
// trace, which can be compared with a golden file.
//
// # Scenario Format
//
//	name: summer_gap
//	description: "Local mapping around the spring gap"
//	definitions: ../zones.yaml
//	zone: Test/Summer
//	queries:
//	  - type: interval
//	    at: "2000-06-01T00:00:00Z"
//	    expect: { name: summer, offset: "+06:00" }
//	  - type: map_local
//	    local: "2000-03-10T01:30:00"
//	    expect: { count: 0 }
//	  - type: next_transition
//	    at: "2000-06-01T00:00:00Z"
//	    expect: { instant: "2000-10-04T20:00:00Z" }
//	assertions:
//	  - type: same_interval
//	    queries: [0, 3]
//	  - type: transition_count
//	    from: "2000-01-01T00:00:00Z"
//	    to: "2001-01-01T00:00:00Z"
//	    count: 2
//
// Expectations are subset matches against the query's output fields.
//
// # Query Types
//
//   - interval: the zone interval containing an instant
//   - map_local: the intervals a local date-time maps to
//   - next_transition: the first transition strictly after an instant
//   - previous_transition: the last transition at or before an instant
//
// # Assertion Types
//
//   - same_interval: the listed interval queries returned one pointer
//   - distinct_interval: the listed interval queries returned different pointers
//   - transition_count: the number of transitions in [from, to)
//   - replay: transitions in [from, to) survive a record and verify round trip
//     through an in-memory store
//
// Scenarios run against the cached zone unless uncached is set, so
// same_interval exercises the identity guarantees of the cache.
package harness
