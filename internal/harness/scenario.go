package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tzcore/internal/temporal"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Definitions is the path of a YAML definitions file. Relative paths
	// are resolved against the scenario file's directory.
	Definitions string `yaml:"definitions"`

	// Zone is the ID of the zone under test.
	Zone string `yaml:"zone"`

	// Uncached runs the queries against the bare zone instead of its cache.
	Uncached bool `yaml:"uncached,omitempty"`

	// Queries are executed in order; each one adds a trace event.
	Queries []Query `yaml:"queries"`

	// Assertions run after all queries.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Query is one question put to the zone.
type Query struct {
	// Type is one of the Query* constants.
	Type string `yaml:"type"`

	// At is the instant for interval and transition queries.
	At string `yaml:"at,omitempty"`

	// Local is the local date-time for map_local queries.
	Local string `yaml:"local,omitempty"`

	// Expect is a subset of the output fields. Nil means no check.
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion validates the run as a whole.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Queries are indexes into Scenario.Queries (same_interval,
	// distinct_interval).
	Queries []int `yaml:"queries,omitempty"`

	// From and To bound transition_count and replay.
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`

	// Count is the expected number of transitions (transition_count).
	Count int `yaml:"count,omitempty"`
}

// Query type constants.
const (
	QueryInterval           = "interval"
	QueryMapLocal           = "map_local"
	QueryNextTransition     = "next_transition"
	QueryPreviousTransition = "previous_transition"
)

// Assertion type constants.
const (
	AssertSameInterval     = "same_interval"
	AssertDistinctInterval = "distinct_interval"
	AssertTransitionCount  = "transition_count"
	AssertReplay           = "replay"
)

// LoadScenario reads and parses a scenario YAML file, resolving the
// definitions path against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file, resolving
// a relative definitions path against basePath.
// Unknown fields are rejected so typos surface as errors.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Definitions != "" && !filepath.IsAbs(scenario.Definitions) && basePath != "" {
		scenario.Definitions = filepath.Join(basePath, scenario.Definitions)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and well formed.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Definitions == "" {
		return fmt.Errorf("definitions is required")
	}
	if s.Zone == "" {
		return fmt.Errorf("zone is required")
	}
	if len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required and must be non-empty")
	}

	if _, err := os.Stat(s.Definitions); os.IsNotExist(err) {
		return fmt.Errorf("definitions file not found: %s", s.Definitions)
	}

	for i, q := range s.Queries {
		if err := validateQuery(i, q); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, a, len(s.Queries)); err != nil {
			return err
		}
	}
	return nil
}

func validateQuery(index int, q Query) error {
	switch q.Type {
	case QueryInterval, QueryNextTransition, QueryPreviousTransition:
		if q.At == "" {
			return fmt.Errorf("queries[%d]: at is required for %s", index, q.Type)
		}
		if _, err := temporal.ParseInstant(q.At); err != nil {
			return fmt.Errorf("queries[%d]: %w", index, err)
		}
	case QueryMapLocal:
		if q.Local == "" {
			return fmt.Errorf("queries[%d]: local is required for %s", index, q.Type)
		}
		if _, err := temporal.ParseLocalDateTime(q.Local); err != nil {
			return fmt.Errorf("queries[%d]: %w", index, err)
		}
	case "":
		return fmt.Errorf("queries[%d]: type is required", index)
	default:
		return fmt.Errorf("queries[%d]: unknown query type %q", index, q.Type)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion, queries int) error {
	switch a.Type {
	case AssertSameInterval, AssertDistinctInterval:
		if len(a.Queries) < 2 {
			return fmt.Errorf("assertions[%d]: at least two queries are required for %s", index, a.Type)
		}
		for _, q := range a.Queries {
			if q < 0 || q >= queries {
				return fmt.Errorf("assertions[%d]: query index %d out of range", index, q)
			}
		}
	case AssertTransitionCount, AssertReplay:
		if a.From == "" || a.To == "" {
			return fmt.Errorf("assertions[%d]: from and to are required for %s", index, a.Type)
		}
		for _, s := range []string{a.From, a.To} {
			if _, err := temporal.ParseInstant(s); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
