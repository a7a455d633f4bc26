package harness

import "github.com/roach88/tzcore/internal/zone"

// TraceEvent records one query and the zone's answer.
type TraceEvent struct {
	Seq    int64          `json:"seq"`
	Query  string         `json:"query"`
	Input  string         `json:"input"`
	Output map[string]any `json:"output"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace holds one event per query, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`

	// intervals[i] is the interval query i returned, or nil.
	intervals []*zone.ZoneInterval
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a query event to the trace.
func (r *Result) AddTrace(query, input string, output map[string]any, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:    seq,
		Query:  query,
		Input:  input,
		Output: output,
	})
}
