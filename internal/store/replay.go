package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/tzcore/internal/definition"
	"github.com/roach88/tzcore/internal/zone"
)

// Drift is one position where a replay disagrees with its recording. A nil
// side means that list ended early.
type Drift struct {
	Seq      int              `json:"seq"`
	Recorded *zone.Transition `json:"recorded,omitempty"`
	Computed *zone.Transition `json:"computed,omitempty"`
}

// VerifyResult is the outcome of replaying one recording.
type VerifyResult struct {
	Recording Recording `json:"recording"`
	Drift     []Drift   `json:"drift"`
}

// OK reports whether the replay matched exactly.
func (r VerifyResult) OK() bool { return len(r.Drift) == 0 }

// Verify rebuilds the recording's zone from its stored definition,
// re-enumerates the transitions over the same range and compares them with
// what was stored.
func (s *Store) Verify(ctx context.Context, recordingID string, logger *slog.Logger) (VerifyResult, error) {
	rec, err := s.ReadRecording(ctx, recordingID)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify: %w", err)
	}
	def, err := s.ReadDefinition(ctx, rec.ContentID)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify: %w", err)
	}
	recorded, err := s.ReadTransitions(ctx, rec.ID)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify: %w", err)
	}

	m, err := definition.Build(def)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify %s: %w", rec.ID, err)
	}
	var computed []zone.Transition
	for t := range zone.Transitions(m, rec.Start, rec.End) {
		computed = append(computed, t)
	}

	result := VerifyResult{Recording: rec, Drift: diffTransitions(recorded, computed)}
	logger.Debug("verified recording",
		"recording", rec.ID,
		"zone", rec.ZoneID,
		"transitions", len(recorded),
		"drift", len(result.Drift))
	if !result.OK() {
		logger.Warn("recording drifted", "recording", rec.ID, "zone", rec.ZoneID, "first_seq", result.Drift[0].Seq)
	}
	return result, nil
}

// VerifyAll verifies every recording of zoneID, or every recording when
// zoneID is empty, in creation order.
func (s *Store) VerifyAll(ctx context.Context, zoneID string, logger *slog.Logger) ([]VerifyResult, error) {
	recs, err := s.ListRecordings(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	results := make([]VerifyResult, 0, len(recs))
	for _, rec := range recs {
		r, err := s.Verify(ctx, rec.ID, logger)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func diffTransitions(recorded, computed []zone.Transition) []Drift {
	var drift []Drift
	for i := range max(len(recorded), len(computed)) {
		var r, c *zone.Transition
		if i < len(recorded) {
			r = &recorded[i]
		}
		if i < len(computed) {
			c = &computed[i]
		}
		if r != nil && c != nil && *r == *c {
			continue
		}
		drift = append(drift, Drift{Seq: i, Recorded: r, Computed: c})
	}
	return drift
}
