package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/tzcore/internal/definition"
	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/zone"
)

// WriteDefinition stores a zone definition and returns its content ID.
// Uses ON CONFLICT DO NOTHING: writing the same definition twice is a no-op.
func (s *Store) WriteDefinition(ctx context.Context, z definition.Zone) (string, error) {
	data, contentID, err := marshalDefinition(z)
	if err != nil {
		return "", fmt.Errorf("write definition: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO zone_definitions (content_id, zone_id, definition)
		VALUES (?, ?, ?)
		ON CONFLICT(content_id) DO NOTHING
	`, contentID, z.ID, data)
	if err != nil {
		return "", fmt.Errorf("write definition: %w", err)
	}
	return contentID, nil
}

// Record builds z, enumerates its transitions in [start, end) and stores
// the definition, a new recording and the transitions in one transaction.
func (s *Store) Record(ctx context.Context, z definition.Zone, start, end temporal.Instant) (Recording, error) {
	if !start.Before(end) {
		return Recording{}, fmt.Errorf("record %q: empty range [%s, %s)", z.ID, start, end)
	}
	m, err := definition.Build(z)
	if err != nil {
		return Recording{}, fmt.Errorf("record: %w", err)
	}
	data, contentID, err := marshalDefinition(z)
	if err != nil {
		return Recording{}, fmt.Errorf("record: %w", err)
	}

	rec := Recording{
		ID:        uuid.Must(uuid.NewV7()).String(),
		ContentID: contentID,
		ZoneID:    z.ID,
		Start:     start,
		End:       end,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Recording{}, fmt.Errorf("record: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO zone_definitions (content_id, zone_id, definition)
		VALUES (?, ?, ?)
		ON CONFLICT(content_id) DO NOTHING
	`, contentID, z.ID, data); err != nil {
		return Recording{}, fmt.Errorf("record: write definition: %w", err)
	}

	var transitions []zone.Transition
	for t := range zone.Transitions(m, start, end) {
		transitions = append(transitions, t)
	}
	rec.Transitions = len(transitions)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO recordings (id, content_id, start_ticks, end_ticks, transitions)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.ContentID, start.UnixTicks(), end.UnixTicks(), rec.Transitions); err != nil {
		return Recording{}, fmt.Errorf("record: write recording: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transitions (recording_id, seq, instant_ticks, offset_before, offset_after)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Recording{}, fmt.Errorf("record: prepare: %w", err)
	}
	defer stmt.Close()

	for i, t := range transitions {
		if _, err := stmt.ExecContext(ctx, rec.ID, i, t.Instant.UnixTicks(), t.OffsetBefore.Seconds(), t.OffsetAfter.Seconds()); err != nil {
			return Recording{}, fmt.Errorf("record: write transition %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Recording{}, fmt.Errorf("record: commit: %w", err)
	}
	return rec, nil
}
