package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tzcore/internal/definition"
	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/zone"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Recording describes one stored run of the transition enumerator.
type Recording struct {
	ID          string           `json:"id"`
	ContentID   string           `json:"content_id"`
	ZoneID      string           `json:"zone_id"`
	Start       temporal.Instant `json:"start"`
	End         temporal.Instant `json:"end"`
	Transitions int              `json:"transitions"`
}

// DefinitionRef identifies a stored definition.
type DefinitionRef struct {
	ContentID string `json:"content_id"`
	ZoneID    string `json:"zone_id"`
}

// ReadDefinition returns the definition stored under contentID.
func (s *Store) ReadDefinition(ctx context.Context, contentID string) (definition.Zone, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT definition FROM zone_definitions WHERE content_id = ?
	`, contentID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return definition.Zone{}, fmt.Errorf("definition %s: %w", contentID, ErrNotFound)
	}
	if err != nil {
		return definition.Zone{}, fmt.Errorf("read definition: %w", err)
	}
	return unmarshalDefinition(data)
}

// ListDefinitions returns every stored definition ordered by zone ID then
// content ID. Returns an empty slice (not nil) if none exist.
func (s *Store) ListDefinitions(ctx context.Context) ([]DefinitionRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content_id, zone_id FROM zone_definitions
		ORDER BY zone_id COLLATE BINARY ASC, content_id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query definitions: %w", err)
	}
	defer rows.Close()

	refs := []DefinitionRef{}
	for rows.Next() {
		var ref DefinitionRef
		if err := rows.Scan(&ref.ContentID, &ref.ZoneID); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate definitions: %w", err)
	}
	return refs, nil
}

const recordingColumns = `r.id, r.content_id, d.zone_id, r.start_ticks, r.end_ticks, r.transitions`

func scanRecording(row interface{ Scan(...any) error }) (Recording, error) {
	var rec Recording
	var start, end int64
	if err := row.Scan(&rec.ID, &rec.ContentID, &rec.ZoneID, &start, &end, &rec.Transitions); err != nil {
		return Recording{}, err
	}
	rec.Start = temporal.FromUnixTicks(start)
	rec.End = temporal.FromUnixTicks(end)
	return rec, nil
}

// ReadRecording returns the recording with the given ID.
func (s *Store) ReadRecording(ctx context.Context, id string) (Recording, error) {
	rec, err := scanRecording(s.db.QueryRowContext(ctx, `
		SELECT `+recordingColumns+`
		FROM recordings r
		JOIN zone_definitions d ON r.content_id = d.content_id
		WHERE r.id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Recording{}, fmt.Errorf("recording %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Recording{}, fmt.Errorf("read recording: %w", err)
	}
	return rec, nil
}

// ListRecordings returns the recordings of a zone in creation order. An
// empty zoneID lists every recording.
func (s *Store) ListRecordings(ctx context.Context, zoneID string) ([]Recording, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordingColumns+`
		FROM recordings r
		JOIN zone_definitions d ON r.content_id = d.content_id
		WHERE ? = '' OR d.zone_id = ?
		ORDER BY r.id COLLATE BINARY ASC
	`, zoneID, zoneID)
	if err != nil {
		return nil, fmt.Errorf("query recordings: %w", err)
	}
	defer rows.Close()

	recs := []Recording{}
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recordings: %w", err)
	}
	return recs, nil
}

// ReadTransitions returns a recording's transitions ordered by seq.
func (s *Store) ReadTransitions(ctx context.Context, recordingID string) ([]zone.Transition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instant_ticks, offset_before, offset_after
		FROM transitions
		WHERE recording_id = ?
		ORDER BY seq ASC
	`, recordingID)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	out := []zone.Transition{}
	for rows.Next() {
		var ticks int64
		var before, after int
		if err := rows.Scan(&ticks, &before, &after); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		t := zone.Transition{Instant: temporal.FromUnixTicks(ticks)}
		if t.OffsetBefore, err = offsetFromSeconds(before); err != nil {
			return nil, err
		}
		if t.OffsetAfter, err = offsetFromSeconds(after); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transitions: %w", err)
	}
	return out, nil
}
