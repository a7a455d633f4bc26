package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tzcore/internal/definition"
	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/testutil"
	"github.com/roach88/tzcore/internal/zone"
)

// createTestStore opens a fresh database in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedZone sorts before Test/Summer.
func fixedZone() definition.Zone {
	z := testutil.FixedZone()
	z.ID = "A/Fixed"
	return z
}

func utc(year int, month time.Month, day int) temporal.Instant {
	return temporal.FromUTC(year, month, day, 0, 0, 0)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "iteration %d", i)
		require.NoError(t, s.Close())
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for _, table := range []string{"zone_definitions", "recordings", "transitions"} {
		var name string
		err := s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, table)
	}

	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_MigratesOlderLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.DB().Exec(`DROP INDEX idx_recordings_start`)
	require.NoError(t, err)
	_, err = s.DB().Exec(`PRAGMA user_version = 0`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var name string
	require.NoError(t, s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_recordings_start'").Scan(&name))

	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)
	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
}

func TestWriteDefinition_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.WriteDefinition(ctx, testutil.SummerZone())
	require.NoError(t, err)
	assert.Equal(t, definition.MustContentID(testutil.SummerZone()), id)

	again, err := s.WriteDefinition(ctx, testutil.SummerZone())
	require.NoError(t, err)
	assert.Equal(t, id, again, "idempotent")

	got, err := s.ReadDefinition(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testutil.SummerZone(), got)

	_, err = s.ReadDefinition(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDefinitions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	refs, err := s.ListDefinitions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)

	fixed := fixedZone()
	_, err = s.WriteDefinition(ctx, testutil.SummerZone())
	require.NoError(t, err)
	_, err = s.WriteDefinition(ctx, fixed)
	require.NoError(t, err)

	refs, err = s.ListDefinitions(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "A/Fixed", refs[0].ZoneID)
	assert.Equal(t, "Test/Summer", refs[1].ZoneID)
}

func TestRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	start, end := utc(2000, time.January, 1), utc(2003, time.January, 1)

	rec, err := s.Record(ctx, testutil.SummerZone(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 6, rec.Transitions)
	assert.Len(t, rec.ID, 36)

	got, err := s.ReadRecording(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	transitions, err := s.ReadTransitions(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, transitions, 6)
	assert.Equal(t, zone.Transition{
		Instant:      temporal.FromUTC(2000, time.March, 9, 20, 0, 0),
		OffsetBefore: temporal.OffsetFromHours(5),
		OffsetAfter:  temporal.OffsetFromHours(6),
	}, transitions[0])
	assert.Equal(t, temporal.FromUTC(2002, time.October, 4, 20, 0, 0), transitions[5].Instant)

	_, err = s.ReadRecording(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecord_Errors(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, testutil.SummerZone(), utc(2001, time.January, 1), utc(2000, time.January, 1))
	assert.Error(t, err)

	bad := testutil.SummerZone()
	bad.Rules = bad.Rules[:1]
	_, err = s.Record(ctx, bad, utc(2000, time.January, 1), utc(2001, time.January, 1))
	assert.Error(t, err)

	recs, err := s.ListRecordings(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, recs, "failed records leave nothing behind")
}

func TestListRecordings(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.Record(ctx, testutil.SummerZone(), utc(2000, time.January, 1), utc(2001, time.January, 1))
	require.NoError(t, err)
	second, err := s.Record(ctx, testutil.SummerZone(), utc(2001, time.January, 1), utc(2002, time.January, 1))
	require.NoError(t, err)
	_, err = s.Record(ctx, fixedZone(), utc(2000, time.January, 1), utc(2001, time.January, 1))
	require.NoError(t, err)

	recs, err := s.ListRecordings(ctx, "Test/Summer")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, first.ID, recs[0].ID)
	assert.Equal(t, second.ID, recs[1].ID)

	all, err := s.ListRecordings(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 0, all[2].Transitions)
}

func TestVerify_Clean(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec, err := s.Record(ctx, testutil.SummerZone(), utc(1990, time.January, 1), utc(2010, time.January, 1))
	require.NoError(t, err)

	result, err := s.Verify(ctx, rec.ID, discardLogger())
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, rec, result.Recording)
}

func TestVerify_DetectsDrift(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec, err := s.Record(ctx, testutil.SummerZone(), utc(2000, time.January, 1), utc(2003, time.January, 1))
	require.NoError(t, err)

	_, err = s.DB().ExecContext(ctx, `UPDATE transitions SET instant_ticks = instant_ticks + 1 WHERE recording_id = ? AND seq = 2`, rec.ID)
	require.NoError(t, err)
	_, err = s.DB().ExecContext(ctx, `DELETE FROM transitions WHERE recording_id = ? AND seq = 5`, rec.ID)
	require.NoError(t, err)

	result, err := s.Verify(ctx, rec.ID, discardLogger())
	require.NoError(t, err)
	require.Len(t, result.Drift, 2)

	assert.Equal(t, 2, result.Drift[0].Seq)
	assert.Equal(t, result.Drift[0].Computed.Instant.Plus(temporal.Tick), result.Drift[0].Recorded.Instant)

	assert.Equal(t, 5, result.Drift[1].Seq)
	assert.Nil(t, result.Drift[1].Recorded)
	assert.NotNil(t, result.Drift[1].Computed)
}

func TestVerifyAll(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, year := range []int{1990, 2000} {
		_, err := s.Record(ctx, testutil.SummerZone(), utc(year, time.January, 1), utc(year+5, time.January, 1))
		require.NoError(t, err)
	}

	results, err := s.VerifyAll(ctx, "", discardLogger())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.OK())
	}

	_, err = s.Verify(ctx, "missing", discardLogger())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiffTransitions(t *testing.T) {
	a := zone.Transition{Instant: utc(2000, time.January, 1), OffsetAfter: temporal.OffsetFromHours(1)}
	b := zone.Transition{Instant: utc(2001, time.January, 1), OffsetBefore: temporal.OffsetFromHours(1)}

	assert.Empty(t, diffTransitions([]zone.Transition{a, b}, []zone.Transition{a, b}))
	assert.Empty(t, diffTransitions(nil, nil))

	drift := diffTransitions([]zone.Transition{a}, []zone.Transition{a, b})
	require.Len(t, drift, 1)
	assert.Equal(t, Drift{Seq: 1, Computed: &b}, drift[0])
}
