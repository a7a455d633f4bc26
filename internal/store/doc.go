// Package store provides SQLite-backed storage for zone definitions and the
// transitions they produce.
//
// The store is an append-only log with:
//   - Zone definitions: canonical JSON keyed by content ID
//   - Recordings: one run of the transition enumerator over a range
//   - Transitions: the ordered output of a recording
//
// Verify replays a recording against its stored definition and reports any
// drift, which catches behavioural changes in the resolution engine.
//
// # Deterministic ordering
//
// All list queries order by a logical key (seq, zone ID, content ID) and
// never by wall-clock time. Recording IDs are UUIDv7 and therefore sort by
// creation order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
