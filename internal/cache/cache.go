// Package cache provides an identity-preserving cache in front of any
// zone.Map.
//
// The instant axis is cut into buckets of 2^45 ticks (about 40.7 days). Each
// slot of a fixed table holds at most one bucket's entry: the chain of
// intervals overlapping that bucket, computed once and never mutated. A hit
// returns a pointer out of the chain, so repeated queries answered by the
// same entry observe the same *zone.ZoneInterval.
package cache

import (
	"math/bits"
	"sync/atomic"

	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/zone"
)

const (
	bucketShift = 45
	bucketMask  = 1<<bucketShift - 1

	// DefaultSlots is the table size used unless WithSlots overrides it.
	DefaultSlots = 512
)

// Option configures a Map.
type Option func(*options)

type options struct {
	slots int
}

// WithSlots sets the number of table slots, rounded up to a power of two.
func WithSlots(n int) Option {
	return func(o *options) {
		o.slots = n
	}
}

// entry is the immutable content of one slot.
type entry struct {
	bucket    int64
	intervals []*zone.ZoneInterval
}

// Map is a caching zone.Map. It is safe for concurrent use.
type Map struct {
	inner zone.Map
	mask  int64
	slots []atomic.Pointer[entry]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

var (
	_ zone.Map              = (*Map)(nil)
	_ zone.LocalMapper      = (*Map)(nil)
	_ zone.TransitionSource = (*Map)(nil)
)

// New wraps inner unconditionally. Most callers want ForZone.
func New(inner zone.Map, opts ...Option) *Map {
	o := options{slots: DefaultSlots}
	for _, opt := range opts {
		opt(&o)
	}
	n := 1
	if o.slots > 1 {
		n = 1 << bits.Len(uint(o.slots-1))
	}
	return &Map{
		inner: inner,
		mask:  int64(n - 1),
		slots: make([]atomic.Pointer[entry], n),
	}
}

// ForZone returns z behind a cache. A *Map or a fixed zone is returned
// unchanged.
func ForZone(z zone.Map, opts ...Option) zone.Map {
	if _, ok := z.(*Map); ok || z.IsFixed() {
		return z
	}
	return New(z, opts...)
}

// Uncached unwraps a cached map; any other map is returned as is.
func Uncached(z zone.Map) zone.Map {
	if c, ok := z.(*Map); ok {
		return c.inner
	}
	return z
}

// Uncached returns the wrapped map.
func (c *Map) Uncached() zone.Map { return c.inner }

// MinOffset returns the wrapped map's smallest offset.
func (c *Map) MinOffset() temporal.Offset { return c.inner.MinOffset() }

// MaxOffset returns the wrapped map's largest offset.
func (c *Map) MaxOffset() temporal.Offset { return c.inner.MaxOffset() }

// IsFixed reports whether the wrapped map has a single offset.
func (c *Map) IsFixed() bool { return c.inner.IsFixed() }

// ZoneInterval returns the cached interval containing at, computing and
// publishing the bucket's chain on a miss.
func (c *Map) ZoneInterval(at temporal.Instant) *zone.ZoneInterval {
	bucket := at.UnixTicks() >> bucketShift
	slot := &c.slots[bucket&c.mask]

	if e := slot.Load(); e != nil && e.bucket == bucket {
		if iv := e.find(at); iv != nil {
			c.hits.Add(1)
			return iv
		}
	}

	c.misses.Add(1)
	e := c.compute(bucket)
	for {
		old := slot.Load()
		// A concurrent miss may have published this bucket first; keep its
		// intervals so every caller sees the same pointers.
		if old != nil && old.bucket == bucket {
			return old.find(at)
		}
		if slot.CompareAndSwap(old, e) {
			if old != nil {
				c.evictions.Add(1)
			}
			return e.find(at)
		}
	}
}

// compute builds the chain for bucket. The first interval is borrowed from
// the previous bucket's entry when it is still cached and reaches into this
// bucket, so an interval spanning buckets keeps one identity.
func (c *Map) compute(bucket int64) *entry {
	first := bucket << bucketShift
	last := first | bucketMask
	start := temporal.FromUnixTicks(first)

	var iv *zone.ZoneInterval
	if prev := c.slots[(bucket-1)&c.mask].Load(); prev != nil && prev.bucket == bucket-1 {
		if tail := prev.intervals[len(prev.intervals)-1]; tail.Contains(start) {
			iv = tail
		}
	}
	if iv == nil {
		iv = c.inner.ZoneInterval(start)
	}

	chain := []*zone.ZoneInterval{iv}
	for iv.HasEnd() && iv.End().UnixTicks() <= last {
		iv = c.inner.ZoneInterval(iv.End())
		chain = append(chain, iv)
	}
	return &entry{bucket: bucket, intervals: chain}
}

func (e *entry) find(at temporal.Instant) *zone.ZoneInterval {
	for _, iv := range e.intervals {
		if iv.Contains(at) {
			return iv
		}
	}
	return nil
}

// MapLocal is answered by the wrapped map and not cached.
func (c *Map) MapLocal(local temporal.LocalDateTime) zone.Mapping {
	return zone.MapLocal(c.inner, local)
}

func (c *Map) NextTransition(at temporal.Instant) (zone.Transition, bool) {
	return zone.NextTransition(c.inner, at)
}

func (c *Map) PreviousTransition(at temporal.Instant) (zone.Transition, bool) {
	return zone.PreviousTransition(c.inner, at)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Slots     int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns the current counters. Each field is read atomically on its
// own, so a snapshot taken under load may be slightly inconsistent.
func (c *Map) Stats() Stats {
	return Stats{
		Slots:     len(c.slots),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
