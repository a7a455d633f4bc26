package cache

import (
	"maps"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	hitsDesc      = prometheus.NewDesc("tzcore_cache_hits_total", "Interval lookups answered from the cache.", []string{"cache"}, nil)
	missesDesc    = prometheus.NewDesc("tzcore_cache_misses_total", "Interval lookups that computed a bucket.", []string{"cache"}, nil)
	evictionsDesc = prometheus.NewDesc("tzcore_cache_evictions_total", "Slot entries replaced by another bucket.", []string{"cache"}, nil)
	slotsDesc     = prometheus.NewDesc("tzcore_cache_slots", "Number of slots in the cache table.", []string{"cache"}, nil)
)

// Collector exports the counters of registered caches, labelled by the id
// each cache was added under.
type Collector struct {
	mu     sync.RWMutex
	caches map[string]*Map
}

var _ prometheus.Collector = new(Collector)

// NewCollector returns a collector with no caches registered.
func NewCollector() *Collector {
	return &Collector{caches: make(map[string]*Map)}
}

// Add registers m under id, replacing any cache already registered there.
func (c *Collector) Add(id string, m *Map) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caches[id] = m
}

// Remove unregisters the cache added under id.
func (c *Collector) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.caches, id)
}

// Describe implements prometheus.Collector.
func (*Collector) Describe(descCh chan<- *prometheus.Desc) {
	descCh <- hitsDesc
	descCh <- missesDesc
	descCh <- evictionsDesc
	descCh <- slotsDesc
}

// Collect implements prometheus.Collector. Caches are reported in id order.
func (c *Collector) Collect(metricsCh chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range slices.Sorted(maps.Keys(c.caches)) {
		s := c.caches[id].Stats()
		metricsCh <- prometheus.MustNewConstMetric(hitsDesc, prometheus.CounterValue, float64(s.Hits), id)
		metricsCh <- prometheus.MustNewConstMetric(missesDesc, prometheus.CounterValue, float64(s.Misses), id)
		metricsCh <- prometheus.MustNewConstMetric(evictionsDesc, prometheus.CounterValue, float64(s.Evictions), id)
		metricsCh <- prometheus.MustNewConstMetric(slotsDesc, prometheus.GaugeValue, float64(s.Slots), id)
	}
}
