package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Every cache metric carries a "cache" label holding ProviderConfig.Group.
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showbrowser_cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"cache"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showbrowser_cache_misses_total",
			Help: "Total number of cache misses.",
		},
		[]string{"cache"},
	)

	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showbrowser_cache_evictions_total",
			Help: "Total number of entries evicted from the cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(HitsTotal, MissesTotal, EvictionsTotal)
}

// entriesCollector reports a group's entry count by calling lenFunc at scrape time,
// so expiry that happens inside a backend is reflected without bookkeeping here.
type entriesCollector struct {
	desc    *prometheus.Desc
	lenFunc func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.lenFunc()))
}

var (
	entriesCollectorMu sync.Mutex
	entriesCollectors  = make(map[string]*entriesCollector)
	// entriesReg is swapped for an isolated registry in tests.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector installs the entries gauge for group, replacing any
// collector left behind by an earlier cache of the same group.
func registerEntriesCollector(group string, lenFunc func() int) *entriesCollector {
	c := &entriesCollector{
		desc: prometheus.NewDesc(
			"showbrowser_cache_entries",
			"Current number of entries in the cache.",
			nil,
			prometheus.Labels{"cache": group},
		),
		lenFunc: lenFunc,
	}

	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()
	if old, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesCollectors[group] = c
	_ = entriesReg.Register(c)
	return c
}

// unregisterEntriesCollector removes c unless a newer cache of the same group replaced it.
func unregisterEntriesCollector(group string, c *entriesCollector) {
	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()
	if current, ok := entriesCollectors[group]; ok && current == c {
		entriesReg.Unregister(c)
		delete(entriesCollectors, group)
	}
}
