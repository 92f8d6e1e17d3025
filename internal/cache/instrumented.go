package cache

// instrumentedCache counts hits and misses of inner under a group label.
// Evictions are counted by the OnEvict wrapper installed in New.
type instrumentedCache struct {
	inner     Cache
	group     string
	collector *entriesCollector
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	collector := registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{inner: inner, group: group, collector: collector}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *instrumentedCache) Contains(key string) bool {
	return c.inner.Contains(key)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group, c.collector)
	return c.inner.Close()
}
