package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryEntry is a cached response body with the moment it stops being served.
// A zero expiresAt never expires.
type memoryEntry struct {
	body      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// memoryCache keeps response bodies in process using an expirable LRU.
// As with the bolt provider, OnEvict only hears about entries pushed out by capacity;
// entries that outlive their TTL are dropped silently.
type memoryCache struct {
	entries *lru.LRU[string, memoryEntry]
	ttl     time.Duration
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	var onEvict lru.EvictCallback[string, memoryEntry]
	if cfg.OnEvict != nil {
		onEvict = func(key string, e memoryEntry) {
			if e.expired(time.Now()) {
				return
			}
			cfg.OnEvict(key, e.body)
		}
	}
	return &memoryCache{
		entries: lru.NewLRU[string, memoryEntry](cfg.Size, onEvict, cfg.TTL),
		ttl:     cfg.TTL,
	}, nil
}

func (m *memoryCache) Get(key string) ([]byte, bool) {
	e, ok := m.entries.Get(key)
	if !ok || e.expired(time.Now()) {
		return nil, false
	}
	return e.body, true
}

func (m *memoryCache) Set(key string, value []byte) {
	e := memoryEntry{body: value}
	if m.ttl > 0 {
		e.expiresAt = time.Now().Add(m.ttl)
	}
	m.entries.Add(key, e)
}

func (m *memoryCache) Contains(key string) bool {
	_, ok := m.entries.Peek(key)
	return ok
}

// Len counts unexpired entries; the LRU only purges expired ones on its own schedule.
func (m *memoryCache) Len() int {
	return len(m.entries.Values())
}

func (m *memoryCache) Close() error {
	return nil
}
