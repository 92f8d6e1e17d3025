package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries.
	Size int
	// TTL is the time-to-live of each entry.
	TTL time.Duration
	// OnEvict is called when an entry is evicted because the cache is full.
	OnEvict EvictCallback
	// Logger receives backend errors. Nil discards them.
	Logger Logger

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// BoltPath is the database file used by the bolt provider.
	BoltPath string

	// Group labels the Prometheus cache metrics. An empty Group disables instrumentation.
	Group string
}

// Provider builds a Cache from a ProviderConfig.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register makes a provider available under name. It panics on a nil or duplicate provider.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a cache with the named provider. A non-empty cfg.Group wraps the
// result so hits, misses, evictions and entry counts are exported per group.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("cache: size must be positive, got %d", cfg.Size)
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	onEvict := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if onEvict != nil {
			onEvict(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(inner, group), nil
}

// RegisteredProviders returns the registered provider names in sorted order.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
