// Package cache stores raw TVmaze response bodies behind a pluggable backend.
package cache

// EvictCallback is called when an entry is evicted from the cache.
// Backends that expire entries server-side may report a nil value.
type EvictCallback func(key string, value []byte)

// Logger receives errors from backends whose operations cannot return them.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a size-bounded key-value store whose entries expire after a TTL.
type Cache interface {
	// Get returns the value for key and whether it was present and unexpired.
	Get(key string) ([]byte, bool)
	// Set stores value under key, replacing any previous value and resetting its TTL.
	Set(key string, value []byte)
	// Contains reports whether key is present without refreshing its recency.
	Contains(key string) bool
	// Len returns the number of entries currently held.
	Len() int
	// Close releases connections or file handles held by the backend.
	Close() error
}
