package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var entriesBucket = []byte("entries")

// entryHeaderSize covers the expiry and last-access timestamps stored before each value.
const entryHeaderSize = 16

func init() {
	Register("bolt", newBoltCache)
}

// boltCache persists entries in a single bbolt bucket so cached responses survive restarts.
// Each stored value is laid out as expiry (unix ns) | last access (unix ns) | payload.
type boltCache struct {
	db      *bolt.DB
	ttl     time.Duration
	maxSize int
	onEvict EvictCallback
	logger  Logger
}

func newBoltCache(cfg ProviderConfig) (Cache, error) {
	if cfg.BoltPath == "" {
		return nil, errors.New("bolt cache: path is required")
	}
	if dir := filepath.Dir(cfg.BoltPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("bolt cache: create directory: %w", err)
		}
	}

	db, err := bolt.Open(cfg.BoltPath, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt cache: open %s: %w", cfg.BoltPath, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(entriesBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bolt cache: create bucket: %w", err)
	}

	return &boltCache{
		db:      db,
		ttl:     cfg.TTL,
		maxSize: cfg.Size,
		onEvict: cfg.OnEvict,
		logger:  cfg.Logger,
	}, nil
}

func (b *boltCache) logError(msg string, err error) {
	if b.logger != nil {
		b.logger.Error(msg, err)
	}
}

func encodeEntry(expiresAt, accessedAt time.Time, value []byte) []byte {
	buf := make([]byte, entryHeaderSize+len(value))
	binary.BigEndian.PutUint64(buf[0:8], uint64(expiresAt.UnixNano()))
	binary.BigEndian.PutUint64(buf[8:16], uint64(accessedAt.UnixNano()))
	copy(buf[entryHeaderSize:], value)
	return buf
}

func decodeHeader(raw []byte) (expiresAt, accessedAt int64, ok bool) {
	if len(raw) < entryHeaderSize {
		return 0, 0, false
	}
	return int64(binary.BigEndian.Uint64(raw[0:8])), int64(binary.BigEndian.Uint64(raw[8:16])), true
}

func (b *boltCache) expiry(from time.Time) time.Time {
	if b.ttl <= 0 {
		return from.Add(100 * 365 * 24 * time.Hour)
	}
	return from.Add(b.ttl)
}

func (b *boltCache) Get(key string) ([]byte, bool) {
	var value []byte
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(entriesBucket)
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		expiresAt, _, ok := decodeHeader(raw)
		now := time.Now()
		if !ok || now.UnixNano() >= expiresAt {
			return bucket.Delete([]byte(key))
		}

		// raw points into the read-only mmap and is only valid inside the transaction.
		touched := append([]byte(nil), raw...)
		binary.BigEndian.PutUint64(touched[8:16], uint64(now.UnixNano()))
		value = touched[entryHeaderSize:]
		return bucket.Put([]byte(key), touched)
	})
	if err != nil {
		b.logError("bolt cache Get failed", err)
		return nil, false
	}
	return value, value != nil
}

func (b *boltCache) Set(key string, value []byte) {
	var evicted []string
	now := time.Now()

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(entriesBucket)
		if err := bucket.Put([]byte(key), encodeEntry(b.expiry(now), now, value)); err != nil {
			return err
		}

		// Drop expired entries first, then the least recently accessed ones.
		count := 0
		var expired [][]byte
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			expiresAt, _, ok := decodeHeader(v)
			if !ok || now.UnixNano() >= expiresAt {
				expired = append(expired, append([]byte(nil), k...))
				continue
			}
			count++
		}
		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}

		for count > b.maxSize {
			oldestKey, err := oldestEntry(bucket)
			if err != nil || oldestKey == nil {
				return err
			}
			if err := bucket.Delete(oldestKey); err != nil {
				return err
			}
			evicted = append(evicted, string(oldestKey))
			count--
		}
		return nil
	})
	if err != nil {
		b.logError("bolt cache Set failed", err)
		return
	}

	if b.onEvict == nil {
		return
	}
	for _, k := range evicted {
		b.onEvict(k, nil)
	}
}

// oldestEntry returns the key with the smallest last-access timestamp.
func oldestEntry(bucket *bolt.Bucket) ([]byte, error) {
	var (
		oldestKey []byte
		oldestAt  int64
	)
	err := bucket.ForEach(func(k, v []byte) error {
		_, accessedAt, ok := decodeHeader(v)
		if !ok {
			return nil
		}
		if oldestKey == nil || accessedAt < oldestAt {
			oldestKey = append([]byte(nil), k...)
			oldestAt = accessedAt
		}
		return nil
	})
	return oldestKey, err
}

func (b *boltCache) Contains(key string) bool {
	found := false
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(entriesBucket).Get([]byte(key))
		expiresAt, _, ok := decodeHeader(raw)
		found = ok && time.Now().UnixNano() < expiresAt
		return nil
	})
	if err != nil {
		b.logError("bolt cache Contains failed", err)
	}
	return found
}

// Len counts unexpired entries. Expired ones stay on disk until the next Set or Get purges them.
func (b *boltCache) Len() int {
	n := 0
	now := time.Now().UnixNano()
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(entriesBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if expiresAt, _, ok := decodeHeader(v); ok && now < expiresAt {
				n++
			}
		}
		return nil
	})
	if err != nil {
		b.logError("bolt cache Len failed", err)
		return 0
	}
	return n
}

func (b *boltCache) Close() error {
	return b.db.Close()
}
