package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key this cache writes.
const keyPrefix = "showbrowser:cache:"

const redisOpTimeout = 2 * time.Second

func init() {
	Register("redis", newRedisCache)
}

// redisCache stores each entry as its own string key with a native PX expiry and
// tracks recency in one sorted set ({prefix}lru, score = last access in µs).
// Members of the sorted set whose key already expired are removed lazily on
// the next Get miss or when they reach the head of the eviction queue.
type redisCache struct {
	client  *redis.Client
	ttl     time.Duration
	maxSize int
	onEvict EvictCallback
	logger  Logger
	lruKey  string
}

// touchGet returns the entry and refreshes its recency, or drops the stale
// recency record when the entry has expired.
//
// KEYS[1] = entry key, KEYS[2] = LRU sorted set
// ARGV[1] = member, ARGV[2] = current µs timestamp
var touchGet = redis.NewScript(`
local val = redis.call('GET', KEYS[1])
if val then
    redis.call('ZADD', KEYS[2], ARGV[2], ARGV[1])
else
    redis.call('ZREM', KEYS[2], ARGV[1])
end
return val
`)

// storeAndTrim writes the entry with its TTL, records it as most recent and
// pops the oldest members until the set fits maxSize.
//
// KEYS[1] = entry key, KEYS[2] = LRU sorted set
// ARGV[1] = value, ARGV[2] = TTL ms, ARGV[3] = member, ARGV[4] = current µs timestamp,
// ARGV[5] = maxSize, ARGV[6] = entry key prefix
var storeAndTrim = redis.NewScript(`
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[4], ARGV[3])

local maxSize = tonumber(ARGV[5])
local evicted = {}
while redis.call('ZCARD', KEYS[2]) > maxSize do
    local oldest = redis.call('ZPOPMIN', KEYS[2], 1)
    if #oldest == 0 then break end
    if redis.call('DEL', ARGV[6] .. oldest[1]) == 1 then
        table.insert(evicted, oldest[1])
    end
end
return evicted
`)

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{
		client:  client,
		ttl:     cfg.TTL,
		maxSize: cfg.Size,
		onEvict: cfg.OnEvict,
		logger:  cfg.Logger,
		lruKey:  keyPrefix + "lru",
	}, nil
}

func (r *redisCache) entryKey(key string) string {
	return keyPrefix + "entry:" + key
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func now() string {
	return strconv.FormatInt(time.Now().UnixMicro(), 10)
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	val, err := touchGet.Run(ctx, r.client, []string{r.entryKey(key), r.lruKey}, key, now()).Text()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	return []byte(val), true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	ttl := r.ttl
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	evicted, err := storeAndTrim.Run(ctx, r.client, []string{r.entryKey(key), r.lruKey},
		value, strconv.FormatInt(ttl.Milliseconds(), 10), key, now(), strconv.Itoa(r.maxSize), keyPrefix+"entry:",
	).StringSlice()
	if err != nil {
		r.logError("redis cache Set failed", err)
		return
	}

	if r.onEvict == nil {
		return
	}
	for _, k := range evicted {
		r.onEvict(k, nil)
	}
}

func (r *redisCache) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := r.client.Exists(ctx, r.entryKey(key)).Result()
	if err != nil {
		r.logError("redis cache Contains failed", err)
		return false
	}
	return n == 1
}

// Len counts tracked members, which may include entries that expired since their last access.
func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := r.client.ZCard(ctx, r.lruKey).Result()
	if err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
