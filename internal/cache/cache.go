package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// Cache is a thin key-value side cache over redis. It is deliberately
// best-effort: a cache failure is logged and the caller falls through to the
// source of truth, never erroring the request. A nil client disables caching
// entirely; every read becomes a miss and writes are no-ops.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dest. Returns false on miss or
// on any cache error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache get failed")
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache entry corrupt, dropping")
		c.client.Del(ctx, key)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache set failed")
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("Cache delete failed")
	}
}

// GetOrSet reads key into dest, falling back to load and caching its result
// on a miss. The loader's error is returned untouched.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, load func() (interface{}, error)) error {
	if c.Get(ctx, key, dest) {
		return nil
	}
	value, err := load()
	if err != nil {
		return err
	}
	c.Set(ctx, key, value)

	// Round-trip through JSON so dest is populated the same way a cache hit
	// would populate it.
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
