package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/pantryscan/internal/model"
)

// DefaultCacheTTL is how long a cached lookup result is kept.
const DefaultCacheTTL = 24 * time.Hour

const cacheKeyPrefix = "pantryscan:product:"

// Source is anything that can resolve a barcode to a product.
type Source interface {
	Lookup(ctx context.Context, barcode string) (*model.Product, error)
}

// RedisCache serves repeated lookups from Redis and falls through to Next
// on a miss. Redis failures are logged and never fail a lookup.
type RedisCache struct {
	next   Source
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps next with a Redis cache. A non-positive ttl uses
// DefaultCacheTTL.
func NewRedisCache(next Source, client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{next: next, client: client, ttl: ttl}
}

func cacheKey(barcode string) string {
	return cacheKeyPrefix + barcode
}

// Lookup implements Source.
func (c *RedisCache) Lookup(ctx context.Context, barcode string) (*model.Product, error) {
	key := cacheKey(barcode)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p model.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		slog.Warn("discarding corrupt cached product", "barcode", barcode)
	case !errors.Is(err, redis.Nil):
		slog.Warn("redis product cache read failed", "barcode", barcode, "error", err)
	}

	p, err := c.next.Lookup(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("redis product cache write failed", "barcode", barcode, "error", err)
		}
	}
	return p, nil
}

// Invalidate drops the cached entry for barcode.
func (c *RedisCache) Invalidate(ctx context.Context, barcode string) error {
	return c.client.Del(ctx, cacheKey(barcode)).Err()
}
