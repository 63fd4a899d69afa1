package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const catalogKey = "catalog:sweets"

// CatalogCache stores the serialized catalog listing in Redis so the
// list-all endpoint can skip the database on repeat reads. Every catalog
// mutation invalidates the entry. All failures are logged and swallowed:
// the cache is an optimization, never a source of truth.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
// A non-positive ttl disables expiry-based staleness protection, so callers
// should always pass one; 30s is a sensible default.
func NewCatalogCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CatalogCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached listing payload and whether it was present.
func (c *CatalogCache) Get(ctx context.Context) ([]byte, bool) {
	payload, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}
	return payload, true
}

// Set stores the listing payload with the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, payload []byte) {
	if err := c.client.Set(ctx, catalogKey, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

// Invalidate drops the cached listing after a mutation.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
