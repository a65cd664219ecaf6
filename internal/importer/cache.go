package importer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studio-matra/portfolio-backend/internal/catalog"
	"github.com/studio-matra/portfolio-backend/internal/logging"
)

const cacheKey = "portfolio:catalog"

// Cache memoizes the imported catalog in Redis so repeated reads do not
// re-scan the media host. Cache failures are never fatal: a miss or a
// Redis error both fall through to a fresh scan.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (catalog.Catalog, bool) {
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.New(ctx).Warnf("catalog_cache", "cache read failed: %v", err)
		}
		return catalog.Catalog{}, false
	}

	var cat catalog.Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		logging.New(ctx).Warnf("catalog_cache", "malformed cache entry: %v", err)
		return catalog.Catalog{}, false
	}
	return cat, true
}

func (c *Cache) Set(ctx context.Context, cat catalog.Catalog) {
	raw, err := json.Marshal(cat)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey, raw, c.ttl).Err(); err != nil {
		logging.New(ctx).Warnf("catalog_cache", "cache write failed: %v", err)
	}
}

func (c *Cache) Bust(ctx context.Context) {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		logging.New(ctx).Warnf("catalog_cache", "cache bust failed: %v", err)
	}
}
