package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedResolver decorates a PriceResolver with a short-lived in-process
// cache. Errors are not cached, so a failed lookup is retried on the next
// refresh.
type CachedResolver struct {
	inner PriceResolver
	cache *gocache.Cache
}

func NewCachedResolver(inner PriceResolver, ttl time.Duration) *CachedResolver {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedResolver{inner: inner, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedResolver) Resolve(ctx context.Context, symbol string) (Quote, error) {
	if v, ok := c.cache.Get(symbol); ok {
		return v.(Quote), nil
	}
	q, err := c.inner.Resolve(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}
	c.cache.SetDefault(symbol, q)
	return q, nil
}
