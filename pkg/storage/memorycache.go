package storage

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
)

// MemoryCache is the in-process result cache used when Redis is disabled.
type MemoryCache struct {
	cache *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	cleanup := ttl * 2
	if ttl <= 0 {
		cleanup = time.Minute
	}
	return &MemoryCache{cache: gocache.New(ttl, cleanup)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (models.Inference, bool, error) {
	val, found := c.cache.Get(key)
	if !found {
		return models.Inference{}, false, nil
	}
	inference, ok := val.(models.Inference)
	return inference, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, inference models.Inference) error {
	c.cache.Set(key, inference, gocache.DefaultExpiration)
	return nil
}

// Len reports the number of live entries.
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
