package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/synaptica-ai/heartrisk/pkg/common/logger"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
)

// ResultCache keeps classifier outputs in Redis. Alignment and inference are
// deterministic for a given artifact bundle, so entries never go stale
// within a model version; the TTL only bounds memory.
type ResultCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewResultCache(client *redis.Client, prefix string, ttl time.Duration) *ResultCache {
	if prefix == "" {
		prefix = "heartrisk:inference"
	}
	return &ResultCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *ResultCache) key(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

func (c *ResultCache) Get(ctx context.Context, key string) (models.Inference, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Inference{}, false, nil
	}
	if err != nil {
		return models.Inference{}, false, err
	}

	var inference models.Inference
	if err := json.Unmarshal(data, &inference); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("discarding corrupt cache entry")
		return models.Inference{}, false, nil
	}
	return inference, true, nil
}

func (c *ResultCache) Set(ctx context.Context, key string, inference models.Inference) error {
	data, err := json.Marshal(inference)
	if err != nil {
		return err
	}

	logger.Log.WithFields(map[string]interface{}{
		"key":  c.key(key),
		"size": len(data),
	}).Debug("Caching inference")

	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}
