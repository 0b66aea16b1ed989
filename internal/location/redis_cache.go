package location

import (
	"context"
	"encoding/json"
	"time"

	"costasight-comparables/internal/models"
	"costasight-comparables/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

// RedisCache is a Redis-backed Cache so multiple instances share one
// precision cache. TTL expiry is delegated to Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func redisLocationKey(key string) string {
	return "location:sig:" + key
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.LocationResult, bool) {
	start := time.Now()
	data, err := c.client.Get(ctx, redisLocationKey(key)).Result()
	metrics.RedisOperationDuration.WithLabelValues("location_get").Observe(time.Since(start).Seconds())
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("location_get").Inc()
		return nil, false
	}
	var result models.LocationResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("location_unmarshal").Inc()
		return nil, false
	}
	return &result, true
}

func (c *RedisCache) Set(ctx context.Context, key string, result *models.LocationResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	start := time.Now()
	err = c.client.Set(ctx, redisLocationKey(key), data, ttl).Err()
	metrics.RedisOperationDuration.WithLabelValues("location_set").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("location_set").Inc()
		return err
	}
	return nil
}
