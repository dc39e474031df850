package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps discovered keywords per country between runs.
type Cache interface {
	Get(ctx context.Context, country string) ([]string, bool, error)
	Set(ctx context.Context, country string, keywords []string, ttl time.Duration) error
}

// RedisCache stores keyword lists as JSON under prefix+country.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects using a redis:// URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCacheFromClient(redis.NewClient(opts)), nil
}

func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "trendscout:discover:"}
}

func (c *RedisCache) key(country string) string { return c.prefix + country }

func (c *RedisCache) Get(ctx context.Context, country string) ([]string, bool, error) {
	data, err := c.client.Get(ctx, c.key(country)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read keywords from redis: %w", err)
	}
	var kws []string
	if err := json.Unmarshal(data, &kws); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached keywords: %w", err)
	}
	return kws, true, nil
}

func (c *RedisCache) Set(ctx context.Context, country string, keywords []string, ttl time.Duration) error {
	data, err := json.Marshal(keywords)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(country), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save keywords to redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }
