package stats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds at most one overview.
type Cache interface {
	Get(ctx context.Context) (*Overview, bool, error)
	Set(ctx context.Context, o *Overview, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

const overviewKey = "handyhub:stats:overview"

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context) (*Overview, bool, error) {
	raw, err := c.rdb.Get(ctx, overviewKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var o Overview
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, false, err
	}
	return &o, true, nil
}

func (c *RedisCache) Set(ctx context.Context, o *Overview, ttl time.Duration) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, overviewKey, raw, ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, overviewKey).Err()
}

// NopCache never holds anything; every read recomputes.
type NopCache struct{}

func (NopCache) Get(context.Context) (*Overview, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, *Overview, time.Duration) error { return nil }
func (NopCache) Invalidate(context.Context) error { return nil }
