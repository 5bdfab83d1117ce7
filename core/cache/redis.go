package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roundtable-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON values. A miss is reported as (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	IncrVersion(ctx context.Context, key string) (int64, error)
	GetVersion(ctx context.Context, key string) (int64, error)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type redisCache struct {
	client *redis.Client
}

func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:NewRedisClient:Ping", err, "addr", cfg.Addr)
		_ = client.Close()
		return nil, err
	}

	logger.Info("Redis connected", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}

func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Error("Cache:Get", err, "key", key)
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// stale shape; treat as a miss and let the caller overwrite it
		logger.Warn("Cache:Get:Decode", err, "key", key)
		return false, nil
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Error("Cache:Set", err, "key", key)
		return err
	}
	return nil
}

func (c *redisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Error("Cache:Del", err)
		return err
	}
	return nil
}

func (c *redisCache) IncrVersion(ctx context.Context, key string) (int64, error) {
	v, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Error("Cache:IncrVersion", err, "key", key)
		return 0, err
	}
	return v, nil
}

func (c *redisCache) GetVersion(ctx context.Context, key string) (int64, error) {
	v, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		logger.Error("Cache:GetVersion", err, "key", key)
		return 0, err
	}
	return v, nil
}

type noopCache struct{}

// NewNoopCache never hits. Used when Redis is not configured.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Del(context.Context, ...string) error { return nil }
func (noopCache) IncrVersion(context.Context, string) (int64, error) { return 0, nil }
func (noopCache) GetVersion(context.Context, string) (int64, error) { return 0, nil }
