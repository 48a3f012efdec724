// Package cache is a thin key/value layer over redis used for short-lived
// read caches. A nil KV disables caching.
package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var ErrMiss = errors.New("cache miss")

type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisKV struct {
	c *redis.Client
}

func NewRedisKV(c *redis.Client) *RedisKV { return &RedisKV{c: c} }

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.c.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.c.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.c.Del(ctx, keys...).Err()
}

func (r *RedisKV) Close() error { return r.c.Close() }

// NewFromEnv connects to REDIS_URL. It returns nil when the variable is unset
// or the server does not answer a ping.
func NewFromEnv(ctx context.Context) *RedisKV {
	raw := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if raw == "" {
		return nil
	}
	opt, err := redis.ParseURL(raw)
	if err != nil {
		zap.L().Warn("invalid REDIS_URL, cache disabled", zap.Error(err))
		return nil
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		zap.L().Warn("redis unreachable, cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	zap.L().Info("redis cache enabled", zap.String("addr", opt.Addr))
	return NewRedisKV(client)
}

// GetJSON decodes a cached value into dst. It reports false on a miss, on a
// nil kv and on any decode or transport failure.
func GetJSON(ctx context.Context, kv KV, key string, dst any) bool {
	if kv == nil {
		return false
	}
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			zap.L().Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := sonic.UnmarshalString(raw, dst); err != nil {
		zap.L().Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func SetJSON(ctx context.Context, kv KV, key string, v any, ttl time.Duration) {
	if kv == nil {
		return
	}
	raw, err := sonic.MarshalString(v)
	if err != nil {
		zap.L().Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := kv.Set(ctx, key, raw, ttl); err != nil {
		zap.L().Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
