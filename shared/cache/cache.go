// Package cache wraps Redis for read-through caching, token revocation and rate-limit
// counters. Values other than strings are stored as JSON.
package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatchSize         = 100

	// Nil is wrapped by Get on a miss.
	Nil = redis.Nil
)

type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Exists(ctx context.Context, key string) (bool, error)
	Increment(ctx context.Context, key string, windowSeconds int) (int64, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{client: client, otel: ot}
}

func (c *redisCache) open(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

func failed(op, key, action string, err error) error {
	log.Error().Err(err).Str("key", key).Str("RedisCache", op).Msgf("failed to %s", action)

	return fmt.Errorf("failed to %s: %w", action, err)
}

// Save stores value for duration seconds. Zero keeps it until deleted.
func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := c.open(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := encode(value)
	if err != nil {
		return failed("Save", key, "marshal cache value", err)
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(duration)*time.Second).Err(); err != nil {
		return failed("Save", key, "set cache value", err)
	}

	return nil
}

// Get decodes the stored value into value. A *string receives the raw payload. A miss
// returns an error wrapping Nil and is not traced as a failure.
func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.open(ctx, "Get", key)
	defer scope.End()

	payload, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, Nil) {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err != nil {
		scope.TraceError(err)

		return failed("Get", key, "get cache value", err)
	}

	if raw, ok := value.(*string); ok {
		*raw = payload

		return nil
	}

	if err = json.Unmarshal([]byte(payload), value); err != nil {
		scope.TraceError(err)

		return failed("Get", key, "unmarshal cache value", err)
	}

	return nil
}

func (c *redisCache) Exists(ctx context.Context, key string) (found bool, err error) {
	ctx, scope := c.open(ctx, "Exists", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, failed("Exists", key, "check cache key", err)
	}

	return count > 0, nil
}

// Increment bumps a counter and starts its window on the first hit.
func (c *redisCache) Increment(ctx context.Context, key string, windowSeconds int) (count int64, err error) {
	ctx, scope := c.open(ctx, "Increment", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err = c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, failed("Increment", key, "increment counter", err)
	}

	if count == 1 {
		if err = c.client.Expire(ctx, key, time.Duration(windowSeconds)*time.Second).Err(); err != nil {
			return count, failed("Increment", key, "set counter expiry", err)
		}
	}

	return count, nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.open(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = c.client.Del(ctx, key).Err(); err != nil {
		return failed("Delete", key, "delete cache value", err)
	}

	return nil
}

// Clear deletes every key matching pattern, one scan page at a time.
func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.open(ctx, "Clear", pattern)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var cursor uint64

	for {
		var keys []string

		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return failed("Clear", pattern, "scan cache keys", err)
		}

		if len(keys) > 0 {
			if err = c.client.Del(ctx, keys...).Err(); err != nil {
				return failed("Clear", pattern, "delete cache value", err)
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}

func encode(value any) ([]byte, error) {
	if raw, ok := value.(string); ok {
		return []byte(raw), nil
	}

	return json.Marshal(value) //nolint:wrapcheck
}
