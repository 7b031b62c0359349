package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// slidingScript wraps SlidingWindowScript as a cached, hash-addressable
// Redis script. go-redis's Script.Run tries EVALSHA first and transparently
// falls back to EVAL (which also seeds the script cache) on a NOSCRIPT
// response, so RedisStore never needs to manage the SHA itself — this is
// the "load lazily, cache the handle, fall back on unknown-script" behavior
// the core requires.
var slidingScript = redis.NewScript(SlidingWindowScript)

// RedisStore adapts a *redis.Client to the Store interface: the concrete
// binding the fixed- and sliding-window engines use against a real
// Redis/Valkey server.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing go-redis client. The caller owns the
// client's lifecycle, including Close.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

func (s *RedisStore) Expire(ctx context.Context, key string, seconds int64) error {
	return s.client.Expire(ctx, key, time.Duration(seconds)*time.Second).Err()
}

func (s *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.client.TTL(ctx, key).Result()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) EvalSliding(ctx context.Context, currentKey, previousKey string, limit, nowMs, windowMs, increment int64) (int64, int64, error) {
	raw, err := slidingScript.Run(ctx, s.client, []string{currentKey, previousKey}, limit, nowMs, windowMs, increment).Result()
	if err != nil {
		return 0, 0, err
	}

	res, ok := raw.([]interface{})
	if !ok || len(res) != 2 {
		return 0, 0, fmt.Errorf("ratelimit: unexpected sliding script result %T", raw)
	}

	remaining, err := scriptInt64(res[0])
	if err != nil {
		return 0, 0, err
	}
	retryAfter, err := scriptInt64(res[1])
	if err != nil {
		return 0, 0, err
	}
	return remaining, retryAfter, nil
}

func scriptInt64(v interface{}) (int64, error) {
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("ratelimit: unexpected script value type %T", v)
	}
	return n, nil
}
