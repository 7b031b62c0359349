package ratelimit

import (
	"context"
	"time"
)

// Store is the minimum command surface the core requires of an external
// Redis/Valkey-protocol-compatible key/value store. RedisStore is the
// concrete binding used in production; tests may supply any other
// implementation.
type Store interface {
	// Incr atomically increments the integer value at key (creating it at
	// 1 if absent) and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets key's time-to-live, in seconds. A missing key is not an
	// error.
	Expire(ctx context.Context, key string, seconds int64) error

	// TTL returns the remaining time-to-live of key. A non-existent or
	// TTL-less key reports a non-positive duration.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Get returns the string value at key, or "" if absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key verbatim, with no expiration.
	Set(ctx context.Context, key, value string) error

	// Del deletes the given keys; missing keys are not an error.
	Del(ctx context.Context, keys ...string) error

	// EvalSliding executes the sliding-window script (see
	// SlidingWindowScript) atomically against currentKey and previousKey.
	// limit, nowMs, windowMs and increment are the script's four
	// arguments, in order. It returns the script's two-element result:
	// remaining is -1 when the event is denied, and retryAfterMs is the
	// script's suggested wait in milliseconds (only meaningful when
	// denied). Implementations load the script lazily on first use and
	// cache the handle for subsequent calls.
	EvalSliding(ctx context.Context, currentKey, previousKey string, limit, nowMs, windowMs, increment int64) (remaining int64, retryAfterMs int64, err error)
}
