package ratelimit

import (
	"context"
	"time"
)

// fixedWindowEngine implements the fixed-window decision using the
// primitive INCR/EXPIRE/TTL commands. Admission is atomic via INCR alone;
// EXPIRE is best-effort and never gates the decision.
type fixedWindowEngine struct {
	store  Store
	config Config
	now    TimeFunc
}

func (e *fixedWindowEngine) limit(ctx context.Context, identifier string) (Response, error) {
	now := e.now()
	nowMs := now.UnixMilli()
	windowMs := e.config.window.Milliseconds()
	index := windowIndex(nowMs, windowMs)
	windowEnd := time.UnixMilli((index + 1) * windowMs)

	key := buildKey(e.config.prefix, identifier, index)

	count, err := e.store.Incr(ctx, key)
	if err != nil {
		return Response{}, err
	}

	if count == 1 {
		// First request in this window. A dropped EXPIRE here (process
		// crash between INCR and EXPIRE) leaves the key without a TTL, so
		// it stays in the store indefinitely; accepted narrow race rather than
		// folding this into a script (see sliding engine for the
		// alternative when that tradeoff isn't acceptable).
		_ = e.store.Expire(ctx, key, int64(e.config.window/time.Second))
	}

	if count > int64(e.config.limit) {
		ttl, err := e.store.TTL(ctx, key)
		if err != nil {
			return Response{}, err
		}
		retryAfter := ttl
		if retryAfter < 0 {
			retryAfter = 0
		}
		return Response{
			Success:    false,
			Limit:      e.config.limit,
			Remaining:  0,
			RetryAfter: retryAfter,
			Reset:      windowEnd,
		}, nil
	}

	return Response{
		Success:    true,
		Limit:      e.config.limit,
		Remaining:  e.config.limit - int(count),
		RetryAfter: 0,
		Reset:      windowEnd,
	}, nil
}
