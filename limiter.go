// Package ratelimit implements a distributed request rate limiter backed
// by a Redis/Valkey-protocol-compatible store. Callers associate each
// inbound event with a string identifier and ask the limiter whether the
// event is admitted, against a ceiling of N events per rolling window of W
// seconds shared across every process pointed at the same store.
//
// Two algorithms are available: FixedWindowConfig partitions wall time
// into non-overlapping windows aligned to epoch; SlidingWindowConfig
// blends the current and immediately preceding window, weighted by how
// much of the current window has elapsed. Build a Config with one of
// those, then construct a Limiter over a Store (RedisStore, for a real
// Redis/Valkey server) and call Limit once per event.
package ratelimit

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Limiter is the public rate-limiting facade: it owns a store handle and a
// configuration for its lifetime and dispatches each Limit call to the
// configured algorithm's engine. A Limiter has no state machine of its
// own — every call is independent.
type Limiter struct {
	config  Config
	now     TimeFunc
	store   Store
	fixed   *fixedWindowEngine
	sliding *slidingWindowEngine
}

// Option customizes a Limiter at construction time.
type Option func(*Limiter)

// WithTimeFunc overrides the limiter's time source; the default is the
// system clock. This is a construction-time parameter, not a per-call one,
// so tests can make window-boundary behavior deterministic.
func WithTimeFunc(fn TimeFunc) Option {
	return func(l *Limiter) {
		l.now = fn
	}
}

// NewLimiter constructs a Limiter over the given store and configuration.
// It validates the configuration eagerly, returning a *ConfigError if
// limit <= 0, window <= 0, or the algorithm kind is unrecognized — in
// which case no Limiter is constructed.
func NewLimiter(store Store, config Config, opts ...Option) (*Limiter, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	l := &Limiter{config: config, now: NowFunc, store: store}
	for _, opt := range opts {
		opt(l)
	}

	switch config.kind {
	case FixedWindow:
		l.fixed = &fixedWindowEngine{store: store, config: config, now: l.now}
	case SlidingWindow:
		l.sliding = &slidingWindowEngine{store: store, config: config, now: l.now}
	}

	log.Info().
		Str("algorithm", config.kind.String()).
		Int("limit", config.limit).
		Dur("window", config.window).
		Str("prefix", config.prefix).
		Msg("ratelimit: limiter constructed")

	return l, nil
}

// Limit checks whether the event identified by identifier is admitted. It
// performs one store round trip for the sliding-window algorithm and up to
// three for the fixed-window algorithm. Any underlying store failure is
// wrapped in a *StoreError and returned; the store may have already
// observed a partial effect (e.g. a committed INCR) — this is acceptable,
// counters self-expire.
func (l *Limiter) Limit(ctx context.Context, identifier string) (Response, error) {
	return l.limit(ctx, identifier, 1)
}

// LimitN checks whether n events identified by identifier are admitted as
// a single unit. Only the sliding-window algorithm varies its decision
// with n; the fixed-window algorithm always reasons about a single
// increment of 1 per call.
func (l *Limiter) LimitN(ctx context.Context, identifier string, n int64) (Response, error) {
	return l.limit(ctx, identifier, n)
}

func (l *Limiter) limit(ctx context.Context, identifier string, n int64) (Response, error) {
	var (
		resp Response
		err  error
	)
	switch l.config.kind {
	case FixedWindow:
		resp, err = l.fixed.limit(ctx, identifier)
	case SlidingWindow:
		resp, err = l.sliding.limitN(ctx, identifier, n)
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("identifier", identifier).
			Str("algorithm", l.config.kind.String()).
			Msg("ratelimit: store operation failed")
		return Response{}, newStoreError(err)
	}
	return resp, nil
}

// Reset deletes the counters the configured algorithm consults for
// identifier at the current instant: the current window's key, and for the
// sliding-window algorithm also the previous window's key. Keys of older
// windows are left to expire through their TTL. It is an operational escape hatch:
// Limit never consults it, and no admission invariant depends on it.
func (l *Limiter) Reset(ctx context.Context, identifier string) error {
	now := l.now()
	windowMs := l.config.window.Milliseconds()
	index := windowIndex(now.UnixMilli(), windowMs)

	keys := []string{buildKey(l.config.prefix, identifier, index)}
	if l.config.kind == SlidingWindow {
		keys = append(keys, buildKey(l.config.prefix, identifier, index-1))
	}

	if err := l.store.Del(ctx, keys...); err != nil {
		return newStoreError(err)
	}
	return nil
}
