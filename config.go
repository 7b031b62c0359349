package ratelimit

import (
	"fmt"
	"time"
)

// Algorithm identifies which rate-limiting decision algorithm a Config uses.
type Algorithm int

const (
	// FixedWindow partitions wall time into non-overlapping windows
	// aligned to epoch; each admission counts against the window
	// containing its timestamp.
	FixedWindow Algorithm = iota
	// SlidingWindow blends the current and immediately preceding fixed
	// windows, weighted by how much of the current window has elapsed.
	SlidingWindow
)

func (a Algorithm) String() string {
	switch a {
	case FixedWindow:
		return "fixed"
	case SlidingWindow:
		return "sliding"
	default:
		return "unknown"
	}
}

// defaultPrefix is used whenever a Config is built without WithPrefix, or
// with an explicitly empty prefix.
const defaultPrefix = "ratelimit"

// Config is an immutable description of a rate limit: which algorithm to
// apply, how many events it admits, over what window, and under which key
// namespace. Build one with FixedWindowConfig or SlidingWindowConfig; a
// Config is never mutated after construction.
type Config struct {
	kind   Algorithm
	limit  int
	window time.Duration
	prefix string
}

// ConfigOption customizes a Config at construction time.
type ConfigOption func(*Config)

// WithPrefix overrides the default "ratelimit" key namespace prefix. Two
// limiters with different prefixes never share counters, even over the
// same identifier.
func WithPrefix(prefix string) ConfigOption {
	return func(c *Config) {
		c.prefix = prefix
	}
}

// FixedWindowConfig builds a Config for the fixed-window algorithm: limit
// admissions per window, counted against non-overlapping intervals aligned
// to epoch.
func FixedWindowConfig(limit int, window time.Duration, opts ...ConfigOption) Config {
	return newConfig(FixedWindow, limit, window, opts)
}

// SlidingWindowConfig builds a Config for the weighted sliding-window
// algorithm: limit admissions per window, blended across the current and
// immediately preceding window.
func SlidingWindowConfig(limit int, window time.Duration, opts ...ConfigOption) Config {
	return newConfig(SlidingWindow, limit, window, opts)
}

func newConfig(kind Algorithm, limit int, window time.Duration, opts []ConfigOption) Config {
	c := Config{kind: kind, limit: limit, window: window, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(&c)
	}
	if c.prefix == "" {
		c.prefix = defaultPrefix
	}
	return c
}

// validate checks the eager construction-time invariants: limit > 0,
// window > 0, kind recognized. Called exactly once, from NewLimiter.
func (c Config) validate() error {
	switch c.kind {
	case FixedWindow, SlidingWindow:
	default:
		return &ConfigError{Message: fmt.Sprintf("ratelimit: unknown algorithm kind %d", c.kind)}
	}
	if c.limit <= 0 {
		return &ConfigError{Message: fmt.Sprintf("ratelimit: limit must be positive, got %d", c.limit)}
	}
	if c.window <= 0 {
		return &ConfigError{Message: fmt.Sprintf("ratelimit: window must be positive, got %s", c.window)}
	}
	return nil
}
