package ratelimit

import (
	"errors"
	"testing"
	"time"
)

// TestNewLimiter_ConfigValidation covers scenario S6: constructing with
// limit <= 0, window <= 0, or an unrecognized algorithm kind must raise a
// *ConfigError and never construct a Limiter.
func TestNewLimiter_ConfigValidation(t *testing.T) {
	store, _ := newTestStore(t)

	cases := []struct {
		name   string
		config Config
	}{
		{"zero limit", FixedWindowConfig(0, time.Second)},
		{"negative limit", FixedWindowConfig(-1, time.Second)},
		{"zero window", FixedWindowConfig(5, 0)},
		{"negative window", FixedWindowConfig(5, -1*time.Second)},
		{"invalid kind", Config{kind: Algorithm(99), limit: 5, window: time.Second, prefix: defaultPrefix}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := NewLimiter(store, tc.config)
			if err == nil {
				t.Fatalf("expected error, got nil (limiter=%v)", l)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T: %v", err, err)
			}
			if l != nil {
				t.Fatalf("expected no limiter on error, got %v", l)
			}
		})
	}
}

func TestConfig_DefaultPrefix(t *testing.T) {
	c := FixedWindowConfig(5, time.Second)
	if c.prefix != "ratelimit" {
		t.Fatalf("want default prefix %q, got %q", "ratelimit", c.prefix)
	}
}

func TestConfig_EmptyPrefixFallsBackToDefault(t *testing.T) {
	c := FixedWindowConfig(5, time.Second, WithPrefix(""))
	if c.prefix != "ratelimit" {
		t.Fatalf("want default prefix for empty override, got %q", c.prefix)
	}
}

func TestConfig_CustomPrefix(t *testing.T) {
	c := SlidingWindowConfig(5, time.Second, WithPrefix("myapp"))
	if c.prefix != "myapp" {
		t.Fatalf("want prefix %q, got %q", "myapp", c.prefix)
	}
	if c.kind != SlidingWindow {
		t.Fatalf("want sliding window kind, got %v", c.kind)
	}
}
