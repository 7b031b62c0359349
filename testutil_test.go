package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestStore starts an in-memory Redis server and returns a RedisStore
// wired to it, alongside the miniredis handle for TTL-level assertions.
func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

// testClock is a mutable TimeFunc source used to make window-boundary
// behavior deterministic. Advance moves the clock the engines read and,
// when a miniredis handle was given, that server's clock too, so TTL-derived fields (fixed
// window's retry_after) stay consistent with the engine's own notion of
// "now".
type testClock struct {
	mu  sync.Mutex
	now time.Time
	mr  *miniredis.Miniredis
}

func newTestClock(mr *miniredis.Miniredis, start time.Time) *testClock {
	return &testClock{now: start, mr: mr}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	if c.mr != nil {
		c.mr.FastForward(d)
	}
}
