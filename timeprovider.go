package ratelimit

import "time"

// TimeFunc returns the current wall-clock instant. A Limiter reads its
// TimeFunc once per Limit call, at entry; both engines derive their reset
// field from that same instant. Use WithTimeFunc to inject a deterministic
// source in tests.
type TimeFunc func() time.Time

// NowFunc is the default TimeFunc, backed by the system clock.
func NowFunc() time.Time {
	return time.Now()
}
