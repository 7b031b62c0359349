package ratelimit

import "testing"

func TestBuildKey(t *testing.T) {
	got := buildKey("ratelimit", "user-1", 42)
	want := "ratelimit:user-1:42"
	if got != want {
		t.Fatalf("buildKey: want %q, got %q", want, got)
	}
}

func TestBuildKey_NegativeIndex(t *testing.T) {
	got := buildKey("ratelimit", "user-1", -1)
	want := "ratelimit:user-1:-1"
	if got != want {
		t.Fatalf("buildKey: want %q, got %q", want, got)
	}
}

func TestWindowIndex(t *testing.T) {
	cases := []struct {
		nowMs, windowMs, want int64
	}{
		{0, 1000, 0},
		{999, 1000, 0},
		{1000, 1000, 1},
		{1999, 1000, 1},
		{10_000, 10_000, 1},
	}
	for _, tc := range cases {
		got := windowIndex(tc.nowMs, tc.windowMs)
		if got != tc.want {
			t.Errorf("windowIndex(%d, %d): want %d, got %d", tc.nowMs, tc.windowMs, tc.want, got)
		}
	}
}
