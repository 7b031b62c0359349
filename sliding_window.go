package ratelimit

import (
	"context"
	"time"
)

// SlidingWindowScript is the server-side program the sliding-window engine
// submits in a single round trip to make its read-compute-conditional-write
// decision atomic. Its arithmetic is part of the external wire contract: it
// must be preserved verbatim (including the "cumulative - limit + increment"
// formulation of needed, rather than the simpler "cumulative - limit") to
// stay compatible with existing counter keys and test expectations.
//
// KEYS[1]: current window's counter key
// KEYS[2]: previous window's counter key
// ARGV[1]: limit
// ARGV[2]: now, in milliseconds since epoch
// ARGV[3]: window size, in milliseconds
// ARGV[4]: increment (events to admit as one unit)
//
// Returns a two-element array: [remaining_or_neg_one, retry_after_ms].
const SlidingWindowScript = `
local current_key = KEYS[1]
local previous_key = KEYS[2]
local limit = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local window = tonumber(ARGV[3])
local increment = tonumber(ARGV[4])

local current_count = tonumber(redis.call("GET", current_key)) or 0
local previous_count = tonumber(redis.call("GET", previous_key)) or 0

local time_in_current = now % window
local time_remaining_previous = window - time_in_current
local weighted_previous = (previous_count * time_remaining_previous) / window
local cumulative = math.floor(weighted_previous) + current_count + increment

if cumulative > limit then
    local needed = cumulative - limit + increment
    local retry_after
    if previous_count > 0 then
        retry_after = math.ceil(needed * window / previous_count)
        if retry_after > time_remaining_previous then
            retry_after = time_remaining_previous
        end
    else
        retry_after = window - time_in_current
    end
    return {-1, retry_after}
end

redis.call("SET", current_key, current_count + increment)
redis.call("PEXPIRE", current_key, 2 * window + 1000)

return {limit - (math.floor(weighted_previous) + current_count + increment), 0}
`

// slidingWindowEngine implements the weighted two-bucket decision via
// SlidingWindowScript, executed atomically in one round trip.
type slidingWindowEngine struct {
	store  Store
	config Config
	now    TimeFunc
}

func (e *slidingWindowEngine) limitN(ctx context.Context, identifier string, n int64) (Response, error) {
	now := e.now()
	nowMs := now.UnixMilli()
	windowMs := e.config.window.Milliseconds()
	currentIndex := windowIndex(nowMs, windowMs)
	previousIndex := currentIndex - 1

	currentKey := buildKey(e.config.prefix, identifier, currentIndex)
	previousKey := buildKey(e.config.prefix, identifier, previousIndex)

	remaining, retryAfterMs, err := e.store.EvalSliding(ctx, currentKey, previousKey, int64(e.config.limit), nowMs, windowMs, n)
	if err != nil {
		return Response{}, err
	}

	reset := now.Add(2 * e.config.window)

	if remaining < 0 {
		return Response{
			Success:    false,
			Limit:      e.config.limit,
			Remaining:  0,
			RetryAfter: time.Duration(retryAfterMs) * time.Millisecond,
			Reset:      reset,
		}, nil
	}

	return Response{
		Success:    true,
		Limit:      e.config.limit,
		Remaining:  int(remaining),
		RetryAfter: 0,
		Reset:      reset,
	}, nil
}
