package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// fixedWindowScript increments the counter of the current window and starts
// the window expiry on the first hit. It returns the counter value and the
// time left in the window in milliseconds.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisLimiter keeps window counters in Redis. The increment and the check
// run in one Lua script so concurrent requests sharing a key cannot both
// observe a stale count.
type RedisLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

func NewRedisLimiter(client redis.Scripter, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	const op = "ratelimit.RedisLimiter.Allow"

	vals, err := fixedWindowScript.Run(ctx, l.client, []string{redisKeyPrefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("%s: failed to run script: %w", op, err)
	}

	if len(vals) != 2 {
		return Result{}, fmt.Errorf("%s: unexpected script result: %v", op, vals)
	}

	return newResult(l.limit, vals[0], time.Duration(vals[1])*time.Millisecond), nil
}
