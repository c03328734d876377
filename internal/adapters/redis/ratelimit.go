package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/iconplus/catalog/internal/core/port"
)

// Returns {count, ttl_ms} for the current window.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

type RateLimiter struct {
	client *Client
}

var _ port.RateLimiterPort = (*RateLimiter)(nil)

func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (port.RateDecision, error) {
	res, err := rateLimitScript.Run(ctx, r.client.rdb, []string{r.client.Key("ratelimit", key)}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return port.RateDecision{}, err
	}
	if len(res) != 2 {
		return port.RateDecision{}, fmt.Errorf("unexpected rate limit reply %v", res)
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	decision := port.RateDecision{
		Allowed:   count <= limit,
		Remaining: max(limit-count, 0),
	}
	if !decision.Allowed {
		decision.RetryAfter = max(ttl, 0)
	}
	return decision, nil
}
