package di

import (
	"github.com/redis/go-redis/v9"

	"stock_sentiment/internal/platform/ratelimit"
)

// NewPlotLimiter returns a redis-backed limiter, or nil when redis is not
// available so that the middleware lets every request through.
func NewPlotLimiter(rdb *redis.Client) ratelimit.Limiter {
	if rdb != nil {
		return ratelimit.NewRedisLimiter(rdb)
	}
	return nil
}
