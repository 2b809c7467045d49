// Package ratelimit limits inbound requests per client using redis.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// Limiter defines the interface for rate limiting.
type Limiter interface {
	// Allow checks if the request is allowed for the given key and limit.
	Allow(ctx context.Context, key string, limit Limit) (*Result, error)
}

// Limit defines the rate limit rule.
type Limit struct {
	Rate   int
	Period time.Duration
	Burst  int
}

// PerMinute returns a limit of rate requests per minute with the given burst.
// A burst below 1 is raised to 1.
func PerMinute(rate, burst int) Limit {
	return Limit{Rate: rate, Period: time.Minute, Burst: max(burst, 1)}
}

// Result represents the result of a rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAfter time.Duration
	RetryAfter time.Duration
}

// RedisLimiter implements Limiter using the GCRA algorithm in redis.
type RedisLimiter struct {
	limiter *redis_rate.Limiter
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a new RedisLimiter.
func NewRedisLimiter(rdb *redis.Client) *RedisLimiter {
	return &RedisLimiter{limiter: redis_rate.NewLimiter(rdb)}
}

// Allow checks if the request is allowed.
func (r *RedisLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	res, err := r.limiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   limit.Rate,
		Period: limit.Period,
		Burst:  limit.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		ResetAfter: res.ResetAfter,
		RetryAfter: res.RetryAfter,
	}, nil
}

// Middleware rejects requests over limit with 429 and a Retry-After header.
// Keys are prefix plus the client IP. A nil limiter or a zero rate disables
// the check, and limiter errors let the request through.
func Middleware(l Limiter, prefix string, limit Limit) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || limit.Rate <= 0 {
			c.Next()
			return
		}

		res, err := l.Allow(c.Request.Context(), prefix+":"+c.ClientIP(), limit)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(res.RetryAfter)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// retryAfterSeconds rounds up to whole seconds, at least 1.
func retryAfterSeconds(d time.Duration) int {
	return max(int(math.Ceil(d.Seconds())), 1)
}
