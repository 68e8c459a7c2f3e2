package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/config"
	"github.com/ytgate/ytgate/internal/utils"
)

type rateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	limit    int
	window   time.Duration
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, times := range rl.requests {
			valid := withinWindow(times, now, rl.window)
			if len(valid) == 0 {
				delete(rl.requests, key)
			} else {
				rl.requests[key] = valid
			}
		}
		rl.mu.Unlock()
	}
}

// allow records the request when under the limit and returns the remaining
// quota and the time the oldest counted request leaves the window.
func (rl *rateLimiter) allow(key string) (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	valid := withinWindow(rl.requests[key], now, rl.window)

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false, 0, valid[0].Add(rl.window)
	}

	valid = append(valid, now)
	rl.requests[key] = valid

	return true, rl.limit - len(valid), valid[0].Add(rl.window)
}

func withinWindow(times []time.Time, now time.Time, window time.Duration) []time.Time {
	valid := make([]time.Time, 0, len(times))
	for _, t := range times {
		if now.Sub(t) <= window {
			valid = append(valid, t)
		}
	}
	return valid
}

// RateLimitMiddleware enforces a per-client sliding window and exposes the
// standard rate-limit headers on every response.
func RateLimitMiddleware(cfg *config.APIConfig) gin.HandlerFunc {
	limiter := newRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	return func(c *gin.Context) {
		key := c.ClientIP()

		allowed, remaining, reset := limiter.allow(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.RateLimitRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			appErr := utils.NewRateLimitError()
			c.JSON(appErr.StatusCode, gin.H{
				"error":      appErr.Message,
				"code":       appErr.Code,
				"request_id": c.GetString("request_id"),
				"timestamp":  time.Now().Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
