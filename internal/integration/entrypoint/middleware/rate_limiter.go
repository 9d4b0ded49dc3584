// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/backoffice/backend/internal/integration/entrypoint/dto"
)

// KeyFunc picks the rate limit bucket of a request.
type KeyFunc func(c *gin.Context) string

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter is a fixed-window rate limiter. Counters live in Redis when a
// client is configured, so every API instance shares them; otherwise, or when
// Redis fails, they are kept in process memory.
type RateLimiter struct {
	redis          *redis.Client
	prefix         string
	maxAttempts    int
	windowDuration time.Duration
	code           string

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter. client may be nil.
func NewRateLimiter(client *redis.Client, prefix string, maxAttempts int, windowDuration time.Duration, code string) *RateLimiter {
	return &RateLimiter{
		redis:          client,
		prefix:         prefix,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		code:           code,
		entries:        make(map[string]*rateLimitEntry),
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware(keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.Request.Context(), keyFn(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  rl.code,
			})
			return
		}
		c.Next()
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	if rl.redis != nil {
		allowed, err := rl.allowRedis(ctx, key)
		if err == nil {
			return allowed
		}
		slog.WarnContext(ctx, "Rate limiter falling back to memory", "error", err, "prefix", rl.prefix)
	}
	return rl.allowMemory(key)
}

// allowRedis increments the window counter and starts the window on the first attempt.
func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", rl.prefix, key)

	attempts, err := rl.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if attempts == 1 {
		if err := rl.redis.Expire(ctx, redisKey, rl.windowDuration).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return attempts <= int64(rl.maxAttempts), nil
}

// allowMemory checks if a request from the given key should be allowed.
func (rl *RateLimiter) allowMemory(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.windowDuration),
		}
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}
	return false
}

// Cleanup removes expired in-memory entries.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}

// StartCleanup prunes expired in-memory entries every interval. It blocks until ctx is cancelled.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}

// ClientIPKey buckets requests by client IP.
func ClientIPKey(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return c.Request.RemoteAddr
}

// UserKey buckets requests by authenticated user, falling back to client IP.
func UserKey(c *gin.Context) string {
	if id, ok := GetUserIDFromContext(c); ok {
		return id.String()
	}
	return ClientIPKey(c)
}

// Disabled passes every request through.
func Disabled() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}
