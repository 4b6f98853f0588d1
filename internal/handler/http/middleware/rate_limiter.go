// File: backend/services/account-security-service/internal/handler/http/middleware/rate_limiter.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wizarding-anonymous/gaming_platform/backend/services/account-security-service/internal/config"
)

// RateLimiter is a fixed-window counter over Redis, keyed per client.
// Applied to the sensitive account-security endpoints (reauthentication,
// token consumption) to slow down guessing.
type RateLimiter struct {
	client *redis.Client
	rule   config.RateLimitRule
	logger *zap.Logger
}

func NewRateLimiter(client *redis.Client, rule config.RateLimitRule, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		rule:   rule,
		logger: logger.Named("rate_limiter"),
	}
}

// Allow increments the window counter for key and reports whether the caller
// is still within the limit. Fails open: a Redis outage must not take the
// account-security API down with it.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if !rl.rule.Enabled {
		return true, nil
	}

	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(rl.rule.Window.Seconds()))

	pipe := rl.client.Pipeline()
	count := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, rl.rule.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("rate limit check: %w", err)
	}
	return count.Val() <= int64(rl.rule.Limit), nil
}

// Middleware limits requests per client IP and authenticated user.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := UserIDFromContext(c); ok {
			key = userID.String()
		}

		allowed, err := rl.Allow(c.Request.Context(), key)
		if err != nil {
			rl.logger.Error("rate limiter unavailable", zap.Error(err))
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
				"code":  "rate_limited",
			})
			return
		}
		c.Next()
	}
}
