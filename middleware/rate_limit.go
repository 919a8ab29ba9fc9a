package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nivela-brasil/intake-backend/errors"
	"github.com/nivela-brasil/intake-backend/logger"
)

// IntakeRateLimiter limits form submissions per client IP using a fixed
// window counter in Redis. When Redis is unreachable the limiter fails open:
// losing a lead to a throttling outage is worse than letting a burst through.
func IntakeRateLimiter(redisClient *redis.Client, requestsPerWindow int, window time.Duration) gin.HandlerFunc {
	log := logger.GetLogger()

	return func(c *gin.Context) {
		key := fmt.Sprintf("intake:ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)

		if _, err := pipe.Exec(ctx); err != nil {
			log.Warnw("Rate limiter unavailable, allowing request",
				"error", err,
				"clientIP", c.ClientIP())
			c.Next()
			return
		}

		count := incr.Val()
		remaining := int64(requestsPerWindow) - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(requestsPerWindow))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(requestsPerWindow) {
			retryAfter := int(window.Seconds())
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			_ = c.Error(errors.RateLimitExceeded("Too many submissions, please try again later", retryAfter))
			c.Abort()
			return
		}

		c.Next()
	}
}
