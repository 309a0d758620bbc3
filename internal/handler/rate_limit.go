package handler

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/storefront-service/internal/dto"
	"github.com/prperemyshlev/storefront-service/internal/service"
	"go.uber.org/zap"
)

// RateLimitMiddleware rejects requests over limit per window for the key.
// Limiter failures let the request through.
func RateLimitMiddleware(
	rateLimiter service.RateLimiter,
	limit int,
	window time.Duration,
	keyFunc func(*gin.Context) string,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + keyFunc(c)

		decision, err := rateLimiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("Rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   "Too Many Requests",
				Message: "Rate limit exceeded, try again in " + strconv.Itoa(seconds) + "s",
			})
			return
		}

		c.Next()
	}
}

// IPBasedKey uses the client IP as the rate limit key
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}
