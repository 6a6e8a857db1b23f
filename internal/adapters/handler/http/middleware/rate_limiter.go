package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-balance/internal/adapters/cache"
)

// RateLimiterMiddleware allows limit requests per client IP and window.
// Counter failures let the request through.
func RateLimiterMiddleware(counter cache.Counter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, ttl, err := counter.Incr(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			log.Printf("[RATE] Counter error (limiter skipped): %v", err)
			c.Next()
			return
		}

		resetTime := time.Now().Add(ttl).Unix()
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(limit)-count)))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime))

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
