package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/XavierPelle/sprintly/internal/infrastructure/ratelimit"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
	"github.com/XavierPelle/sprintly/internal/shared/utils"
)

// RateLimiter throttles a route per client IP.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	scope   string
	logger  logger.Interface
}

// NewRateLimiter wraps limiter; scope separates counters of different routes.
// A nil limiter lets every request through.
func NewRateLimiter(limiter ratelimit.RateLimiter, scope string, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the rate limit per client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.limiter == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", rl.scope, c.ClientIP())
		allowed, err := rl.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Store outage must not lock everyone out.
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
