package http

import (
	"net/http"
	"strconv"
	"time"

	"chronicle/internal/domain"

	"github.com/gin-gonic/gin"
)

// enforceLoginRateLimit throttles login attempts per client address so a
// single host cannot guess credentials at full speed. Limiter errors fail
// open unless configured otherwise.
func (s *Server) enforceLoginRateLimit(c *gin.Context) {
	if s.rateLimiter == nil || s.loginRateLimit <= 0 {
		c.Next()
		return
	}
	key := "login:ip:" + c.ClientIP()
	decision, err := s.rateLimiter.Allow(c.Request.Context(), key, s.loginRateLimit, s.loginRateWindow)
	if err != nil {
		if s.rateLimitFailClosed {
			writeErrorCode(c, http.StatusTooManyRequests, "RATE_LIMIT_UNAVAILABLE", "rate limiter unavailable")
			c.Abort()
			return
		}
		c.Next()
		return
	}
	writeRateLimitHeaders(c, decision)
	if !decision.Allowed {
		writeErrorCode(c, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
		c.Abort()
		return
	}
	c.Next()
}

func writeRateLimitHeaders(c *gin.Context, decision domain.RateLimitDecision) {
	if decision.Limit > 0 {
		c.Header("RateLimit-Limit", strconv.Itoa(decision.Limit))
	}
	if decision.Remaining >= 0 {
		c.Header("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	}
	if !decision.ResetAt.IsZero() {
		c.Header("RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		if !decision.Allowed {
			retryAfter := int64(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
		}
	}
}
