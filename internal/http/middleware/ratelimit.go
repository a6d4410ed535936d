package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/http/response"
	"github.com/yungbote/studynotes-backend/internal/observability"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/ctxutil"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
	"github.com/yungbote/studynotes-backend/internal/platform/ratelimit"
)

// RateLimit enforces limiter per caller and sets the RateLimit-* headers.
// Callers are keyed by user once authenticated, by IP before that. When the
// store is unreachable requests pass through.
func RateLimit(log *logger.Logger, limiter *ratelimit.Limiter, m *observability.Metrics) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	rule := limiter.Rule()
	log = log.With("Middleware", "RateLimit", "scope", rule.Scope)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		client := clientKey(c)
		d, err := limiter.Allow(c.Request.Context(), client)
		if err != nil {
			log.Warn("rate limit store unavailable", "error", err)
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("RateLimit-Limit", strconv.Itoa(d.Limit))
		h.Set("RateLimit-Remaining", strconv.Itoa(d.Remaining))
		h.Set("RateLimit-Reset", strconv.Itoa(secondsUntil(d.ResetAt)))
		if !d.Allowed {
			h.Set("Retry-After", strconv.Itoa(secondsUntil(d.ResetAt)))
			m.IncRateLimited(rule.Scope)
			response.Abort(c, apierr.RateLimited(rule.Message))
			return
		}

		c.Next()

		if rule.SkipSuccessful && c.Writer.Status() < http.StatusBadRequest {
			if err := limiter.Undo(c.Request.Context(), client); err != nil {
				log.Warn("rate limit undo failed", "error", err)
			}
		}
	}
}

func clientKey(c *gin.Context) string {
	if uid := ctxutil.UserID(c.Request.Context()); uid != "" {
		return "user:" + uid
	}
	return "ip:" + c.ClientIP()
}

func secondsUntil(t time.Time) int {
	return max(int(math.Ceil(time.Until(t).Seconds())), 0)
}
