package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/ctxutil"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

// quietRoutes log at debug on success; pollers hit them constantly.
var quietRoutes = map[string]bool{
	"/api/health": true,
	"/metrics":    true,
}

// RequestLogger writes one line per request once the handler chain is done.
// Client errors log at warn with their apierr code; server errors at error
// with the underlying cause.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
		}
		if req := ctxutil.From(c.Request.Context()); req != nil {
			fields = append(fields, "request_id", req.ID, "client_ip", req.ClientIP)
			if req.TraceID != "" {
				fields = append(fields, "trace_id", req.TraceID)
			}
			if req.UserID != "" {
				fields = append(fields, "user_id", req.UserID)
			}
		}
		if last := c.Errors.Last(); last != nil {
			var ae *apierr.Error
			if errors.As(last.Err, &ae) {
				fields = append(fields, "code", ae.Code)
			}
			fields = append(fields, "error", last.Err)
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		case quietRoutes[route]:
			log.Debug("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
