package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/studynotes-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxRequestIDLen = 128
)

// RequestContext attaches the per-request state every later middleware reads.
// A caller-supplied X-Request-Id is kept when it is sane. Runs after otelgin
// so the span's trace id is available.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &ctxutil.Request{
			ID:       strings.TrimSpace(c.GetHeader(headerRequestID)),
			ClientIP: c.ClientIP(),
		}
		if req.ID == "" || len(req.ID) > maxRequestIDLen {
			req.ID = uuid.NewString()
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			req.TraceID = sc.TraceID().String()
			c.Header(headerTraceID, req.TraceID)
		}
		c.Header(headerRequestID, req.ID)
		c.Request = c.Request.WithContext(ctxutil.With(c.Request.Context(), req))
		c.Next()
	}
}
