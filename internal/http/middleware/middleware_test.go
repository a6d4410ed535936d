package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/observability"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/ctxutil"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
	"github.com/yungbote/studynotes-backend/internal/platform/ratelimit"
	"github.com/yungbote/studynotes-backend/internal/services"
)

type fakeAuth struct {
	services.AuthService
	tokens map[string]string
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if id, ok := f.tokens[token]; ok {
		return &domain.User{ID: id}, nil
	}
	return nil, apierr.Auth()
}

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), &fakeAuth{tokens: map[string]string{"good": "user-1"}})
	r := gin.New()
	r.GET("/me", am.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()))
	})

	if rec := do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer good"}); rec.Code != http.StatusOK || rec.Body.String() != "user-1" {
		t.Fatalf("valid token: got %d %q", rec.Code, rec.Body.String())
	}
	for name, h := range map[string]map[string]string{
		"missing": nil,
		"bad":     {"Authorization": "Bearer bad"},
		"scheme":  {"Authorization": "Basic good"},
	} {
		rec := do(r, http.MethodGet, "/me", h)
		if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "authentication failed") {
			t.Fatalf("%s: got %d %s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, err := ratelimit.New(ratelimit.Rule{Scope: "api", Max: 2, Window: time.Minute, Message: "slow down"}, ratelimit.NewMemoryStore(nil))
	if err != nil {
		t.Fatalf("ratelimit.New: %v", err)
	}
	m := observability.NewMetrics()
	r := gin.New()
	r.Use(RateLimit(logger.Nop(), l, m))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if rec := do(r, http.MethodGet, "/ping", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, rec.Code)
		}
	}
	rec := do(r, http.MethodGet, "/ping", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over limit: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"rate_limited"`) || rec.Header().Get("RateLimit-Remaining") != "0" {
		t.Fatalf("over limit response: %s %v", rec.Body.String(), rec.Header())
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After")
	}
}

func TestRateLimitSkipsSuccessfulRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, err := ratelimit.New(ratelimit.AuthRule, ratelimit.NewMemoryStore(nil))
	if err != nil {
		t.Fatalf("ratelimit.New: %v", err)
	}
	r := gin.New()
	r.Use(RateLimit(logger.Nop(), l, nil))
	r.POST("/login", func(c *gin.Context) {
		if c.Query("ok") == "1" {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusUnauthorized)
	})

	for i := 0; i < 10; i++ {
		if rec := do(r, http.MethodPost, "/login?ok=1", nil); rec.Code != http.StatusOK {
			t.Fatalf("successful login %d: got %d", i, rec.Code)
		}
	}
	for i := 0; i < ratelimit.AuthRule.Max; i++ {
		if rec := do(r, http.MethodPost, "/login", nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("failed login %d: got %d", i, rec.Code)
		}
	}
	if rec := do(r, http.MethodPost, "/login?ok=1", nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("after %d failures: got %d", ratelimit.AuthRule.Max, rec.Code)
	}
}

func TestRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), &fakeAuth{tokens: map[string]string{"good": "user-1"}})
	var seen *ctxutil.Request
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		seen = ctxutil.From(c.Request.Context())
	})
	r.Use(RequestContext())
	r.GET("/x", am.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.From(c.Request.Context()).ID)
	})

	rec := do(r, http.MethodGet, "/x", map[string]string{headerRequestID: "req-42", "Authorization": "Bearer good"})
	if rec.Body.String() != "req-42" || rec.Header().Get(headerRequestID) != "req-42" {
		t.Fatalf("request id not propagated: %q", rec.Body.String())
	}
	if seen == nil || seen.UserID != "user-1" || seen.ClientIP == "" {
		t.Fatalf("request state after the chain: got %+v", seen)
	}

	rec = do(r, http.MethodGet, "/x", map[string]string{headerRequestID: strings.Repeat("x", 200), "Authorization": "Bearer good"})
	if len(rec.Body.String()) != 36 {
		t.Fatalf("oversized request id must be replaced: %q", rec.Body.String())
	}
}

func TestRateLimitKeysByUserOnceAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(logger.Nop(), &fakeAuth{tokens: map[string]string{"a": "user-a", "b": "user-b"}})
	l, err := ratelimit.New(ratelimit.Rule{Scope: "ai", Max: 1, Window: time.Minute, Message: "slow down"}, ratelimit.NewMemoryStore(nil))
	if err != nil {
		t.Fatalf("ratelimit.New: %v", err)
	}
	r := gin.New()
	r.Use(RequestContext())
	r.POST("/ask", am.RequireAuth(), RateLimit(logger.Nop(), l, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	if rec := do(r, http.MethodPost, "/ask", map[string]string{"Authorization": "Bearer a"}); rec.Code != http.StatusOK {
		t.Fatalf("user a first call: got %d", rec.Code)
	}
	if rec := do(r, http.MethodPost, "/ask", map[string]string{"Authorization": "Bearer b"}); rec.Code != http.StatusOK {
		t.Fatalf("user b shares an IP with a but has its own window: got %d", rec.Code)
	}
	if rec := do(r, http.MethodPost, "/ask", map[string]string{"Authorization": "Bearer a"}); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("user a second call: got %d", rec.Code)
	}
}
