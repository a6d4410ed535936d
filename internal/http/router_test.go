package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/ai"
	"github.com/yungbote/studynotes-backend/internal/auth"
	"github.com/yungbote/studynotes-backend/internal/data/repos/memstore"
	"github.com/yungbote/studynotes-backend/internal/data/repos/testutil"
	apphttp "github.com/yungbote/studynotes-backend/internal/http"
	httpH "github.com/yungbote/studynotes-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studynotes-backend/internal/http/middleware"
	"github.com/yungbote/studynotes-backend/internal/observability"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
	"github.com/yungbote/studynotes-backend/internal/platform/ratelimit"
	"github.com/yungbote/studynotes-backend/internal/services"
)

type api struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newAPI(t *testing.T, aiMax int) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	store := memstore.New(log, testutil.Options())
	tokens, err := auth.NewTokenIssuer("router-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	metrics := observability.NewMetrics()
	gw := ai.NewGateway(nil, log, metrics, time.Second)

	authSvc := services.NewAuthService(log, store.Users(), tokens)
	aiLimiter, err := ratelimit.New(ratelimit.Rule{Scope: "ai", Max: aiMax, Window: time.Minute, Message: "AI request limit reached"}, ratelimit.NewMemoryStore(nil))
	if err != nil {
		t.Fatalf("ratelimit.New: %v", err)
	}

	r := apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		AILimiter:      aiLimiter,
		AuthHandler:    httpH.NewAuthHandler(authSvc),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authSvc),
		NoteHandler:    httpH.NewNoteHandler(services.NewNoteService(log, store.Notes(), gw)),
		QuizHandler:    httpH.NewQuizHandler(services.NewQuizService(log, store.Notes(), store.Quizzes(), store.QuizAttempts(), gw)),
		ChatHandler:    httpH.NewChatHandler(services.NewChatService(log, store.Chats(), gw)),
		StudyHandler:   httpH.NewStudyHandler(services.NewStudyService(log, store.Users(), store.Notes(), store.StudySessions(), gw, nil)),
		HealthHandler:  httpH.NewHealthHandler(store, gw),
	})
	return &api{t: t, handler: r}
}

func (a *api) do(method, path string, body any) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("Encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			a.t.Fatalf("%s %s: Unmarshal: %v", method, path, err)
		}
	}
	return rec.Code, out
}

func (a *api) register(username string) {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": username, "email": username + "@x.io", "password": "secret1",
	})
	if code != http.StatusCreated {
		a.t.Fatalf("register: got %d %v", code, body)
	}
	a.token = body["token"].(string)
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	a := newAPI(t, 30)
	code, body := a.do(http.MethodGet, "/api/health", nil)
	if code != http.StatusOK || body["status"] != "ok" || body["store"] != "memory" || body["aiLive"] != false {
		t.Fatalf("health: got %d %v", code, body)
	}
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t, 30)

	code, body := a.do(http.MethodPost, "/api/auth/register", map[string]any{"username": "ab", "email": "ab@x.io", "password": "secret1"})
	if code != http.StatusBadRequest || errorCode(body) != "validation_error" {
		t.Fatalf("short username: got %d %v", code, body)
	}

	a.register("ada")
	code, body = a.do(http.MethodPost, "/api/auth/register", map[string]any{"username": "ada", "email": "other@x.io", "password": "secret1"})
	if code != http.StatusConflict {
		t.Fatalf("duplicate: got %d %v", code, body)
	}

	a.token = ""
	if code, _ := a.do(http.MethodGet, "/api/auth/profile", nil); code != http.StatusUnauthorized {
		t.Fatalf("profile without token: got %d", code)
	}
	code, body = a.do(http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@x.io", "password": "nope"})
	if code != http.StatusUnauthorized {
		t.Fatalf("bad login: got %d %v", code, body)
	}
	code, body = a.do(http.MethodPost, "/api/auth/login", map[string]any{"email": "ada@x.io", "password": "secret1"})
	if code != http.StatusOK {
		t.Fatalf("login: got %d %v", code, body)
	}
	a.token = body["token"].(string)

	code, body = a.do(http.MethodPut, "/api/auth/profile", map[string]any{"profile": map[string]any{"displayName": "Ada L."}})
	if code != http.StatusOK {
		t.Fatalf("update profile: got %d %v", code, body)
	}
	user := body["user"].(map[string]any)
	if user["profile"].(map[string]any)["displayName"] != "Ada L." {
		t.Fatalf("profile not updated: %v", user)
	}
	if _, ok := user["password"]; ok {
		t.Fatalf("password must never be returned")
	}
}

func TestNotesEndToEnd(t *testing.T) {
	a := newAPI(t, 30)
	a.register("ada")

	code, body := a.do(http.MethodPost, "/api/notes", map[string]any{"content": ""})
	if code != http.StatusBadRequest {
		t.Fatalf("empty content: got %d %v", code, body)
	}
	code, body = a.do(http.MethodPost, "/api/notes", map[string]any{"content": "Binary search halves the range each step.", "tags": []string{"algorithms"}})
	if code != http.StatusCreated {
		t.Fatalf("create: got %d %v", code, body)
	}
	id := body["note"].(map[string]any)["id"].(string)

	code, body = a.do(http.MethodPost, "/api/notes/"+id+"/summarize", nil)
	if code != http.StatusOK || !strings.Contains(body["summary"].(string), "Binary search") {
		t.Fatalf("summarize: got %d %v", code, body)
	}
	code, body = a.do(http.MethodGet, "/api/notes?search=BINARY", nil)
	if code != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("search: got %d %v", code, body)
	}

	code, body = a.do(http.MethodPost, "/api/notes/"+id+"/share", map[string]any{"isPublic": true})
	if code != http.StatusOK || body["message"] != "Note shared successfully" {
		t.Fatalf("share: got %d %v", code, body)
	}
	code, body = a.do(http.MethodPost, "/api/notes/"+id+"/rate", map[string]any{"rating": 4})
	if code != http.StatusOK || body["averageRating"].(float64) != 4 {
		t.Fatalf("rate: got %d %v", code, body)
	}

	a.token = ""
	code, body = a.do(http.MethodGet, "/api/notes/public?search=algorithms", nil)
	if code != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("public: got %d %v", code, body)
	}

	a.register("bob")
	if code, body = a.do(http.MethodGet, "/api/notes/"+id, nil); code != http.StatusNotFound {
		t.Fatalf("foreign note: got %d %v", code, body)
	}
	if code, _ = a.do(http.MethodDelete, "/api/notes/"+id, nil); code != http.StatusNotFound {
		t.Fatalf("foreign delete: got %d", code)
	}
}

func TestQuizEndToEnd(t *testing.T) {
	a := newAPI(t, 30)
	a.register("ada")

	code, body := a.do(http.MethodPost, "/api/quizzes", map[string]any{"title": "Empty", "questions": []any{}})
	if code != http.StatusBadRequest {
		t.Fatalf("empty quiz: got %d %v", code, body)
	}
	code, body = a.do(http.MethodPost, "/api/quizzes", map[string]any{
		"title": "Capitals",
		"questions": []map[string]any{
			{"question": "Capital of France?", "correctAnswer": "Paris", "points": 2},
			{"question": "Capital of Peru?", "correctAnswer": "Lima"},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("create: got %d %v", code, body)
	}
	quiz := body["quiz"].(map[string]any)
	if quiz["totalPoints"].(float64) != 3 {
		t.Fatalf("totalPoints: got %v", quiz["totalPoints"])
	}
	id := quiz["id"].(string)

	code, body = a.do(http.MethodPost, "/api/quizzes/"+id+"/attempt", map[string]any{"answers": []string{"Paris", "Cusco"}, "timeSpent": 30})
	if code != http.StatusOK || body["score"].(float64) != 2 {
		t.Fatalf("attempt: got %d %v", code, body)
	}
	code, body = a.do(http.MethodGet, "/api/quizzes/attempts/history", nil)
	if code != http.StatusOK || body["count"].(float64) != 1 {
		t.Fatalf("history: got %d %v", code, body)
	}
}

func TestChatAndStudyEndToEnd(t *testing.T) {
	a := newAPI(t, 30)
	a.register("ada")

	code, body := a.do(http.MethodPost, "/api/chat/message", map[string]any{"message": "What is osmosis?"})
	if code != http.StatusOK || body["sessionId"] == "" {
		t.Fatalf("message: got %d %v", code, body)
	}
	sid := body["sessionId"].(string)
	code, body = a.do(http.MethodGet, "/api/chat/session/"+sid, nil)
	if code != http.StatusOK || len(body["chatSession"].(map[string]any)["messages"].([]any)) != 2 {
		t.Fatalf("session: got %d %v", code, body)
	}

	code, body = a.do(http.MethodPost, "/api/study/session", map[string]any{"subject": "biology"})
	if code != http.StatusCreated {
		t.Fatalf("start: got %d %v", code, body)
	}
	studyID := body["session"].(map[string]any)["id"].(string)
	code, body = a.do(http.MethodPut, "/api/study/session/"+studyID+"/end", nil)
	if code != http.StatusOK {
		t.Fatalf("end: got %d %v", code, body)
	}
	code, body = a.do(http.MethodGet, "/api/study/analytics", nil)
	if code != http.StatusOK || body["analytics"].(map[string]any)["totalSessions"].(float64) != 1 {
		t.Fatalf("analytics: got %d %v", code, body)
	}
	if code, _ = a.do(http.MethodGet, "/api/study/sessions?startDate=not-a-date", nil); code != http.StatusBadRequest {
		t.Fatalf("bad date: got %d", code)
	}
}

func TestAIRoutesAreRateLimited(t *testing.T) {
	a := newAPI(t, 2)
	a.register("ada")
	_, body := a.do(http.MethodPost, "/api/notes", map[string]any{"content": "cells"})
	id := body["note"].(map[string]any)["id"].(string)

	for i := 0; i < 2; i++ {
		if code, _ := a.do(http.MethodPost, "/api/notes/"+id+"/summarize", nil); code != http.StatusOK {
			t.Fatalf("summarize %d: got %d", i, code)
		}
	}
	code, body := a.do(http.MethodPost, "/api/notes/"+id+"/summarize", nil)
	if code != http.StatusTooManyRequests || errorCode(body) != "rate_limited" {
		t.Fatalf("over limit: got %d %v", code, body)
	}
	if code, _ := a.do(http.MethodGet, "/api/notes/"+id, nil); code != http.StatusOK {
		t.Fatalf("non-AI route must not be limited: got %d", code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	a := newAPI(t, 30)
	a.do(http.MethodGet, "/api/health", nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "studynotes_api_requests_total") {
		t.Fatalf("metrics: got %d", rec.Code)
	}
}
