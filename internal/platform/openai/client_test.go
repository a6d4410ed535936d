package openai

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

func fakeServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{}); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("NewClient without key: got %v", err)
	}
}

func TestComplete(t *testing.T) {
	var seen map[string]any
	srv := fakeServer(t, http.StatusOK, `{
		"choices":[{"index":0,"message":{"role":"assistant","content":"  Cells divide.  "},"finish_reason":"stop"}],
		"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}
	}`, &seen)

	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Model() != DefaultModel {
		t.Fatalf("Model: got %q", c.Model())
	}
	got, err := c.Complete(t.Context(), Request{
		System:    "be brief",
		Messages:  []Message{{Role: "user", Content: "mitosis?"}},
		MaxTokens: 50,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Cells divide." {
		t.Fatalf("Complete: got %q", got)
	}

	msgs, _ := seen["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("request messages: got %v", seen["messages"])
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "be brief" {
		t.Fatalf("system message: got %v", first)
	}
	if seen["max_tokens"] != float64(50) {
		t.Fatalf("max_tokens: got %v", seen["max_tokens"])
	}
}

func TestCompleteEmpty(t *testing.T) {
	srv := fakeServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`, nil)
	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Complete(t.Context(), Request{Messages: []Message{{Role: "user", Content: "x"}}}); !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("Complete: got %v, want ErrEmptyCompletion", err)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := fakeServer(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, nil)
	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Complete(t.Context(), Request{Messages: []Message{{Role: "user", Content: "x"}}}); err == nil {
		t.Fatalf("Complete: expected error on 500")
	}
}
