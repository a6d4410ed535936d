package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAI(t *testing.T) {
	m := NewMetrics()
	m.ObserveAI("summarize", PathFallback, 10*time.Millisecond)
	m.ObserveAI("summarize", PathFallback, 10*time.Millisecond)
	m.ObserveAI("summarize", PathLive, time.Second)

	if got := testutil.ToFloat64(m.AICalls().WithLabelValues("summarize", PathFallback)); got != 2 {
		t.Fatalf("fallback count: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.AICalls().WithLabelValues("summarize", PathLive)); got != 1 {
		t.Fatalf("live count: got %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/health", "200", time.Millisecond)
	m.ObserveAI("converse", PathLive, time.Millisecond)
	m.IncRateLimited("api")
	m.InflightInc()
	m.InflightDec()
	if m.Registry() != nil || m.AICalls() != nil {
		t.Fatalf("nil metrics must expose nothing")
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/notes", "200", 5*time.Millisecond)
	m.IncRateLimited("auth")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`studynotes_api_requests_total{method="GET",route="/api/notes",status="200"} 1`,
		`studynotes_rate_limited_total{scope="auth"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
