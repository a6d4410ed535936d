package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	PathLive     = "live"
	PathFallback = "fallback"
)

// Metrics owns its registry so tests and multiple servers never collide on
// the global one. All methods are safe on a nil receiver.
type Metrics struct {
	registry    *prometheus.Registry
	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge
	aiCalls     *prometheus.CounterVec
	aiLatency   *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studynotes_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studynotes_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "studynotes_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		aiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studynotes_ai_calls_total",
			Help: "AI gateway calls by operation and the path that answered.",
		}, []string{"operation", "path"}),
		aiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studynotes_ai_call_duration_seconds",
			Help:    "AI gateway latency in seconds by operation.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"operation"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studynotes_rate_limited_total",
			Help: "Requests rejected by a rate limit scope.",
		}, []string{"scope"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.aiCalls,
		m.aiLatency,
		m.rateLimited,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) InflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) InflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveAI records which path (live or fallback) answered an operation.
func (m *Metrics) ObserveAI(operation, path string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aiCalls.WithLabelValues(operation, path).Inc()
	m.aiLatency.WithLabelValues(operation).Observe(dur.Seconds())
}

func (m *Metrics) AICalls() *prometheus.CounterVec {
	if m == nil {
		return nil
	}
	return m.aiCalls
}

func (m *Metrics) IncRateLimited(scope string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(scope).Inc()
}
