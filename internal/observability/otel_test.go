package observability

import (
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

func TestInitOTelDisabled(t *testing.T) {
	shutdown := InitOTel(t.Context(), logger.Nop(), OtelConfig{})
	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitOTelInstallsSampledProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown := InitOTel(t.Context(), logger.Nop(), OtelConfig{
		Enabled:     true,
		ServiceName: "studynotes-test",
		SampleRatio: 1,
	})
	_, span := otel.Tracer("test").Start(t.Context(), "op")
	sc := span.SpanContext()
	span.End()
	if !sc.HasTraceID() || !sc.IsSampled() {
		t.Fatalf("span context: got %+v", sc)
	}
	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.25: 0.25, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v): got %v want %v", in, got, want)
		}
	}
}
