package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func useInMemoryTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordQueryStart(ctx)
	metrics.RecordQueryEnd(ctx, "users.LogsRequest", "GET", "ok", 100*time.Millisecond)
	metrics.RecordError(ctx, "status", "users.LogsRequest")
}

func TestMetrics_RecordsQueries(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	_, op := StartOperation(ctx, metrics, "users.GetRequest", "GET", "req-1")
	op.End(ctx, 404, "status", fmt.Errorf("not found"))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
		}
	}
	for _, name := range []string{"management.query.total", "management.query.duration", "management.error.total"} {
		if !found[name] {
			t.Errorf("expected metric %s to be recorded, got %v", name, found)
		}
	}
}

func TestStartOperation_Span(t *testing.T) {
	exporter := useInMemoryTracer(t)

	ctx := context.Background()
	_, op := StartOperation(ctx, nil, "users.LogsRequest", "GET", "req-42")
	op.End(ctx, 200, "", nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name != SpanQuery {
		t.Errorf("expected span %q, got %q", SpanQuery, s.Name)
	}
	if v, ok := attrValue(s.Attributes, AttrRequestID); !ok || v.AsString() != "req-42" {
		t.Errorf("expected request id attribute, got %v", s.Attributes)
	}
	if v, ok := attrValue(s.Attributes, AttrStatusCode); !ok || v.AsInt64() != 200 {
		t.Errorf("expected status code attribute, got %v", s.Attributes)
	}
	if v, _ := attrValue(s.Attributes, AttrStatus); v.AsString() != "ok" {
		t.Errorf("expected status ok, got %v", v.AsString())
	}
}

func TestStartOperation_SpanError(t *testing.T) {
	exporter := useInMemoryTracer(t)

	ctx := context.Background()
	_, op := StartOperation(ctx, nil, "users.GetRequest", "GET", "req-1")
	op.End(ctx, 0, "transport", fmt.Errorf("connection refused"))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}
	if _, ok := attrValue(spans[0].Attributes, AttrStatusCode); ok {
		t.Error("status code attribute should be absent when no response was received")
	}
}

func TestOperation_Duration(t *testing.T) {
	_, op := StartOperation(context.Background(), nil, "op", "GET", "")
	time.Sleep(5 * time.Millisecond)
	if op.Duration() < 5*time.Millisecond {
		t.Errorf("expected duration >= 5ms, got %v", op.Duration())
	}
	op.End(context.Background(), 200, "", nil)
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-operation")
	defer span.End()

	if span == nil {
		t.Fatal("expected non-nil span")
	}
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected non-nil span from context")
	}
}

func TestSetSpanError(t *testing.T) {
	exporter := useInMemoryTracer(t)

	ctx, span := StartSpan(context.Background(), "test-error")
	SetSpanError(ctx, fmt.Errorf("test error"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 || len(spans[0].Events) == 0 {
		t.Fatalf("expected recorded error event, got %+v", spans)
	}
}

func TestSetSpanErrorNoSpan(t *testing.T) {
	SetSpanError(context.Background(), fmt.Errorf("no span error"))
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tt := range tests {
		if got := samplerFor(tt.rate).Description(); got != tt.want {
			t.Errorf("samplerFor(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("mgmtctl", "1.2.3", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := attrValue(res.Attributes(), "service.name"); !ok || v.AsString() != "mgmtctl" {
		t.Errorf("expected service.name mgmtctl, got %v", res.Attributes())
	}
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	tp, err := InitTracer(context.Background(), DefaultTracerConfig("test-service"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = tp.Shutdown(ctx)
}

func TestInitMeter(t *testing.T) {
	prev := otel.GetMeterProvider()
	defer otel.SetMeterProvider(prev)

	mp, err := InitMeter(context.Background(), DefaultMeterConfig("test-service"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = mp.Shutdown(ctx)
}
