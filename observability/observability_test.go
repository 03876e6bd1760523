package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected endpoint localhost:4318, got %s", cfg.Endpoint)
	}
	if cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %f", cfg.Tracing.SampleRate)
	}
	if cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("expected interval 15s, got %v", cfg.Metrics.Interval)
	}
	if cfg.Tracing.Enabled || cfg.Metrics.Enabled {
		t.Error("export should stay disabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	for _, rate := range []float64{-0.1, 1.5} {
		cfg := Config{Tracing: TracingConfig{SampleRate: rate}}
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for sample rate %v", rate)
		}
	}
	cfg := Config{Tracing: TracingConfig{SampleRate: 0.25}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_Derived(t *testing.T) {
	cfg := Config{
		Endpoint: "otel:4318",
		Insecure: true,
		Tracing:  TracingConfig{SampleRate: 0.5},
		Metrics:  MetricsConfig{Interval: time.Minute},
	}
	tc := cfg.TracerConfig("whisper-mcp", "1.2.0", "production")
	if tc.ServiceName != "whisper-mcp" || tc.Endpoint != "otel:4318" || tc.SampleRate != 0.5 || !tc.Insecure {
		t.Errorf("unexpected tracer config: %+v", tc)
	}
	mc := cfg.MeterConfig("whisper-mcp", "1.2.0", "production")
	if mc.Interval != time.Minute || mc.ServiceVersion != "1.2.0" {
		t.Errorf("unexpected meter config: %+v", mc)
	}
}

func TestSampler(t *testing.T) {
	if got := sampler(1).Description(); got != sdktrace.AlwaysSample().Description() {
		t.Errorf("rate 1 sampler = %s", got)
	}
	if got := sampler(0).Description(); got != sdktrace.NeverSample().Description() {
		t.Errorf("rate 0 sampler = %s", got)
	}
}

func TestSetup_Disabled(t *testing.T) {
	m, shutdown, err := Setup(context.Background(), Config{}, "svc", "dev", "development")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if m == nil {
		t.Fatal("expected metrics even when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestSetup_InvalidConfig(t *testing.T) {
	_, _, err := Setup(context.Background(), Config{Tracing: TracingConfig{Enabled: true, SampleRate: 2}}, "svc", "dev", "development")
	if err == nil {
		t.Error("expected validation error")
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	ctx := context.Background()
	m.RecordRunStart(ctx)
	m.RecordRunEnd(ctx, "url", "srt", "ok", time.Second)
	m.RecordBackendCall(ctx, "whisper-asr", "ok", time.Second)
	m.RecordAudio(ctx, "path", 1024)
	m.RecordConversion(ctx, "")
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestMetrics_Recorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordRunStart(ctx)
	m.RecordRunStart(ctx)
	m.RecordRunEnd(ctx, "path", "text", "ok", 2*time.Second)
	m.RecordBackendCall(ctx, "ffmpeg-api", "ok", time.Second)
	m.RecordBackendCall(ctx, "whisper-asr", "TRANSCRIPTION_ERROR", time.Second)
	m.RecordConversion(ctx, "wav")

	got := collect(t, reader)

	runs, ok := got["transcribe.runs"].Data.(metricdata.Sum[int64])
	if !ok || len(runs.DataPoints) != 1 || runs.DataPoints[0].Value != 1 {
		t.Errorf("unexpected transcribe.runs: %+v", got["transcribe.runs"].Data)
	}

	active, ok := got["transcribe.active"].Data.(metricdata.Sum[int64])
	if !ok || len(active.DataPoints) != 1 || active.DataPoints[0].Value != 1 {
		t.Errorf("expected one run in flight, got %+v", got["transcribe.active"].Data)
	}

	calls, ok := got["backend.calls"].Data.(metricdata.Sum[int64])
	if !ok || len(calls.DataPoints) != 2 {
		t.Errorf("expected two backend series, got %+v", got["backend.calls"].Data)
	}

	if _, ok := got["audio.conversions"]; !ok {
		t.Error("audio.conversions not recorded")
	}
}

func TestSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), SpanASR)
	SetSpanAttribute(ctx, AttrOutputFormat, "srt")
	SetSpanAttribute(ctx, AttrBytes, 2048)
	SetSpanAttribute(ctx, AttrBackend, struct{ N int }{1})
	SetSpanError(ctx, errors.New("backend returned 500"))
	SetSpanError(ctx, nil)
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	s := ended[0]
	if s.Name() != SpanASR {
		t.Errorf("span name = %s", s.Name())
	}
	if len(s.Attributes()) != 3 {
		t.Errorf("expected 3 attributes, got %v", s.Attributes())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status())
	}
	if len(s.Events()) != 1 {
		t.Errorf("expected one error event, got %d", len(s.Events()))
	}
}

func TestSetSpanAttribute_NoSpan(t *testing.T) {
	// No span in context: must not panic.
	SetSpanAttribute(context.Background(), AttrRunID, "abc")
	SetSpanError(context.Background(), errors.New("x"))
}
