package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/whisper-asr-mcp/logger"
)

// MeterConfig configures the OTLP meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Insecure       bool
	Interval       time.Duration
}

// InitMeter installs a periodic OTLP meter provider as the global one.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("Meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns the service meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics holds the transcription pipeline instruments.
type Metrics struct {
	runTotal        metric.Int64Counter
	runDuration     metric.Float64Histogram
	runActive       metric.Int64UpDownCounter
	backendTotal    metric.Int64Counter
	backendDuration metric.Float64Histogram
	audioBytes      metric.Int64Histogram
	conversionTotal metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	if m.runTotal, err = meter.Int64Counter("transcribe.runs",
		metric.WithDescription("Completed transcribe calls by outcome")); err != nil {
		return nil, fmt.Errorf("creating transcribe.runs: %w", err)
	}
	if m.runDuration, err = meter.Float64Histogram("transcribe.duration",
		metric.WithDescription("End-to-end transcribe latency"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating transcribe.duration: %w", err)
	}
	if m.runActive, err = meter.Int64UpDownCounter("transcribe.active",
		metric.WithDescription("Transcribe calls in flight")); err != nil {
		return nil, fmt.Errorf("creating transcribe.active: %w", err)
	}
	if m.backendTotal, err = meter.Int64Counter("backend.calls",
		metric.WithDescription("Calls to conversion and ASR backends by outcome")); err != nil {
		return nil, fmt.Errorf("creating backend.calls: %w", err)
	}
	if m.backendDuration, err = meter.Float64Histogram("backend.duration",
		metric.WithDescription("Backend call latency"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating backend.duration: %w", err)
	}
	if m.audioBytes, err = meter.Int64Histogram("audio.size",
		metric.WithDescription("Resolved audio size"),
		metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("creating audio.size: %w", err)
	}
	if m.conversionTotal, err = meter.Int64Counter("audio.conversions",
		metric.WithDescription("Audio converted before transcription, by source extension")); err != nil {
		return nil, fmt.Errorf("creating audio.conversions: %w", err)
	}
	return &m, nil
}

// RecordRunStart increments the in-flight gauge.
func (m *Metrics) RecordRunStart(ctx context.Context) {
	m.runActive.Add(ctx, 1)
}

// RecordRunEnd decrements the in-flight gauge and records the outcome.
// status is "ok" or an error code.
func (m *Metrics) RecordRunEnd(ctx context.Context, source, format, status string, d time.Duration) {
	m.runActive.Add(ctx, -1)
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("output_format", format),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("output_format", format),
	))
}

// RecordBackendCall records one backend call.
func (m *Metrics) RecordBackendCall(ctx context.Context, backend, status string, d time.Duration) {
	m.backendTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("status", status),
	))
	m.backendDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("backend", backend),
	))
}

// RecordAudio records the size of resolved audio.
func (m *Metrics) RecordAudio(ctx context.Context, source string, size int) {
	m.audioBytes.Record(ctx, int64(size), metric.WithAttributes(attribute.String("source", source)))
}

// RecordConversion counts a conversion from ext ("" when absent).
func (m *Metrics) RecordConversion(ctx context.Context, fromExt string) {
	if fromExt == "" {
		fromExt = "none"
	}
	m.conversionTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("from", fromExt)))
}
