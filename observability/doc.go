// Package observability wires OpenTelemetry tracing and metrics for the
// transcription pipeline.
//
//	metrics, shutdown, err := observability.Setup(ctx, cfg.Observability, "whisper-mcp", version.Short(), "production")
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanASR)
//	defer span.End()
//
// With telemetry disabled, spans and instruments go to the global no-op
// providers, so call sites never need to check.
package observability
