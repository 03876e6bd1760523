// Package provider is the small abstraction the pipeline backends share:
// a named RequestResponse with an availability check, plus middlewares for
// logging, tracing and metrics composed with Chain.
//
//	asr := provider.Chain(
//	    provider.WithLogging[transcription.Request, *transcription.Response](log),
//	    provider.WithMetrics[transcription.Request, *transcription.Response](metrics),
//	    provider.WithTracing[transcription.Request, *transcription.Response](observability.SpanASR),
//	)(whisperClient)
package provider
