package transcribe

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/whisper-asr-mcp/audio"
	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/observability"
	"github.com/kbukum/whisper-asr-mcp/resilience"
	"github.com/kbukum/whisper-asr-mcp/transcription"
	"github.com/kbukum/whisper-asr-mcp/util"
	"github.com/kbukum/whisper-asr-mcp/validation"
)

// Pipeline stages, logged at debug level as a run advances.
const (
	StageReceived      = "received"
	StageResolved      = "resolved"
	StageFormatChecked = "format_checked"
	StageConverted     = "converted"
	StageTranscribed   = "transcribed"
	StageNormalized    = "normalized"
	StageFailed        = "failed"
)

// SourceResolver reads an audio.Source into memory.
type SourceResolver interface {
	Resolve(ctx context.Context, src audio.Source) (*audio.Resolved, error)
}

// FormatGate converts resolved audio to the native container when needed.
type FormatGate interface {
	Apply(ctx context.Context, r *audio.Resolved) (*audio.Resolved, bool, error)
}

// Service runs the transcribe pipeline.
type Service struct {
	resolver SourceResolver
	gate     FormatGate
	asr      transcription.Provider
	bulkhead *resilience.Bulkhead
	inFlight atomic.Int64
	metrics  *observability.Metrics
	log      *logger.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithMetrics records run metrics. Nil disables them.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l.WithComponent("transcribe")
		}
	}
}

// NewService wires the pipeline stages together.
func NewService(cfg PipelineConfig, resolver SourceResolver, gate FormatGate, asr transcription.Provider, opts ...Option) *Service {
	cfg.ApplyDefaults()
	s := &Service{
		resolver: resolver,
		gate:     gate,
		asr:      asr,
		log:      logger.NewNop(),
	}
	if cfg.MaxConcurrent > 0 {
		s.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "transcribe",
			MaxConcurrent: cfg.MaxConcurrent,
			MaxWait:       cfg.MaxWait,
		})
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InFlight returns the number of runs currently in the backend stages.
func (s *Service) InFlight() int { return int(s.inFlight.Load()) }

// Transcribe runs one invocation end to end. Every failure is an
// *errors.AppError; no partial result is returned with it.
func (s *Service) Transcribe(ctx context.Context, args Args) (*Result, error) {
	runID := uuid.NewString()
	ctx = logger.ContextWithRunID(ctx, runID)
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)

	log := s.log.WithContext(ctx)
	start := time.Now()
	r := &run{source: "unknown", format: args.OutputFormat}
	if s.metrics != nil {
		s.metrics.RecordRunStart(ctx)
	}

	result, err := s.run(ctx, log, r, args)
	err = classify(err)

	status := "ok"
	if err != nil {
		status = string(apperrors.CodeOf(err))
		observability.SetSpanAttribute(ctx, observability.AttrErrorCode, status)
		observability.SetSpanError(ctx, err)
		log.Warn("transcribe failed", logger.Fields(
			logger.FieldStage, StageFailed,
			logger.FieldSource, r.source,
			logger.FieldStatus, status,
			logger.FieldError, err.Error(),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	} else {
		log.Info("transcribe completed", logger.Fields(
			logger.FieldSource, r.source,
			logger.FieldFormat, result.OutputFormat,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}
	if s.metrics != nil {
		s.metrics.RecordRunEnd(ctx, r.source, r.format, status, time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// run carries what the outer call needs for logs and metrics.
type run struct {
	source string
	format string
}

func (s *Service) run(ctx context.Context, log *logger.Logger, r *run, args Args) (*Result, error) {
	stage(log, StageReceived)

	src, format, err := prepare(r, args)
	if err != nil {
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrSource, r.source)
	observability.SetSpanAttribute(ctx, observability.AttrOutputFormat, r.format)

	resolved, err := s.resolve(ctx, src)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordAudio(ctx, r.source, resolved.Size())
	}
	stage(log, StageResolved, logger.FieldFilename, resolved.Filename, logger.FieldBytes, resolved.Size())

	return s.guard(ctx, func() (*Result, error) {
		return s.process(ctx, log, format, resolved)
	})
}

// prepare parses and validates the arguments. It runs before any slot is
// taken, so caller errors are reported the same way under load.
func prepare(r *run, args Args) (audio.Source, transcription.OutputFormat, error) {
	args = args.trimmed()
	src, err := audio.NewSource(args.AudioPath, args.AudioURL, args.AudioBase64, args.Filename)
	if err != nil {
		return nil, "", err
	}
	r.source = src.Kind()

	format, err := transcription.ParseOutputFormat(args.OutputFormat)
	if err != nil {
		return nil, "", err
	}
	r.format = string(format)
	if err := validation.Validate(args); err != nil {
		return nil, "", err
	}
	return src, format, nil
}

// guard runs fn counted as in flight, inside the bulkhead when one is
// configured.
func (s *Service) guard(ctx context.Context, fn func() (*Result, error)) (*Result, error) {
	counted := func() (*Result, error) {
		s.inFlight.Add(1)
		defer s.inFlight.Add(-1)
		return fn()
	}
	if s.bulkhead == nil {
		return counted()
	}
	return resilience.ExecuteWithResult(s.bulkhead, ctx, counted)
}

// process runs the backend stages: conversion when needed, transcription
// and normalization.
func (s *Service) process(ctx context.Context, log *logger.Logger, format transcription.OutputFormat, resolved *audio.Resolved) (*Result, error) {
	fromExt := resolved.Ext()
	native, converted, err := s.checkFormat(ctx, resolved)
	if err != nil {
		return nil, err
	}
	stage(log, StageFormatChecked, logger.FieldMIME, native.ContentType)
	if converted {
		if s.metrics != nil {
			s.metrics.RecordConversion(ctx, fromExt)
		}
		stage(log, StageConverted, logger.FieldFilename, native.Filename, logger.FieldBytes, native.Size())
	}

	resp, err := s.asr.Execute(ctx, transcription.Request{
		Data:           native.Data,
		Filename:       native.Filename,
		ContentType:    native.ContentType,
		Format:         format,
		DetectLanguage: true,
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			err = apperrors.TranscriptionError(err)
		}
		return nil, err
	}
	stage(log, StageTranscribed, logger.FieldLanguage, resp.Language)

	result, err := normalize(format, resp)
	if err != nil {
		return nil, err
	}
	if lang := util.Deref(result.DetectedLanguage); lang != "" {
		observability.SetSpanAttribute(ctx, observability.AttrLanguage, lang)
	}
	stage(log, StageNormalized, logger.FieldFormat, result.OutputFormat)
	return result, nil
}

func (s *Service) resolve(ctx context.Context, src audio.Source) (*audio.Resolved, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanResolve)
	defer span.End()

	resolved, err := s.resolver.Resolve(ctx, src)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrFilename, resolved.Filename)
	observability.SetSpanAttribute(ctx, observability.AttrBytes, resolved.Size())
	return resolved, nil
}

func (s *Service) checkFormat(ctx context.Context, r *audio.Resolved) (*audio.Resolved, bool, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAnalyze)
	defer span.End()

	out, converted, err := s.gate.Apply(ctx, r)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, false, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrConverted, converted)
	return out, converted, nil
}

func stage(log *logger.Logger, name string, kv ...interface{}) {
	log.Debug("stage "+name, logger.Fields(append([]interface{}{logger.FieldStage, name}, kv...)...))
}

// classify turns bulkhead and context failures into AppErrors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, resilience.ErrBulkheadFull), errors.Is(err, resilience.ErrBulkheadTimeout):
		return apperrors.ServiceUnavailable("transcription service").WithCause(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("transcribe").WithCause(err)
	default:
		return apperrors.Internal(err)
	}
}
