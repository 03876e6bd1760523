package observability

import (
	"context"
	"errors"

	"github.com/kbukum/whisper-asr-mcp/logger"
)

// Setup installs the OTLP providers enabled in cfg and returns the pipeline
// instruments with a shutdown func that flushes the exporters. Disabled
// signals stay on the global no-op providers.
func Setup(ctx context.Context, cfg Config, service, version, env string) (*Metrics, func(context.Context) error, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		err := errors.Join(errs...)
		if err != nil {
			logger.Warn("Telemetry shutdown incomplete", logger.Fields(logger.FieldError, err.Error()))
		}
		return err
	}

	if cfg.Tracing.Enabled {
		tp, err := InitTracer(ctx, cfg.TracerConfig(service, version, env))
		if err != nil {
			return nil, nil, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if cfg.Metrics.Enabled {
		mp, err := InitMeter(ctx, cfg.MeterConfig(service, version, env))
		if err != nil {
			_ = shutdown(ctx)
			return nil, nil, err
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	m, err := NewMetrics(Meter())
	if err != nil {
		_ = shutdown(ctx)
		return nil, nil, err
	}
	return m, shutdown, nil
}
