// Command whisper-mcp serves the "transcribe" MCP tool over streamable
// HTTP (default) or stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kbukum/whisper-asr-mcp/audio"
	"github.com/kbukum/whisper-asr-mcp/bootstrap"
	"github.com/kbukum/whisper-asr-mcp/component"
	"github.com/kbukum/whisper-asr-mcp/conversion"
	"github.com/kbukum/whisper-asr-mcp/conversion/ffmpeg"
	"github.com/kbukum/whisper-asr-mcp/httpclient"
	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/mcpserver"
	"github.com/kbukum/whisper-asr-mcp/observability"
	"github.com/kbukum/whisper-asr-mcp/provider"
	"github.com/kbukum/whisper-asr-mcp/server"
	"github.com/kbukum/whisper-asr-mcp/server/endpoint"
	"github.com/kbukum/whisper-asr-mcp/storage"
	_ "github.com/kbukum/whisper-asr-mcp/storage/local"
	_ "github.com/kbukum/whisper-asr-mcp/storage/s3"
	"github.com/kbukum/whisper-asr-mcp/transcribe"
	"github.com/kbukum/whisper-asr-mcp/transcription"
	"github.com/kbukum/whisper-asr-mcp/transcription/whisper"
	"github.com/kbukum/whisper-asr-mcp/version"
)

// componentLoggers are the named loggers handed to each pipeline part.
var componentLoggers = []string{"media", "asr", "conversion", "transcription", "resolver", "gate", "transcribe", "mcp"}

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	stdio := flag.Bool("stdio", false, "serve MCP over stdin/stdout instead of HTTP")
	flag.Parse()

	if err := run(context.Background(), *configPath, *stdio); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, stdio bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Short()
	}

	var opts []bootstrap.Option
	if stdio {
		// stdout carries the protocol.
		opts = append(opts, bootstrap.WithSummaryWriter(os.Stderr))
	}
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return err
	}

	logger.RegisterDefaults(componentLoggers...)

	metrics, shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	app.OnStop(shutdownTelemetry)

	svc, err := wire(app, metrics)
	if err != nil {
		return err
	}
	mcp := mcpserver.New(svc, cfg.Version, mcpserver.WithLogger(logger.Get("mcp")))
	app.Summary.TrackTool(mcpserver.ToolName, strings.Join(transcription.FormatNames(), ", "))

	if stdio {
		return app.RunTask(ctx, func(ctx context.Context) error {
			return mcpserver.ServeStdio(ctx, mcp, os.Stdin, os.Stdout)
		})
	}

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyMiddleware()
	srv.Handle(mcpserver.EndpointPath, mcpserver.HTTPHandler(mcp))
	transcribe.RegisterRoutes(srv.GinEngine(), svc)
	srv.RegisterDefaultEndpoints(cfg.Name, server.Endpoints{
		Checker: app.Components.HealthAll,
		Tools:   []endpoint.ToolInfo{{Name: mcpserver.ToolName, Formats: transcription.FormatNames()}},
		Gauges:  map[string]endpoint.Gauge{"transcriptions_in_flight": svc.InFlight},
	})
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}
	return app.Run(ctx)
}

// wire builds the pipeline and registers its infrastructure components:
// the media store and one health component per backend.
func wire(app *bootstrap.App[*AppConfig], metrics *observability.Metrics) (*transcribe.Service, error) {
	cfg := app.Cfg

	store := storage.NewComponent(cfg.Media, logger.Get("media"))

	converterClient, err := ffmpeg.New(cfg.Conversion)
	if err != nil {
		return nil, fmt.Errorf("conversion backend: %w", err)
	}
	asrClient, err := whisper.New(cfg.Transcription, logger.Get("asr"))
	if err != nil {
		return nil, fmt.Errorf("transcription backend: %w", err)
	}

	for _, c := range []component.Component{
		store,
		httpclient.NewComponent(converterClient.Adapter(), "converter"),
		httpclient.NewComponent(asrClient.Adapter(), "asr"),
	} {
		if err := app.RegisterComponent(c); err != nil {
			return nil, err
		}
	}

	converter := provider.Chain(
		provider.WithLogging[conversion.Request, *conversion.Result](logger.Get("conversion")),
		provider.WithTracing[conversion.Request, *conversion.Result](observability.SpanConvert),
		provider.WithMetrics[conversion.Request, *conversion.Result](metrics),
	)(converterClient)

	asr := provider.Chain(
		provider.WithLogging[transcription.Request, *transcription.Response](logger.Get("transcription")),
		provider.WithTracing[transcription.Request, *transcription.Response](observability.SpanASR),
		provider.WithMetrics[transcription.Request, *transcription.Response](metrics),
	)(asrClient)

	resolver, err := audio.NewResolver(store, cfg.Media.MaxBytes(), cfg.Fetch, logger.Get("resolver"))
	if err != nil {
		return nil, fmt.Errorf("audio resolver: %w", err)
	}
	app.OnStop(resolver.Close)

	gate := audio.NewGate(cfg.Pipeline.NativeFormat, cfg.Pipeline.VerifyNative, converter, logger.Get("gate"))

	return transcribe.NewService(cfg.Pipeline, resolver, gate, asr,
		transcribe.WithLogger(logger.Get("transcribe")),
		transcribe.WithMetrics(metrics),
	), nil
}
