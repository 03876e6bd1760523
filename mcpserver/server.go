package mcpserver

import (
	"context"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kbukum/whisper-asr-mcp/logger"
)

// EndpointPath is where the streamable HTTP transport is mounted.
const EndpointPath = "/mcp"

// ServerName is reported to clients during initialization.
const ServerName = "Whisper ASR"

// Option configures New.
type Option func(*options)

type options struct {
	log *logger.Logger
}

// WithLogger sets the logger for tool failures and transport errors.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// New builds the MCP server with the transcribe tool registered.
func New(svc Transcriber, version string, opts ...Option) *server.MCPServer {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}

	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithInstructions(Instructions),
		server.WithRecovery(),
	)
	h := &toolHandler{svc: svc, log: o.log.WithComponent("mcp")}
	s.AddTool(TranscribeTool(), h.handle)
	return s
}

// HTTPHandler returns the stateless streamable HTTP transport for s,
// serving EndpointPath.
func HTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithEndpointPath(EndpointPath),
		server.WithStateLess(true),
	)
}

// ServeStdio serves s over in and out until ctx is canceled or in is
// closed.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}
