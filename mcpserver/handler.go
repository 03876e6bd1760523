package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/logger"
	"github.com/kbukum/whisper-asr-mcp/transcribe"
)

// Transcriber runs one transcription. *transcribe.Service implements it.
type Transcriber interface {
	Transcribe(ctx context.Context, args transcribe.Args) (*transcribe.Result, error)
}

type toolHandler struct {
	svc Transcriber
	log *logger.Logger
}

func (h *toolHandler) handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return h.errorResult(ctx, err), nil
	}

	res, err := h.svc.Transcribe(ctx, args)
	if err != nil {
		return h.errorResult(ctx, err), nil
	}

	body, err := json.Marshal(res)
	if err != nil {
		return h.errorResult(ctx, apperrors.Internal(err)), nil
	}
	return mcp.NewToolResultStructured(res, string(body)), nil
}

func parseArgs(req mcp.CallToolRequest) (transcribe.Args, error) {
	raw := req.GetArguments()
	for _, name := range stringArgs {
		v, ok := raw[name]
		if !ok || v == nil {
			continue
		}
		if _, isString := v.(string); !isString {
			return transcribe.Args{}, apperrors.InvalidInput(name, fmt.Sprintf("%s must be a string", name))
		}
	}
	return transcribe.Args{
		AudioPath:    req.GetString(ArgAudioPath, ""),
		AudioURL:     req.GetString(ArgAudioURL, ""),
		AudioBase64:  req.GetString(ArgAudioBase64, ""),
		Filename:     req.GetString(ArgFilename, ""),
		OutputFormat: req.GetString(ArgOutputFormat, ""),
	}, nil
}

// errorResult renders err as an isError tool result holding the standard
// error body.
func (h *toolHandler) errorResult(ctx context.Context, err error) *mcp.CallToolResult {
	appErr := apperrors.From(err)
	body, mErr := json.Marshal(appErr.ToResponse())
	if mErr != nil {
		body = []byte(fmt.Sprintf(`{"error":{"code":%q,"message":%q}}`, appErr.Code, appErr.Message))
	}
	h.log.WithContext(ctx).Debug("Tool call failed", map[string]interface{}{
		"tool":            ToolName,
		"code":            string(appErr.Code),
		logger.FieldError: appErr.Error(),
	})
	return mcp.NewToolResultError(string(body))
}
