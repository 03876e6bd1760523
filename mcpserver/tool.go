package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kbukum/whisper-asr-mcp/transcription"
)

// ToolName is the MCP tool name.
const ToolName = "transcribe"

// Argument names.
const (
	ArgAudioPath    = "audio_path"
	ArgAudioURL     = "audio_url"
	ArgAudioBase64  = "audio_base64"
	ArgFilename     = "filename"
	ArgOutputFormat = "output_format"
)

var stringArgs = []string{ArgAudioPath, ArgAudioURL, ArgAudioBase64, ArgFilename, ArgOutputFormat}

// TranscribeTool returns the tool definition and input schema.
func TranscribeTool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Transcribe speech to text. Accepts any format ffmpeg can decode; "+
			"files that are not MP3 are converted first. The spoken language is detected automatically. "+
			"Provide exactly one of audio_path, audio_url or audio_base64."),
		mcp.WithTitleAnnotation("Transcribe audio"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString(ArgAudioPath,
			mcp.Description("Path of an audio file in the media store, e.g. /media/inbound/recording.m4a."),
		),
		mcp.WithString(ArgAudioURL,
			mcp.Description("http(s) URL to download the audio from."),
		),
		mcp.WithString(ArgAudioBase64,
			mcp.Description("Base64-encoded audio bytes. Requires filename."),
		),
		mcp.WithString(ArgFilename,
			mcp.Description("Original filename with extension. Used to detect the audio format; required with audio_base64."),
		),
		mcp.WithString(ArgOutputFormat,
			mcp.Description("Output format: text (default), json, srt, vtt or tsv."),
			mcp.Enum(transcription.FormatNames()...),
			mcp.DefaultString(string(transcription.FormatText)),
		),
	)
}
