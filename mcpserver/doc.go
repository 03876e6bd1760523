// Package mcpserver exposes the transcription pipeline as the MCP tool
// "transcribe", over streamable HTTP (mounted at /mcp on the HTTP server)
// or stdio.
//
// Successful calls return the result envelope as a JSON text block, with
// the same object attached as structured content. Failures return a tool
// result flagged isError whose text is the standard error body:
//
//	{"error":{"code":"NOT_FOUND","message":"File not found: /media/a.mp3","retryable":false}}
package mcpserver
