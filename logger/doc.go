// Package logger provides zerolog-backed structured logging with
// component-scoped loggers.
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// Logs default to stderr so the stdio MCP transport keeps stdout clean.
package logger
