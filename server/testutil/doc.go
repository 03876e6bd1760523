// Package testutil runs the HTTP server behind httptest for integration
// tests of the REST mirror and the MCP endpoint.
package testutil
