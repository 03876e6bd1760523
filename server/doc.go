// Package server hosts the HTTP side of the service: a gin engine for the
// REST mirror and probe endpoints, with the MCP streamable endpoint mounted
// beside it on the same mux. h2c lets HTTP/2 clients connect without TLS.
//
// Middleware (server/middleware) wraps the root mux, so the MCP endpoint
// gets the same recovery, request ids, CORS, body limits, rate limiting
// and request logs as the REST routes.
//
// Endpoints (server/endpoint): /health, /readyz, /livez, /info, /version
// and /metrics.
package server
