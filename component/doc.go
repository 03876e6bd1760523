// Package component defines the lifecycle contract shared by the HTTP
// server, the backend clients and the media store, and a Registry that
// starts them in order, stops them in reverse and aggregates their health.
package component
