// Package testutil provides an in-memory media store for pipeline tests.
package testutil
