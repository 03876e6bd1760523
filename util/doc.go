// Package util holds small helpers shared across packages.
package util
