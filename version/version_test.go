package version

import (
	"strings"
	"testing"
)

func restore() func() {
	v, c, b := Version, GitCommit, BuildTime
	return func() { Version, GitCommit, BuildTime = v, c, b }
}

func TestGet_UsesLdflags(t *testing.T) {
	defer restore()()
	Version = "1.2.0"
	GitCommit = "abcdef1234567"
	BuildTime = "2026-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.2.0" {
		t.Errorf("expected 1.2.0, got %q", info.Version)
	}
	if info.GitCommit != "abcdef1" {
		t.Errorf("expected commit truncated to 7 chars, got %q", info.GitCommit)
	}
	if info.BuildTime != "2026-01-15T10:30:00Z" {
		t.Errorf("unexpected build time %q", info.BuildTime)
	}
}

func TestShort(t *testing.T) {
	defer restore()()
	Version = "1.2.0"
	GitCommit = "abc1234"

	if got := Short(); !strings.HasPrefix(got, "1.2.0-abc1234") {
		t.Errorf("unexpected short version %q", got)
	}
}
