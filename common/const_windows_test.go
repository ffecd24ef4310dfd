//go:build windows

package common

import "testing"

func TestDefaultPipePath(t *testing.T) {
	want := `\\.\pipe\nodoff`
	if got := DefaultPipePath(); got != want {
		t.Errorf("DefaultPipePath() = %q, want %q", got, want)
	}
}

func TestPipePath_Default(t *testing.T) {
	t.Setenv(PipeNameEnv, "")
	if got := PipePath(); got != DefaultPipePath() {
		t.Errorf("PipePath() = %q, want default %q", got, DefaultPipePath())
	}
}

func TestPipePath_CustomName(t *testing.T) {
	customName := "custom-nodoff"
	t.Setenv(PipeNameEnv, customName)
	want := `\\.\pipe\` + customName
	if got := PipePath(); got != want {
		t.Errorf("PipePath() = %q, want %q", got, want)
	}
}

func TestPipePath_FullPath(t *testing.T) {
	fullPath := `\\.\pipe\already-prefixed`
	t.Setenv(PipeNameEnv, fullPath)
	if got := PipePath(); got != fullPath {
		t.Errorf("PipePath() = %q, want %q", got, fullPath)
	}
}
