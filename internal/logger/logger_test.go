package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewUsesLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	if got := New().GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("expected warn, got %v", got)
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	for _, level := range []string{"", "chatty"} {
		t.Setenv("LOG_LEVEL", level)
		if got := New().GetLevel(); got != zerolog.InfoLevel {
			t.Fatalf("LOG_LEVEL=%q: expected info, got %v", level, got)
		}
	}
}

func TestNewReadsLevelFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=error\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	if got := New().GetLevel(); got != zerolog.ErrorLevel {
		t.Fatalf("expected error level from .env, got %v", got)
	}
}
