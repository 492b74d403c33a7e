package config

import (
	"testing"
	"time"

	"rocketleague-tracker/internal/profile"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"TRACKER_BASE_URL", "TRACKER_USER_AGENT", "TRACKER_TIMEOUT", "DB_PATH", "SERVER_PORT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TrackerURLTemplate != profile.DefaultURLTemplate {
		t.Fatalf("unexpected template %q", cfg.TrackerURLTemplate)
	}
	if cfg.TrackerUserAgent != "Chrome/121" || cfg.TrackerTimeout != 5*time.Second {
		t.Fatalf("unexpected tracker settings %+v", cfg)
	}
	if cfg.DBPath != "rocketleague.db" || cfg.ServerPort != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRACKER_BASE_URL", "http://localhost:9999/{PLATFORM}/{USERNAME}")
	t.Setenv("TRACKER_TIMEOUT", "750ms")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TrackerTimeout != 750*time.Millisecond || cfg.ServerPort != "9090" || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"TRACKER_TIMEOUT": "soon",
		"LOG_LEVEL":       "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(zerolog.Nop()); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("TRACKER_TIMEOUT", "0s")
	if _, err := Load(zerolog.Nop()); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
