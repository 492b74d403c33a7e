package config

import (
	"fmt"
	"os"
	"time"

	"rocketleague-tracker/internal/profile"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	TrackerURLTemplate string
	TrackerUserAgent   string
	TrackerTimeout     time.Duration
	DBPath             string
	ServerPort         string
	LogLevel           string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	timeout, err := time.ParseDuration(getEnv("TRACKER_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRACKER_TIMEOUT: %w", err)
	}

	cfg := &Config{
		TrackerURLTemplate: getEnv("TRACKER_BASE_URL", profile.DefaultURLTemplate),
		TrackerUserAgent:   getEnv("TRACKER_USER_AGENT", "Chrome/121"),
		TrackerTimeout:     timeout,
		DBPath:             getEnv("DB_PATH", "rocketleague.db"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if cfg.TrackerTimeout <= 0 {
		return nil, fmt.Errorf("TRACKER_TIMEOUT must be positive, got %s", cfg.TrackerTimeout)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	logger.Info().
		Str("tracker_url", cfg.TrackerURLTemplate).
		Dur("tracker_timeout", cfg.TrackerTimeout).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
