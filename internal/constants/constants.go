package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MaxCompareAccounts  = 8
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

const (
	TrackerMaxConns     = 32
	TrackerIdleConnTTL  = 1 * time.Minute
	TrackerMaxBodyBytes = 4 << 20
)
