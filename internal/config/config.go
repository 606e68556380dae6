package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
	"gorm.io/gorm/logger"
)

// Config holds the runtime settings of the cache server and CLI.
type Config struct {
	// ApplicationName scopes the on-disk cache location.
	ApplicationName string
	// DataDir overrides the per-user configuration directory.
	DataDir string
	// DatabasePath, when set, bypasses platform path resolution.
	DatabasePath string

	Addr           string
	VacuumInterval time.Duration
	LogLevel       slog.Level

	JWTSecret         []byte
	JWTIssuer         string
	JWTAudience       string
	TokenTTL          time.Duration
	AdminUser         string
	AdminPasswordHash string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		ApplicationName:   getEnv("SIMPLECACHE_APP_NAME", ""),
		DataDir:           getEnv("SIMPLECACHE_DATA_DIR", ""),
		DatabasePath:      getEnv("SIMPLECACHE_DB_PATH", ""),
		Addr:              getEnv("SIMPLECACHE_ADDR", ":8008"),
		JWTSecret:         []byte(getEnv("JWT_SECRET", "development-insecure-secret-change-me")),
		JWTIssuer:         getEnv("JWT_ISSUER", "simplecache"),
		JWTAudience:       getEnv("JWT_AUDIENCE", "simplecache-admin"),
		AdminUser:         getEnv("SIMPLECACHE_ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("SIMPLECACHE_ADMIN_PASSWORD_HASH", ""),
	}

	var err error
	if cfg.VacuumInterval, err = ParseDuration(getEnv("SIMPLECACHE_VACUUM_INTERVAL", "1h")); err != nil {
		return Config{}, fmt.Errorf("SIMPLECACHE_VACUUM_INTERVAL: %w", err)
	}
	if cfg.TokenTTL, err = ParseDuration(getEnv("JWT_TTL", "1d")); err != nil {
		return Config{}, fmt.Errorf("JWT_TTL: %w", err)
	}
	if cfg.LogLevel, err = ParseLevel(getEnv("SIMPLECACHE_LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("SIMPLECACHE_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// ParseDuration accepts Go durations plus day and week units ("1d", "2w").
// "0" and "off" disable the setting.
func ParseDuration(s string) (time.Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "off":
		return 0, nil
	}
	return str2duration.ParseDuration(s)
}

// ParseLevel converts trace/debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// GormLogLevel maps the configured level onto GORM's SQL logger. SQL is only
// logged at debug.
func (c Config) GormLogLevel() logger.LogLevel {
	switch {
	case c.LogLevel <= slog.LevelDebug:
		return logger.Info
	case c.LogLevel <= slog.LevelWarn:
		return logger.Warn
	default:
		return logger.Error
	}
}
