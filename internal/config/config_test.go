package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8008", cfg.Addr)
	require.Equal(t, time.Hour, cfg.VacuumInterval)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SIMPLECACHE_APP_NAME", "myapp")
	t.Setenv("SIMPLECACHE_VACUUM_INTERVAL", "2d")
	t.Setenv("SIMPLECACHE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "myapp", cfg.ApplicationName)
	require.Equal(t, 48*time.Hour, cfg.VacuumInterval)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, logger.Info, cfg.GormLogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SIMPLECACHE_VACUUM_INTERVAL", "soon")
	_, err := Load()
	require.Error(t, err)
}

func TestParseDuration_Off(t *testing.T) {
	d, err := ParseDuration("off")
	require.NoError(t, err)
	require.Zero(t, d)
}
