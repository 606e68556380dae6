package server

import (
	"context"
	"path/filepath"
	"testing"

	"simplecache/internal/cache"
	"simplecache/internal/config"

	"github.com/stretchr/testify/require"
)

func TestDatabasePath_Explicit(t *testing.T) {
	p, err := DatabasePath(config.Config{DatabasePath: "/tmp/x.db3"})
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.db3", p)
}

func TestDatabasePath_FromApplication(t *testing.T) {
	dir := t.TempDir()
	p, err := DatabasePath(config.Config{ApplicationName: "app", DataDir: dir})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "app", "SimpleCache", "cache.db3"), p)
}

func TestDatabasePath_NotConfigured(t *testing.T) {
	_, err := DatabasePath(config.Config{DataDir: t.TempDir()})
	require.ErrorIs(t, err, cache.ErrApplicationNotConfigured)
}

func TestOpenCache_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db3")
	c := OpenCache(config.Config{DatabasePath: path})
	ctx := context.Background()

	_, err := cache.Insert(ctx, c, "k", "v")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c = OpenCache(config.Config{DatabasePath: path})
	defer c.Close()
	v, err := cache.Get[string](ctx, c, "k")
	require.NoError(t, err)
	require.Equal(t, "v", v)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "cache.db3"),
		Addr:         "127.0.0.1:0",
		JWTSecret:    []byte("secret"),
	}
	require.NoError(t, Run(ctx, cfg, NewLogger(cfg)))
}
