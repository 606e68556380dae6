package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"simplecache/internal/auth"
	"simplecache/internal/cache"
	"simplecache/internal/config"
	"simplecache/internal/database"
	"simplecache/internal/handlers"
	"simplecache/internal/platform"
	"simplecache/internal/realtime"
	"simplecache/internal/routes"
)

const shutdownTimeout = 5 * time.Second

// NewLogger returns a text logger at the configured level.
func NewLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// Locator returns the on-disk location described by cfg.
func Locator(cfg config.Config) platform.Locator {
	return platform.Locator{ApplicationName: cfg.ApplicationName, BaseDir: cfg.DataDir}
}

// DatabasePath resolves the database file, honouring an explicit path.
func DatabasePath(cfg config.Config) (string, error) {
	if cfg.DatabasePath != "" {
		return cfg.DatabasePath, nil
	}
	return Locator(cfg).DatabasePath()
}

// OpenCache builds the cache described by cfg. The database is opened on
// first use.
func OpenCache(cfg config.Config, opts ...cache.Option) *cache.SqliteObjectCache {
	dbOpts := database.Options{LogLevel: cfg.GormLogLevel()}
	if cfg.DatabasePath != "" {
		return cache.New(database.NewHandle(database.PathOpener(cfg.DatabasePath, dbOpts)), opts...)
	}
	return cache.NewForApplication(Locator(cfg), dbOpts, opts...)
}

// Run serves the admin API until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	hub := realtime.NewHub()
	publisher := realtime.NewPublisher(hub, realtime.DefaultPublishBuffer)
	go publisher.Run(ctx)
	c := OpenCache(cfg,
		cache.WithLogger(log),
		cache.WithListener(func(e cache.Event) { publisher.Publish(e) }),
	)
	defer func() {
		if err := c.Close(); err != nil {
			log.Error("failed to close cache", "error", err)
		}
	}()

	if cfg.AdminPasswordHash == "" {
		log.Warn("SIMPLECACHE_ADMIN_PASSWORD_HASH is not set, admin login is disabled")
	}
	h := &handlers.Handler{
		Cache:  c,
		Hub:    hub,
		Issuer: auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL),
		Credentials: auth.Credentials{
			Username:     cfg.AdminUser,
			PasswordHash: cfg.AdminPasswordHash,
		},
	}

	if cfg.VacuumInterval > 0 {
		go c.RunVacuum(ctx, cfg.VacuumInterval)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           routes.SetupRoutes(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
