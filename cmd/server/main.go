package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"simplecache/internal/config"
	"simplecache/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := server.NewLogger(cfg)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("API endpoints",
		"public", []string{"POST /api/login", "GET /health"},
		"protected", []string{
			"GET /api/keys",
			"GET /api/entries/:key",
			"GET /api/entries/:key/value",
			"PUT /api/entries/:key",
			"DELETE /api/entries/:key",
			"POST /api/created-at",
			"DELETE /api/types/:type",
			"POST /api/vacuum",
			"GET /api/ws",
		},
	)
	if err := server.Run(ctx, cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
