package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corpclicker/internal/api"
	"corpclicker/internal/auth"
	"corpclicker/internal/config"
	"corpclicker/internal/db"
	"corpclicker/internal/session"
	"corpclicker/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	snaps := store.New(nil, logger)
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		snaps = store.New(pool, logger)
		if err := snaps.Init(ctx); err != nil {
			logger.Error("snapshot table init failed", "err", err)
			os.Exit(1)
		}
	} else {
		logger.Info("no DATABASE_URL, snapshots disabled")
	}

	var discord *auth.DiscordClient
	if cfg.DiscordConfigured() {
		discord = auth.NewDiscordClient(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURI)
	} else {
		logger.Info("discord identity not configured, sessions are anonymous")
	}

	sessions := session.NewManager(ctx, logger)
	server := api.New(cfg, logger, sessions, snaps, discord)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownTimeout := cfg.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("corpclicker api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
