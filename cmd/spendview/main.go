package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spendview/internal/amqp"
	"spendview/internal/config"
	httpserver "spendview/internal/http"
	"spendview/internal/mockextract"
	"spendview/internal/records"
	"spendview/internal/records/memory"
	"spendview/internal/records/sqlite"
	"spendview/internal/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var notifier services.Notifier
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("connecting to amqp: %w", err)
		}
		defer client.Close()
		notifier = client
		slog.Info("AMQP notifications enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	gen := mockextract.New(cfg.MockSeed, nil)
	uploads := services.NewUploadService(store, gen, notifier, cfg.MaxUploadBytes, cfg.ProcessingDelay)

	workersDone := make(chan error, 1)
	go func() {
		workersDone <- uploads.Run(ctx, cfg.ProcessWorkers)
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := httpserver.NewServer(addr, store, uploads)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", addr, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-workersDone; err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("Upload workers exited with error", "error", err)
	}
	slog.Info("Server stopped")
	return nil
}

func buildStore(cfg *config.Config) (records.Store, func(), error) {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		slog.Info("Using sqlite backend", "path", cfg.SQLiteDBPath)
		return repo, func() { _ = repo.Close() }, nil
	default:
		slog.Info("Using in-memory backend")
		return memory.New(), func() {}, nil
	}
}
