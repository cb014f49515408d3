package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"movieportal/infrastructure/config"
	"movieportal/infrastructure/di"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	w, cleanup, err := di.InitializeWorker(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize worker: %v", err)
	}
	defer cleanup()

	w.Logger.Info("Starting enrichment worker",
		zap.String("portal", cfg.Worker.PortalAPIURL),
		zap.Duration("poll_wait", cfg.Worker.PollWait),
	)

	if err := w.Consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.Logger.Error("Worker stopped", zap.Error(err))
		return
	}

	w.Logger.Info("Worker stopped")
}
