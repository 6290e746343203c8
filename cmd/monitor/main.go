package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"redflag-lab/internal/config"
	"redflag-lab/internal/domain/services/alerts"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/internal/monitor"
	"redflag-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	log = log.WithComponent("monitor-worker")
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting red flag monitor worker")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build the detection pipeline
	catalog, err := detection.NewCatalog(detection.DefaultCategories())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build rule catalog")
	}
	store := alerts.NewStore(cfg.Detection.AlertCapacity)
	detector := detection.NewService(log, catalog, store, nil)

	source := monitor.NewSimulatedSource()
	mon := monitor.New(log, source, detector, cfg.Monitor.PollInterval)

	// Run until signalled
	errCh := make(chan error, 1)
	go func() {
		errCh <- mon.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("shutting down...")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("monitor stopped with error")
		}
	}

	stats := detector.Stats()
	log.Info().
		Int64("messages_scanned", stats.MessagesScanned).
		Int64("alerts", stats.TotalAlerts).
		Msg("shutdown complete")
}
