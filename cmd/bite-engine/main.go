package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/couchcryptid/bite-score-engine/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/bite-score-engine/internal/adapter/kafka"
	"github.com/couchcryptid/bite-score-engine/internal/config"
	"github.com/couchcryptid/bite-score-engine/internal/observability"
	"github.com/couchcryptid/bite-score-engine/internal/pipeline"
	"github.com/couchcryptid/bite-score-engine/internal/profile"
	"github.com/couchcryptid/bite-score-engine/internal/scoring"
	"github.com/couchcryptid/bite-score-engine/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	tunables, err := profile.LoadTunables(cfg.TunablesPath)
	if err != nil {
		logger.Error("failed to load tunables", "path", cfg.TunablesPath, "error", err)
		os.Exit(1)
	}
	if cfg.TunablesPath != "" {
		logger.Info("tunables loaded", "path", cfg.TunablesPath)
	}

	engine := scoring.New(profile.DefaultRegistry(), tunables, logger)
	snapshots := store.NewSnapshotStore(cfg.SnapshotCacheSize)
	events := store.NewEventStore(cfg.EventHorizon)

	snapshotReader := kafkaadapter.NewSnapshotReader(cfg, logger)
	eventReader := kafkaadapter.NewEventReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	transformer := pipeline.NewTransformer(engine, snapshots, events, metrics, logger)
	p := pipeline.New(snapshotReader, transformer, writer, logger, metrics, cfg.BatchSize)
	ingester := pipeline.NewIngester(eventReader, events, snapshots, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, tunables, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)

	// Start event ingestion.
	go func() {
		defer wg.Done()
		if err := ingester.Run(ctx); err != nil {
			logger.Error("ingester error", "error", err)
		}
	}()

	// Start forecast pipeline.
	go func() {
		defer wg.Done()
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("loops did not stop before shutdown timeout")
	}

	if err := snapshotReader.Close(); err != nil {
		logger.Error("snapshot reader close error", "error", err)
	}
	if err := eventReader.Close(); err != nil {
		logger.Error("event reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
