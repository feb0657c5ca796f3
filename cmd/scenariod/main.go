// Command scenariod consumes raw rupture documents from Kafka and publishes
// one synthetic ShakeMap scenario per catalog event.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/quake-scenario-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-scenario-etl/internal/adapter/kafka"
	"github.com/couchcryptid/quake-scenario-etl/internal/config"
	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	"github.com/couchcryptid/quake-scenario-etl/internal/observability"
	"github.com/couchcryptid/quake-scenario-etl/internal/pipeline"
	"github.com/couchcryptid/quake-scenario-etl/internal/repository"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var region *domain.StableRegion
	if cfg.StableBoundaryFile != "" {
		region, err = domain.LoadStableRegion(cfg.StableBoundaryFile)
		if err != nil {
			logger.Error("failed to load stable boundary", "error", err, "path", cfg.StableBoundaryFile)
			os.Exit(1)
		}
		logger.Info("map extents enabled", "boundary", cfg.StableBoundaryFile)
	} else {
		logger.Info("map extents disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	var (
		loader  pipeline.BatchLoader = writer
		store   *repository.SQLiteDB
		catalog httpadapter.ScenarioCatalog
	)
	if cfg.ScenarioDBPath != "" {
		store, err = repository.NewSQLiteDB(cfg.ScenarioDBPath)
		if err != nil {
			logger.Error("failed to open scenario store", "error", err, "path", cfg.ScenarioDBPath)
			os.Exit(1)
		}
		storeLoader := repository.NewLoader(store)
		loader = pipeline.MultiLoader{writer, storeLoader}
		catalog = store
		logger.Info("scenario store enabled", "path", cfg.ScenarioDBPath, "run_id", storeLoader.RunID())
	}

	opts := cfg.Options()
	transformer := pipeline.NewTransformer(opts, region, metrics, logger)
	logger.Info("conversion options",
		"directivity", opts.Directivity.Enabled,
		"directivity_index", int(opts.Directivity.Index),
		"reference", opts.Reference,
	)

	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, catalog, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start conversion pipeline.
	go func() {
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
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("scenario store close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
