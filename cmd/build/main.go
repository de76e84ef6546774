package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/boundary-tiler/internal/boundary"
	"github.com/boundary-tiler/internal/config"
	"github.com/boundary-tiler/internal/domain/repository"
	"github.com/boundary-tiler/internal/naturalearth"
	"github.com/boundary-tiler/internal/osmreader"
	"github.com/boundary-tiler/internal/pkg/logger"
	"github.com/boundary-tiler/internal/repository/cache"
	"github.com/boundary-tiler/internal/repository/postgres"
	"github.com/boundary-tiler/internal/repository/stream"
	"github.com/boundary-tiler/internal/tile"
	"github.com/boundary-tiler/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Boundary Tiler build")

	if err := cfg.ValidateBuild(); err != nil {
		log.Fatal("Invalid build configuration", zap.Error(err))
	}

	log.Info("Configuration loaded",
		zap.String("input", cfg.Build.InputPath),
		zap.String("output_dir", cfg.Build.OutputDir),
		zap.Int("workers", cfg.Build.Workers),
		zap.Bool("country_names", cfg.Build.CountryNames),
		zap.Bool("natural_earth", cfg.NaturalEarth.Enabled))

	// 3. Tile sink
	writer := tile.NewWriter(cfg.Build.OutputDir, log)

	// 4. Boundary layer and OSM reader
	layer := boundary.NewLayer(cfg.Build.CountryNames, writer, log)
	reader := osmreader.New(cfg.Build.InputPath, cfg.Build.Workers, log)

	// 5. Optional Natural Earth source (PostgreSQL)
	var neSource *naturalearth.Source
	if cfg.NaturalEarth.Enabled {
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()

		neRepo := postgres.NewNaturalEarthRepository(db)
		neSource = naturalearth.NewSource(neRepo, writer, log)
	}

	// 6. Optional progress stream (Redis)
	var progress repository.ProgressPublisher
	if cfg.Stream.Enabled && cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		progress = stream.NewProgressRepository(redisClient.Client(), cfg.Stream.Name, log)
	}

	// 7. Build use case
	buildUC := usecase.NewBuildUseCase(layer, reader, writer, neSource, progress, log)

	// 8. Cancel on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, cancelling build")
		cancel()
	}()

	// 9. Run the pipeline
	stats, err := buildUC.Run(ctx)
	if err != nil {
		log.Fatal("Build failed", zap.String("run_id", buildUC.RunID()), zap.Error(err))
	}

	log.Info("Build complete",
		zap.String("run_id", stats.RunID),
		zap.Int64("relations", stats.Relations),
		zap.Int64("ways", stats.Ways),
		zap.Int64("features", stats.Features),
		zap.Int64("tiles", stats.TilesWritten),
		zap.Duration("duration", stats.Duration))
}
