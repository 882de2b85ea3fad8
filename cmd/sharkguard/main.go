package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/gabapcia/sharkguard/internal/anomaly"
	"github.com/gabapcia/sharkguard/internal/config"
	"github.com/gabapcia/sharkguard/internal/guard"
	"github.com/gabapcia/sharkguard/internal/handlers/cli"
	"github.com/gabapcia/sharkguard/internal/infra/etherscan"
	"github.com/gabapcia/sharkguard/internal/infra/storage/file"
	"github.com/gabapcia/sharkguard/internal/infra/storage/redis"
	"github.com/gabapcia/sharkguard/internal/pkg/logger"
	"github.com/gabapcia/sharkguard/internal/pkg/resilience/retry"
	"github.com/gabapcia/sharkguard/internal/pkg/telemetry"
	"github.com/gabapcia/sharkguard/internal/pkg/validation"
	"github.com/gabapcia/sharkguard/internal/watchlist"
)

const serviceName = "sharkguard"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("initializing telemetry: %v", err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	validation.Init()

	model := anomaly.New(
		anomaly.WithSeed(cfg.ModelSeed),
		anomaly.WithThreshold(cfg.SuspicionThreshold),
	)

	source := newTransactionSource(cfg)
	modelStore := file.NewModelStore(cfg.ModelPath)
	datasetStore := file.NewDatasetStore(cfg.DatasetPath)

	guardOpts := []guard.Option{
		guard.WithModelStorage(modelStore),
		guard.WithRetry(retry.New()),
	}

	var watchlistStorage watchlist.Storage = watchlist.UnconfiguredStorage{}
	if cfg.RedisAddr != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal(ctx, "connecting to redis", "error", err)
		}
		defer redisClient.Close()

		watchlistStorage = redisClient
		guardOpts = append(guardOpts, guard.WithWatchlist(redisClient))
	}

	guardService := guard.New(source, model, guardOpts...)
	watchlistService := watchlist.New(watchlistStorage)

	// A missing artifact is fine on a fresh install; analysis commands will
	// report the unfitted model until one is trained.
	if err := guardService.RestoreModel(ctx); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn(ctx, "could not restore model artifact", "model.path", cfg.ModelPath, "error", err)
	}

	if err := cli.Run(ctx, guardService, watchlistService, datasetStore); err != nil {
		logger.Fatal(ctx, "command failed", "error", err)
	}
}

// newTransactionSource builds the explorer client from configuration. With
// no API key configured, analyses run over an empty history and rely on the
// heuristic layer alone.
func newTransactionSource(cfg config.Config) guard.TransactionSource {
	opts := make([]etherscan.Option, 0, 1)
	if cfg.EtherscanBaseURL != "" {
		opts = append(opts, etherscan.WithBaseURL(cfg.EtherscanBaseURL))
	}

	return etherscan.NewClient(cfg.EtherscanAPIKey, opts...)
}
