package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/midnight-indexer/internal/app"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/service/ingester"
	"github.com/goodnatureofminers/midnight-indexer/internal/logging"
	"github.com/goodnatureofminers/midnight-indexer/internal/status"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	app.Options

	BatchSize   int    `long:"batch-size" env:"MIDNIGHT_BATCH_SIZE" description:"heights fetched per catch-up batch" default:"50"`
	Workers     int    `long:"workers" env:"MIDNIGHT_WORKERS" description:"concurrent fetches per batch" default:"8"`
	StartHeight uint64 `long:"start-height" env:"MIDNIGHT_START_HEIGHT" description:"first height imported when no checkpoint exists" default:"0"`
	GapSchedule string `long:"gap-schedule" env:"MIDNIGHT_GAP_SCHEDULE" description:"cron schedule of the gap detector" default:"@every 5m"`
	GapLimit    uint64 `long:"gap-limit" env:"MIDNIGHT_GAP_LIMIT" description:"max heights repaired per gap detector run" default:"5000"`
}

func main() {
	cfg := config{}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("midnight ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	pipeline, err := app.Build(ctx, cfg.Options, logger)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	svc, err := ingester.NewService(ingester.Config{
		BatchSize:   cfg.BatchSize,
		WorkerCount: cfg.Workers,
		StartHeight: cfg.StartHeight,
		GapSchedule: cfg.GapSchedule,
		GapLimit:    cfg.GapLimit,
	}, pipeline.Importer, pipeline.Chain, pipeline.Repo, pipeline.Retrier, pipeline.Metrics, logger)
	if err != nil {
		return fmt.Errorf("init ingester: %w", err)
	}

	status.NewServer(svc, pipeline.Checks(), logger).Start(ctx, cfg.StatusAddr)

	logger.Info("starting ingester", zap.String("network", string(cfg.Node.Network)))
	return svc.Run(ctx)
}
