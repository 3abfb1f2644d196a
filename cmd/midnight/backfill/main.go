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
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/repository/postgres"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/service/ingester"
	"github.com/goodnatureofminers/midnight-indexer/internal/logging"
	"github.com/goodnatureofminers/midnight-indexer/internal/status"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	app.Options

	BatchSize uint64 `long:"batch-size" env:"MIDNIGHT_BACKFILL_BATCH_SIZE" description:"max heights repaired in this run" default:"1000"`
	Workers   int    `long:"workers" env:"MIDNIGHT_WORKERS" description:"concurrent imports" default:"8"`
	DryRun    bool   `long:"dry-run" env:"MIDNIGHT_BACKFILL_DRY_RUN" description:"only list the heights that would be repaired"`
	Advance   bool   `long:"advance-checkpoint" env:"MIDNIGHT_BACKFILL_ADVANCE_CHECKPOINT" description:"move the checkpoint to the top of the stored range once it has no holes"`
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

	failed, err := run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("backfill failed", zap.Error(err))
	}
	if len(failed) > 0 {
		logger.Error("backfill left heights unrepaired", zap.Uint64s("heights", failed))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) ([]uint64, error) {
	pipeline, err := app.Build(ctx, cfg.Options, logger)
	if err != nil {
		return nil, err
	}
	defer pipeline.Close()

	status.NewServer(nil, pipeline.Checks(), logger).Start(ctx, cfg.StatusAddr)
	stopMirror := pipeline.StartMirror(ctx)
	defer stopMirror()

	backfiller := ingester.NewBackfiller(pipeline.Importer, pipeline.Repo, pipeline.Metrics, cfg.Workers, logger)
	if cfg.DryRun {
		heights, err := backfiller.DetectHeights(ctx, cfg.BatchSize)
		if err != nil {
			return nil, err
		}
		for _, h := range heights {
			fmt.Println(h)
		}
		return nil, nil
	}

	report, err := backfiller.Run(ctx, cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	logger.Info("backfill finished",
		zap.Int("heights", len(report.Results)),
		zap.Int("failed", len(report.Failed())),
	)
	if cfg.Advance && len(report.Failed()) == 0 {
		if err := advanceCheckpoint(ctx, pipeline.Repo, logger); err != nil {
			return nil, err
		}
	}
	return report.Failed(), nil
}

func advanceCheckpoint(ctx context.Context, repo *postgres.Repository, logger *zap.Logger) error {
	stored, ok, err := repo.BlockRange(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if missing := stored.Max - stored.Min + 1 - stored.Count; missing > 0 {
		logger.Info("checkpoint left unchanged, stored range still has holes", zap.Uint64("missing", missing))
		return nil
	}
	if err := repo.AdvanceCheckpoint(ctx, stored.Max); err != nil {
		return err
	}
	logger.Info("checkpoint advanced", zap.Uint64("height", stored.Max))
	return nil
}
