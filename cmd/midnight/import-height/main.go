package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
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

	Heights []uint64 `long:"height" env:"MIDNIGHT_HEIGHTS" env-delim:"," description:"height to re-import (repeatable)" required:"true"`
	Workers int      `long:"workers" env:"MIDNIGHT_WORKERS" description:"concurrent imports" default:"4"`
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
		logger.Fatal("import heights failed", zap.Error(err))
	}
	if len(failed) > 0 {
		logger.Error("some heights were not imported", zap.Uint64s("heights", failed))
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

	heights := slices.Clone(cfg.Heights)
	slices.Sort(heights)
	heights = slices.Compact(heights)

	backfiller := ingester.NewBackfiller(pipeline.Importer, pipeline.Repo, pipeline.Metrics, cfg.Workers, logger)
	report, err := backfiller.ImportHeights(ctx, heights)
	if err != nil {
		return nil, err
	}
	for _, res := range report.Results {
		printResult(res)
	}
	return report.Failed(), nil
}

func printResult(res ingester.HeightResult) {
	switch {
	case res.Err != nil:
		fmt.Printf("%d\tfailed\t%v\n", res.Height, res.Err)
	case res.LedgerPending:
		fmt.Printf("%d\tledger-pending\t%s\ttxs=%d\n", res.Height, res.Hash, res.Transactions)
	default:
		fmt.Printf("%d\tok\t%s\ttxs=%d\n", res.Height, res.Hash, res.Transactions)
	}
}
