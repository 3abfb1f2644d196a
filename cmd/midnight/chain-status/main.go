package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/midnight-indexer/internal/address"
	"github.com/goodnatureofminers/midnight-indexer/internal/app"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/repository/postgres"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/resolver"
	"github.com/goodnatureofminers/midnight-indexer/internal/logging"
	"github.com/goodnatureofminers/midnight-indexer/internal/metrics"
	"github.com/goodnatureofminers/midnight-indexer/internal/retry"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Logging logging.Options  `group:"Logging"`
	Node    app.NodeOptions  `group:"Chain node"`
	Store   app.StoreOptions `group:"Storage"`
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
		logger.Fatal("chain status failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	retrier := retry.New(retry.DefaultConfig(), logger)
	client, err := app.ConnectChain(ctx, cfg.Node, retrier, logger)
	if err != nil {
		return err
	}

	latest, err := client.LatestHeader(ctx)
	if err != nil {
		return fmt.Errorf("latest header: %w", err)
	}
	finalized, err := client.FinalizedHeader(ctx)
	if err != nil {
		return fmt.Errorf("finalized header: %w", err)
	}
	fmt.Printf("network\t%s\n", cfg.Node.Network)
	fmt.Printf("latest\t%d\t%s\n", latest.Number, latest.Hash)
	fmt.Printf("finalized\t%d\t%s\n", finalized.Number, finalized.Hash)

	if cfg.Store.PostgresDSN == "" {
		return nil
	}

	pool, err := app.ConnectPostgres(ctx, cfg.Store, retrier, logger)
	if err != nil {
		return err
	}
	repo := postgres.NewRepository(pool, cfg.Node.Network, resolver.New(logger), address.NewCodec(cfg.Node.Network), metrics.NewPostgresRepository(), logger)
	defer repo.Close()

	checkpoint, ok, err := repo.Checkpoint(ctx)
	if err != nil {
		return fmt.Errorf("read checkpoint: %w", err)
	}
	if !ok {
		fmt.Println("checkpoint\tnone")
	} else {
		lag := uint64(0)
		if finalized.Number > checkpoint {
			lag = finalized.Number - checkpoint
		}
		fmt.Printf("checkpoint\t%d\tbehind_finalized=%d\n", checkpoint, lag)
	}

	stored, ok, err := repo.BlockRange(ctx)
	if err != nil {
		return fmt.Errorf("read stored range: %w", err)
	}
	if !ok {
		fmt.Println("stored\tnone")
		return nil
	}
	fmt.Printf("stored\t%d..%d\tblocks=%d\tmissing=%d\n", stored.Min, stored.Max, stored.Count, stored.Max-stored.Min+1-stored.Count)
	return nil
}
