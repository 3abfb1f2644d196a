package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/address"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/classifier"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/decoder"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/ledgerapi"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/reconciler"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/repository/clickhouse"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/repository/postgres"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/resolver"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/service/ingester"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/substrate"
	"github.com/goodnatureofminers/midnight-indexer/internal/metrics"
	"github.com/goodnatureofminers/midnight-indexer/internal/retry"
	"github.com/goodnatureofminers/midnight-indexer/internal/status"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pipeline holds every component of the import path, built from Options.
type Pipeline struct {
	Chain    *substrate.Client
	Pool     *pgxpool.Pool
	Repo     *postgres.Repository
	Importer *ingester.Importer
	Metrics  *metrics.Ingester
	Retrier  *retry.Retrier

	// mirror is nil unless a ClickHouse DSN is configured.
	mirror       *clickhouse.Repository
	mirrorWriter ingester.BlockMirror
	logger       *zap.Logger
}

// Build connects to the node, the ledger API and the stores, retrying while they are
// unreachable, and assembles the importer.
func Build(ctx context.Context, opts Options, logger *zap.Logger) (*Pipeline, error) {
	network := opts.Node.Network
	retrier := retry.New(retry.DefaultConfig(), logger)

	chainClient, err := ConnectChain(ctx, opts.Node, retrier, logger)
	if err != nil {
		return nil, err
	}

	ledgerClient, err := ledgerapi.New(ledgerapi.Config{
		URL:     opts.Ledger.URL,
		Timeout: opts.Ledger.Timeout,
		RPS:     opts.Ledger.RPS,
	}, network, metrics.NewLedgerAPI(), logger)
	if err != nil {
		return nil, fmt.Errorf("init ledger api client: %w", err)
	}

	pool, err := ConnectPostgres(ctx, opts.Store, retrier, logger)
	if err != nil {
		return nil, err
	}

	codec := address.NewCodec(network)
	repo := postgres.NewRepository(pool, network, resolver.New(logger.Named("resolver")), codec, metrics.NewPostgresRepository(), logger)

	p := &Pipeline{
		Chain:   chainClient,
		Pool:    pool,
		Repo:    repo,
		Metrics: metrics.NewIngester(network),
		Retrier: retrier,
		logger:  logger,
	}

	var mirror ingester.BlockMirror
	if opts.Store.ClickhouseDSN != "" {
		p.mirror, err = clickhouse.NewRepository(opts.Store.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		p.mirrorWriter = ingester.NewMirrorWriter(p.mirror, logger)
		mirror = p.mirrorWriter
	}

	p.Importer, err = ingester.NewImporter(
		decoder.New(chainClient, network, logger.Named("decoder")),
		ledgerClient,
		classifier.New(opts.Classifier.Config(), logger.Named("classifier")),
		reconciler.New(codec, logger.Named("reconciler")),
		repo,
		mirror,
		p.Metrics,
		logger,
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("init importer: %w", err)
	}
	return p, nil
}

// ConnectChain creates the node client and waits until the node answers.
func ConnectChain(ctx context.Context, opts NodeOptions, retrier *retry.Retrier, logger *zap.Logger) (*substrate.Client, error) {
	client, err := substrate.New(opts.Config(), opts.Network, metrics.NewChainRPC(), logger)
	if err != nil {
		return nil, fmt.Errorf("init node client: %w", err)
	}
	err = retrier.Do(ctx, "node_connect", func(ctx context.Context) error {
		_, hErr := client.LatestHeader(ctx)
		return hErr
	})
	if err != nil {
		return nil, fmt.Errorf("connect node: %w", err)
	}
	return client, nil
}

// ConnectPostgres opens the relational store pool.
func ConnectPostgres(ctx context.Context, opts StoreOptions, retrier *retry.Retrier, logger *zap.Logger) (*pgxpool.Pool, error) {
	if opts.PostgresDSN == "" {
		return nil, errors.New("postgres dsn is required")
	}
	poolCfg := postgres.DefaultPoolConfig()
	if opts.PostgresMaxConns > 0 {
		poolCfg.MaxConns = opts.PostgresMaxConns
	}
	pool, err := postgres.Connect(ctx, opts.PostgresDSN, poolCfg, retrier, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

// StartMirror starts the mirror writer for tools that use the importer directly. The returned
// func flushes and stops it.
func (p *Pipeline) StartMirror(ctx context.Context) func() {
	if p.mirrorWriter == nil {
		return func() {}
	}
	p.mirrorWriter.Start(ctx)
	return p.mirrorWriter.Stop
}

// Checks returns the dependencies the health endpoint checks.
func (p *Pipeline) Checks() map[string]status.Pinger {
	checks := map[string]status.Pinger{"postgres": p.Pool}
	if p.mirror != nil {
		checks["clickhouse"] = p.mirror
	}
	return checks
}

// Close releases the stores.
func (p *Pipeline) Close() {
	if p.mirror != nil {
		if err := p.mirror.Close(); err != nil {
			p.logger.Warn("close clickhouse", zap.Error(err))
		}
	}
	p.Pool.Close()
}
