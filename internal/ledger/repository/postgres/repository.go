// Package postgres persists reconciled blocks into the relational store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/internal/retry"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MinConns        int32
	MaxConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns the pool settings used by the commands.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MinConns:        2,
		MaxConns:        16,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Connect opens a pool for dsn and pings it, retrying while the database is unreachable.
func Connect(ctx context.Context, dsn string, poolCfg PoolConfig, retrier *retry.Retrier, logger *zap.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MinConns = poolCfg.MinConns
	cfg.MaxConns = poolCfg.MaxConns
	cfg.MaxConnLifetime = poolCfg.ConnMaxLifetime
	cfg.MaxConnIdleTime = poolCfg.ConnMaxIdleTime

	var pool *pgxpool.Pool
	err = retrier.Do(ctx, "postgres_connect", func(ctx context.Context) error {
		p, openErr := pgxpool.NewWithConfig(ctx, cfg)
		if openErr != nil {
			return fmt.Errorf("create postgres pool: %w", openErr)
		}
		if pingErr := p.Ping(ctx); pingErr != nil {
			p.Close()
			return fmt.Errorf("ping postgres: %w", pingErr)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("postgres pool configured",
		zap.Int32("min_conns", cfg.MinConns),
		zap.Int32("max_conns", cfg.MaxConns),
	)
	return pool, nil
}

type Repository struct {
	pool      Pool
	network   model.Network
	resolver  InputResolver
	addresses AddressNormalizer
	metrics   Metrics
	logger    *zap.Logger
}

func NewRepository(
	pool Pool,
	network model.Network,
	resolver InputResolver,
	addresses AddressNormalizer,
	metrics Metrics,
	logger *zap.Logger,
) *Repository {
	return &Repository{
		pool:      pool,
		network:   network,
		resolver:  resolver,
		addresses: addresses,
		metrics:   metrics,
		logger:    logger.Named("postgres_repository"),
	}
}

// Close releases the pool.
func (r *Repository) Close() {
	r.pool.Close()
}
