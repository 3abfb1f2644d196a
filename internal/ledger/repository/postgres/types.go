package postgres

import (
	"context"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/resolver"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, network model.Network, err error, started time.Time)
	}

	// Pool is the part of *pgxpool.Pool the repository depends on.
	Pool interface {
		Begin(ctx context.Context) (pgx.Tx, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Ping(ctx context.Context) error
		Close()
	}

	Row interface {
		Scan(dest ...any) error
	}

	InputResolver interface {
		Resolve(ctx context.Context, store resolver.Store, height uint64, txIndex map[string]uint32, inputs []model.TransactionInput) ([]model.TransactionInput, resolver.Stats, error)
	}

	AddressNormalizer interface {
		Normalize(addr string) (model.Address, error)
	}
)
