package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/classifier"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/repository/clickhouse"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockDecoder interface {
		Decode(ctx context.Context, height uint64) (*chain.DecodedBlock, error)
	}
	LedgerSource interface {
		BlockByHeight(ctx context.Context, height uint64) (*chain.LedgerBlock, error)
	}
	Classifier interface {
		Classify(block *chain.DecodedBlock) []classifier.Classified
	}
	Reconciler interface {
		Reconcile(block *chain.DecodedBlock, calls []classifier.Classified, ledger *chain.LedgerBlock) (model.BlockBundle, error)
	}
	HeadSource interface {
		LatestHeader(ctx context.Context) (*chain.Header, error)
		FinalizedHeader(ctx context.Context) (*chain.Header, error)
		SubscribeNewHeads(ctx context.Context) (chain.HeadSubscription, error)
		SubscribeFinalizedHeads(ctx context.Context) (chain.HeadSubscription, error)
	}
	Repository interface {
		WriteBlock(ctx context.Context, bundle model.BlockBundle, opts model.WriteOptions) error
		Checkpoint(ctx context.Context) (uint64, bool, error)
		MissingBlockHeights(ctx context.Context, limit uint64) ([]uint64, error)
		LedgerPendingHeights(ctx context.Context, limit uint64) ([]uint64, error)
	}
	MirrorRepository interface {
		InsertBlocks(ctx context.Context, blocks []clickhouse.MirrorBlock) error
		InsertTransactions(ctx context.Context, txs []clickhouse.MirrorTransaction) error
	}
	BlockMirror interface {
		Start(ctx context.Context)
		Stop()
		Add(ctx context.Context, bundle model.BlockBundle) error
	}
	Retrier interface {
		Do(ctx context.Context, operation string, fn func(context.Context) error) error
	}
	Metrics interface {
		ObserveFetchMissing(err error, started time.Time)
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint64, started time.Time)
		SetCheckpoint(height uint64)
		SetHead(kind string, height uint64)
		SetRetryQueue(size int)
		SetState(state string)
	}
)
