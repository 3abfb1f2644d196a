// Package ingester drives block import: catch-up, live head handling and gap backfill.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"go.uber.org/zap"
)

// Result describes one committed height.
type Result struct {
	Height       uint64
	Hash         string
	Transactions int
	// LedgerPending is set when the block was committed from chain data only.
	LedgerPending bool
}

// fetched holds both views of one height before it is committed.
type fetched struct {
	height    uint64
	block     *chain.DecodedBlock
	ledger    *chain.LedgerBlock
	ledgerErr error
}

// Importer runs the decode, classify, reconcile and write path for single heights. Catch-up,
// live handlers and backfill all go through it.
type Importer struct {
	decoder    BlockDecoder
	ledger     LedgerSource
	classifier Classifier
	reconciler Reconciler
	repo       Repository
	mirror     BlockMirror
	metrics    Metrics
	logger     *zap.Logger
}

func NewImporter(
	decoder BlockDecoder,
	ledger LedgerSource,
	classifier Classifier,
	reconciler Reconciler,
	repo Repository,
	mirror BlockMirror,
	metrics Metrics,
	logger *zap.Logger,
) (*Importer, error) {
	if decoder == nil || classifier == nil || reconciler == nil || repo == nil {
		return nil, errors.New("decoder, classifier, reconciler and repository are required")
	}
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	return &Importer{
		decoder:    decoder,
		ledger:     ledger,
		classifier: classifier,
		reconciler: reconciler,
		repo:       repo,
		mirror:     mirror,
		metrics:    metrics,
		logger:     logger.Named("importer"),
	}, nil
}

// Import fetches both sources for height and commits the merged block.
func (i *Importer) Import(ctx context.Context, height uint64, opts model.WriteOptions) (Result, error) {
	started := time.Now()
	f, err := i.fetch(ctx, height)
	if err != nil {
		i.metrics.ObserveProcessHeight(err, height, started)
		return Result{Height: height}, err
	}
	return i.commit(ctx, f, opts)
}

// fetch reads the chain block and the ledger block concurrently. A ledger failure is kept on
// the result instead of failing the height.
func (i *Importer) fetch(ctx context.Context, height uint64) (*fetched, error) {
	f := &fetched{height: height}

	var wg sync.WaitGroup
	if i.ledger != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.ledger, f.ledgerErr = i.ledger.BlockByHeight(ctx, height)
		}()
	}

	block, err := i.decoder.Decode(ctx, height)
	wg.Wait()
	if err != nil {
		return nil, fmt.Errorf("decode block height %d: %w", height, err)
	}
	f.block = block

	if f.ledgerErr != nil {
		i.logger.Warn("ledger source failed, importing chain data only",
			zap.Uint64("height", height),
			zap.Error(f.ledgerErr),
		)
		f.ledger = nil
	}
	if f.ledger != nil && f.ledger.Hash != "" && f.ledger.Hash != block.Block.Hash {
		f.ledgerErr = fmt.Errorf("ledger block %s does not match chain block %s at height %d: %w",
			f.ledger.Hash, block.Block.Hash, height, chain.ErrLedgerUnavailable)
		i.logger.Warn("ledger source is on a different fork", zap.Uint64("height", height), zap.Error(f.ledgerErr))
		f.ledger = nil
	}
	return f, nil
}

func (i *Importer) commit(ctx context.Context, f *fetched, opts model.WriteOptions) (res Result, err error) {
	started := time.Now()
	defer func() {
		i.metrics.ObserveProcessHeight(err, f.height, started)
	}()

	res = Result{Height: f.height, Hash: f.block.Block.Hash}
	calls := i.classifier.Classify(f.block)
	bundle, err := i.reconciler.Reconcile(f.block, calls, f.ledger)
	if err != nil {
		return res, fmt.Errorf("reconcile block height %d: %w", f.height, err)
	}
	if opts.Finalized {
		bundle.Block.Finalized = true
	}
	if err = i.repo.WriteBlock(ctx, bundle, opts); err != nil {
		return res, fmt.Errorf("write block height %d: %w", f.height, err)
	}

	res.Transactions = len(bundle.Txs)
	res.LedgerPending = bundle.LedgerPending
	if opts.AdvanceCheckpoint {
		i.metrics.SetCheckpoint(f.height)
	}

	if i.mirror != nil {
		if mErr := i.mirror.Add(ctx, bundle); mErr != nil {
			i.logger.Warn("queue block for mirror failed", zap.Uint64("height", f.height), zap.Error(mErr))
		}
	}

	i.logger.Debug("block imported",
		zap.Uint64("height", f.height),
		zap.String("hash", res.Hash),
		zap.Int("transactions", res.Transactions),
		zap.Bool("ledger_pending", res.LedgerPending),
	)
	return res, nil
}
