package ingester

import (
	"context"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/repository/clickhouse"
	"github.com/goodnatureofminers/midnight-indexer/pkg/batcher"
	"go.uber.org/zap"
)

// mirrorWriter projects committed blocks into the analytics store in batches.
type mirrorWriter struct {
	repo    MirrorRepository
	logger  *zap.Logger
	batcher *batcher.Batcher[model.BlockBundle]
}

// NewMirrorWriter returns a BlockMirror feeding repo. Mirror failures are logged and never
// affect the primary store.
func NewMirrorWriter(repo MirrorRepository, logger *zap.Logger) BlockMirror {
	w := &mirrorWriter{
		repo:   repo,
		logger: logger.Named("mirror"),
	}
	w.batcher = batcher.New[model.BlockBundle](w.logger, w.flush, batcher.Config{
		Size:     mirrorBatchSize,
		Interval: mirrorFlushInterval,
		RPS:      mirrorFlushRPS,
	})
	return w
}

func (w *mirrorWriter) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

func (w *mirrorWriter) Stop() {
	w.batcher.Stop()
}

func (w *mirrorWriter) Add(ctx context.Context, bundle model.BlockBundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.batcher.Add(ctx, bundle)
}

func (w *mirrorWriter) flush(ctx context.Context, bundles []model.BlockBundle) error {
	blocks := make([]clickhouse.MirrorBlock, 0, len(bundles))
	var txs []clickhouse.MirrorTransaction
	for _, b := range bundles {
		blocks = append(blocks, clickhouse.MirrorBlock{Block: b.Block, LedgerPending: b.LedgerPending})
		for _, tx := range b.Txs {
			txs = append(txs, clickhouse.MirrorTransaction{Network: b.Block.Network, Transaction: tx})
		}
	}

	if err := w.repo.InsertTransactions(ctx, txs); err != nil {
		return err
	}
	w.logger.Debug("mirrored transactions", zap.Int("count", len(txs)))
	return w.repo.InsertBlocks(ctx, blocks)
}
