package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/pkg/workerpool"
	"go.uber.org/zap"
)

type catchUp struct {
	importer    *Importer
	heads       HeadSource
	repo        Repository
	queue       *retryQueue
	metrics     Metrics
	batchSize   int
	workerCount int
	startHeight uint64
	logger      *zap.Logger
}

// Run imports every height from the checkpoint to the finalized head and returns the last
// committed height. The finalized head is re-read after each batch.
func (c *catchUp) Run(ctx context.Context) (uint64, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		next, err := c.nextHeight(ctx)
		if err != nil {
			return 0, err
		}
		head, err := c.heads.FinalizedHeader(ctx)
		if err != nil {
			return 0, fmt.Errorf("finalized header: %w", err)
		}
		c.metrics.SetHead(headKindFinalized, head.Number)

		if next > head.Number {
			c.logger.Info("caught up", zap.Uint64("finalized", head.Number))
			if next == 0 {
				return 0, nil
			}
			return next - 1, nil
		}

		end := min(next+uint64(c.batchSize)-1, head.Number)
		heights := make([]uint64, 0, end-next+1)
		for h := next; h <= end; h++ {
			heights = append(heights, h)
		}
		c.logger.Info("processing batch",
			zap.Uint64("from", next),
			zap.Uint64("to", end),
			zap.Uint64("finalized", head.Number),
		)
		if err := c.processBatch(ctx, heights); err != nil {
			return 0, err
		}
	}
}

func (c *catchUp) nextHeight(ctx context.Context) (uint64, error) {
	checkpoint, ok, err := c.repo.Checkpoint(ctx)
	if err != nil {
		return 0, fmt.Errorf("read checkpoint: %w", err)
	}
	if !ok || checkpoint+1 < c.startHeight {
		return c.startHeight, nil
	}
	return checkpoint + 1, nil
}

// processBatch fetches heights concurrently and commits them strictly in height order, so the
// checkpoint never passes an uncommitted height.
func (c *catchUp) processBatch(ctx context.Context, heights []uint64) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveProcessBatch(err, len(heights), started)
	}()

	blocks, err := workerpool.Map(ctx, c.workerCount, heights, c.importer.fetch)
	if err != nil {
		return fmt.Errorf("fetch batch %d..%d: %w", heights[0], heights[len(heights)-1], err)
	}
	for _, f := range blocks {
		res, err := c.importer.commit(ctx, f, model.WriteOptions{AdvanceCheckpoint: true, Finalized: true})
		if err != nil {
			return err
		}
		if res.LedgerPending {
			c.queue.Add(res.Height)
		}
	}
	c.metrics.SetRetryQueue(c.queue.Len())
	return nil
}
