package ingester

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/pkg/workerpool"
	"go.uber.org/zap"
)

// HeightResult is the outcome of importing one explicitly selected height.
type HeightResult struct {
	Result
	Err error
}

// Report lists per-height outcomes of a backfill or explicit import, in height order.
type Report struct {
	Results []HeightResult
}

// Failed returns the heights that could not be imported.
func (r Report) Failed() []uint64 {
	var out []uint64
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res.Height)
		}
	}
	return out
}

// Backfiller repairs holes in the stored height range and re-imports heights committed
// without ledger data. It uses the same Importer as catch-up.
type Backfiller struct {
	importer    *Importer
	repo        Repository
	metrics     Metrics
	workerCount int
	logger      *zap.Logger
}

func NewBackfiller(importer *Importer, repo Repository, metrics Metrics, workerCount int, logger *zap.Logger) *Backfiller {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &Backfiller{
		importer:    importer,
		repo:        repo,
		metrics:     metrics,
		workerCount: workerCount,
		logger:      logger.Named("backfill"),
	}
}

// DetectHeights returns the missing and ledger-pending heights, ascending and without duplicates.
func (b *Backfiller) DetectHeights(ctx context.Context, limit uint64) (heights []uint64, err error) {
	started := time.Now()
	defer func() {
		b.metrics.ObserveFetchMissing(err, started)
	}()

	missing, err := b.repo.MissingBlockHeights(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("detect missing heights: %w", err)
	}
	pending, err := b.repo.LedgerPendingHeights(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("detect ledger pending heights: %w", err)
	}

	heights = append(missing, pending...)
	slices.Sort(heights)
	heights = slices.Compact(heights)
	if limit > 0 && uint64(len(heights)) > limit {
		heights = heights[:limit]
	}
	return heights, nil
}

// Run detects at most limit heights and imports them.
func (b *Backfiller) Run(ctx context.Context, limit uint64) (Report, error) {
	heights, err := b.DetectHeights(ctx, limit)
	if err != nil {
		return Report{}, err
	}
	if len(heights) == 0 {
		b.logger.Debug("no missing heights")
		return Report{}, nil
	}
	b.logger.Info("backfilling heights", zap.Int("count", len(heights)), zap.Uint64("first", heights[0]))
	return b.ImportHeights(ctx, heights)
}

// ImportHeights imports each height independently; one failure does not stop the others.
// The checkpoint is left untouched.
func (b *Backfiller) ImportHeights(ctx context.Context, heights []uint64) (report Report, err error) {
	started := time.Now()
	defer func() {
		var batchErr error
		if len(report.Failed()) > 0 {
			batchErr = fmt.Errorf("%d heights failed", len(report.Failed()))
		}
		b.metrics.ObserveProcessBatch(batchErr, len(heights), started)
	}()

	// the checkpoint only advances on final blocks, so anything at or below it is final too
	checkpoint, hasCheckpoint, err := b.repo.Checkpoint(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load checkpoint: %w", err)
	}

	results, err := workerpool.Map(ctx, b.workerCount, heights, func(ctx context.Context, height uint64) (HeightResult, error) {
		opts := model.WriteOptions{Finalized: hasCheckpoint && height <= checkpoint}
		res, err := b.importer.Import(ctx, height, opts)
		if err != nil {
			b.logger.Warn("import height failed", zap.Uint64("height", height), zap.Error(err))
		}
		res.Height = height
		return HeightResult{Result: res, Err: err}, nil
	})
	if err != nil {
		return Report{}, err
	}
	return Report{Results: results}, nil
}
