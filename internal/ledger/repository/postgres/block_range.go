package postgres

import (
	"context"
	"fmt"
	"time"
)

// BlockRange summarizes the stored heights.
type BlockRange struct {
	Min   uint64
	Max   uint64
	Count uint64
}

// BlockRange returns the stored height bounds. ok is false when no block is stored.
func (r *Repository) BlockRange(ctx context.Context) (br BlockRange, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_range", r.network, err, start)
	}()

	var (
		lo, hi *uint64
		count  uint64
	)
	err = r.pool.QueryRow(ctx, `SELECT min(height), max(height), count(*) FROM blocks`).Scan(&lo, &hi, &count)
	if err != nil {
		err = fmt.Errorf("query block range: %w", err)
		return BlockRange{}, false, err
	}
	if lo == nil || hi == nil {
		return BlockRange{}, false, nil
	}
	return BlockRange{Min: *lo, Max: *hi, Count: count}, true, nil
}
