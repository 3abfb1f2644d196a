package postgres

import (
	"context"
	"fmt"
	"time"
)

// MissingBlockHeights returns up to limit heights inside [min stored height, max stored height]
// that have no block row, in ascending order.
func (r *Repository) MissingBlockHeights(ctx context.Context, limit uint64) (heights []uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("missing_block_heights", r.network, err, start)
	}()

	if limit == 0 {
		return nil, nil
	}

	const query = `
WITH bounds AS (
	SELECT min(height) AS lo, max(height) AS hi FROM blocks
)
SELECT g.h
FROM bounds, generate_series(bounds.lo, bounds.hi) AS g(h)
EXCEPT
SELECT height FROM blocks
ORDER BY 1
LIMIT $1`

	heights, err = r.queryHeights(ctx, query, limit)
	if err != nil {
		err = fmt.Errorf("query missing block heights: %w", err)
		return nil, err
	}
	return heights, nil
}

// LedgerPendingHeights returns up to limit stored heights still waiting for ledger data.
func (r *Repository) LedgerPendingHeights(ctx context.Context, limit uint64) (heights []uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("ledger_pending_heights", r.network, err, start)
	}()

	if limit == 0 {
		return nil, nil
	}

	const query = `SELECT height FROM blocks WHERE ledger_pending ORDER BY height LIMIT $1`

	heights, err = r.queryHeights(ctx, query, limit)
	if err != nil {
		err = fmt.Errorf("query ledger pending heights: %w", err)
		return nil, err
	}
	return heights, nil
}

func (r *Repository) queryHeights(ctx context.Context, query string, args ...any) ([]uint64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var heights []uint64
	for rows.Next() {
		var h uint64
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scan height: %w", err)
		}
		heights = append(heights, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heights: %w", err)
	}
	return heights, nil
}
