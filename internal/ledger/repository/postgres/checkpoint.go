package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// CheckpointKey names the row holding the last atomically imported height.
const CheckpointKey = "last_height"

const advanceCheckpointQuery = `
INSERT INTO checkpoints (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET
	value = GREATEST(checkpoints.value, EXCLUDED.value),
	updated_at = now()`

// Checkpoint returns the last committed height. ok is false when nothing was imported yet.
func (r *Repository) Checkpoint(ctx context.Context) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("checkpoint", r.network, err, start)
	}()

	err = r.pool.QueryRow(ctx, `SELECT value FROM checkpoints WHERE key = $1`, CheckpointKey).Scan(&height)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return 0, false, nil
	}
	if err != nil {
		err = fmt.Errorf("query checkpoint: %w", err)
		return 0, false, err
	}
	return height, true, nil
}

// AdvanceCheckpoint moves the cursor to height unless it is already further.
func (r *Repository) AdvanceCheckpoint(ctx context.Context, height uint64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("advance_checkpoint", r.network, err, start)
	}()

	if _, err = r.pool.Exec(ctx, advanceCheckpointQuery, CheckpointKey, height); err != nil {
		err = fmt.Errorf("advance checkpoint to %d: %w", height, err)
		return err
	}
	return nil
}

func advanceCheckpoint(ctx context.Context, tx pgx.Tx, height uint64) error {
	if _, err := tx.Exec(ctx, advanceCheckpointQuery, CheckpointKey, height); err != nil {
		return fmt.Errorf("advance checkpoint to %d: %w", height, err)
	}
	return nil
}
