package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

// MirrorBlock is a committed block as projected into ClickHouse.
type MirrorBlock struct {
	Block         model.Block
	LedgerPending bool
}

// InsertBlocks stores block rows in ClickHouse. Re-sent rows replace older ones.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []MirrorBlock) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", firstNetwork(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	const query = `
INSERT INTO midnight_blocks (
	network,
	height,
	hash,
	parent_hash,
	slot,
	timestamp,
	tx_count,
	finalized,
	protocol_version,
	author,
	ledger_pending
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, b := range blocks {
		if err = batch.Append(
			string(b.Block.Network),
			b.Block.Height,
			b.Block.Hash,
			b.Block.ParentHash,
			b.Block.Slot,
			b.Block.Timestamp,
			b.Block.TxCount,
			b.Block.Finalized,
			b.Block.ProtocolVersion,
			b.Block.Author,
			b.LedgerPending,
		); err != nil {
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}

func firstNetwork[T any](items []T) model.Network {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case MirrorBlock:
		return v.Block.Network
	case MirrorTransaction:
		return v.Network
	default:
		return ""
	}
}
