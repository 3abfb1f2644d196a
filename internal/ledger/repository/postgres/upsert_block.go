package postgres

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
)

const upsertBlockQuery = `
INSERT INTO blocks (
	height, hash, parent_hash, network, slot, timestamp, tx_count,
	finalized, protocol_version, author, raw, ledger_pending
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (height) DO UPDATE SET
	hash = EXCLUDED.hash,
	parent_hash = EXCLUDED.parent_hash,
	network = EXCLUDED.network,
	slot = EXCLUDED.slot,
	timestamp = EXCLUDED.timestamp,
	tx_count = EXCLUDED.tx_count,
	finalized = blocks.finalized OR EXCLUDED.finalized,
	protocol_version = COALESCE(EXCLUDED.protocol_version, blocks.protocol_version),
	author = COALESCE(EXCLUDED.author, blocks.author),
	raw = COALESCE(EXCLUDED.raw, blocks.raw),
	ledger_pending = blocks.ledger_pending AND EXCLUDED.ledger_pending,
	updated_at = now()`

func upsertBlock(ctx context.Context, tx pgx.Tx, block model.Block, ledgerPending bool) error {
	_, err := tx.Exec(ctx, upsertBlockQuery,
		block.Height,
		block.Hash,
		block.ParentHash,
		string(block.Network),
		block.Slot,
		block.Timestamp.UTC(),
		int64(block.TxCount),
		block.Finalized,
		nullUint32(block.ProtocolVersion),
		nullText(block.Author),
		nullBytes(block.Raw),
		ledgerPending,
	)
	if err != nil {
		return fmt.Errorf("upsert block %d: %w", block.Height, err)
	}
	return nil
}
