package postgres

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
)

const upsertInputQuery = `
INSERT INTO inputs (
	transaction_id, tx_hash, input_index, owner, token_type, value, shielded, commitment, nullifier,
	source, prev_tx_hash, prev_output_index, consumes_output_id, produced_by_tx_hash
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (transaction_id, input_index) DO UPDATE SET
	owner = EXCLUDED.owner,
	token_type = EXCLUDED.token_type,
	value = EXCLUDED.value,
	shielded = EXCLUDED.shielded,
	commitment = EXCLUDED.commitment,
	nullifier = EXCLUDED.nullifier,
	source = EXCLUDED.source,
	prev_tx_hash = EXCLUDED.prev_tx_hash,
	prev_output_index = EXCLUDED.prev_output_index,
	consumes_output_id = EXCLUDED.consumes_output_id,
	produced_by_tx_hash = EXCLUDED.produced_by_tx_hash
WHERE inputs.source = 'chain' OR EXCLUDED.source = 'ledger'`

func upsertInputs(ctx context.Context, tx pgx.Tx, inputs []model.TransactionInput, rows txRows) error {
	batch := &pgx.Batch{}
	for _, in := range inputs {
		row, ok := rows[in.TxHash]
		if !ok {
			continue
		}
		var (
			prevHash  *string
			prevIndex *int64
		)
		if in.Prev != nil {
			prevHash = &in.Prev.TxHash
			idx := int64(in.Prev.Index)
			prevIndex = &idx
		}
		batch.Queue(upsertInputQuery,
			row.id,
			in.TxHash,
			int64(in.Index),
			nullText(in.Owner),
			nullText(in.TokenType),
			numeric(in.Value),
			in.Shielded,
			nullText(in.Commitment),
			nullText(in.Nullifier),
			string(in.Source),
			prevHash,
			prevIndex,
			in.ConsumesOutputID,
			nullText(in.ProducedByTxHash),
		)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("upsert inputs: %w", err)
	}
	return nil
}
