package postgres

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
)

// Chain rows never overwrite ledger rows. Claim columns are owned by the resolver.
const upsertOutputQuery = `
INSERT INTO outputs (
	transaction_id, tx_hash, output_index, owner, token_type, value, shielded, commitment,
	intent_hash, initial_nonce, registered_for_dust, created_at, source
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (transaction_id, output_index) DO UPDATE SET
	owner = EXCLUDED.owner,
	token_type = EXCLUDED.token_type,
	value = EXCLUDED.value,
	shielded = EXCLUDED.shielded,
	commitment = EXCLUDED.commitment,
	intent_hash = EXCLUDED.intent_hash,
	initial_nonce = EXCLUDED.initial_nonce,
	registered_for_dust = EXCLUDED.registered_for_dust,
	created_at = EXCLUDED.created_at,
	source = EXCLUDED.source
WHERE outputs.source = 'chain' OR EXCLUDED.source = 'ledger'`

func upsertOutputs(ctx context.Context, tx pgx.Tx, outputs []model.TransactionOutput, rows txRows) error {
	batch := &pgx.Batch{}
	for _, o := range outputs {
		row, ok := rows[o.TxHash]
		if !ok {
			continue
		}
		batch.Queue(upsertOutputQuery,
			row.id,
			o.TxHash,
			int64(o.Index),
			nullText(o.Owner),
			o.TokenType,
			numeric(o.Value),
			o.Shielded,
			nullText(o.Commitment),
			nullText(o.IntentHash),
			nullText(o.InitialNonce),
			o.RegisteredForDust,
			o.CreatedAt.UTC(),
			string(o.Source),
		)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("upsert outputs: %w", err)
	}
	return nil
}
