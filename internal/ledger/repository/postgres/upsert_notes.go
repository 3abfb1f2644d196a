package postgres

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
)

// Note status is never touched here; only SpendNote moves it forward.
const upsertNoteQuery = `
INSERT INTO shielded_notes (commitment, token_type, value, created_tx_hash, created_height, status)
VALUES ($1, $2, $3, $4, $5, 'unspent')
ON CONFLICT (commitment) DO UPDATE SET
	token_type = COALESCE(EXCLUDED.token_type, shielded_notes.token_type),
	value = COALESCE(EXCLUDED.value, shielded_notes.value)`

func upsertNotes(ctx context.Context, tx pgx.Tx, notes []model.ShieldedNote) error {
	batch := &pgx.Batch{}
	for _, n := range notes {
		if n.Commitment == "" {
			continue
		}
		batch.Queue(upsertNoteQuery,
			n.Commitment,
			nullText(n.TokenType),
			numeric(n.Value),
			n.CreatedTxHash,
			n.CreatedHeight,
		)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("upsert shielded notes: %w", err)
	}
	return nil
}
