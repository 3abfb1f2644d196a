package postgres

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
)

const upsertLedgerEventQuery = `
INSERT INTO ledger_events (transaction_id, position, kind, variant, event_id, max_id, raw, output_nonce)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (transaction_id, position) DO UPDATE SET
	kind = EXCLUDED.kind,
	variant = EXCLUDED.variant,
	event_id = EXCLUDED.event_id,
	max_id = EXCLUDED.max_id,
	raw = EXCLUDED.raw,
	output_nonce = EXCLUDED.output_nonce`

func upsertLedgerEvents(ctx context.Context, tx pgx.Tx, events []model.LedgerEvent, rows txRows) error {
	batch := &pgx.Batch{}
	for _, e := range events {
		row, ok := rows[e.TxHash]
		if !ok {
			continue
		}
		batch.Queue(upsertLedgerEventQuery,
			row.id,
			int64(e.Position),
			string(e.Kind),
			e.Variant,
			e.EventID,
			e.MaxID,
			nullBytes(e.Raw),
			nullText(e.OutputNonce),
		)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("upsert ledger events: %w", err)
	}
	return nil
}
