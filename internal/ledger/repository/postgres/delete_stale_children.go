package postgres

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
)

const (
	deleteStaleOutputsQuery = `
DELETE FROM outputs
WHERE transaction_id = $1
  AND NOT (output_index = ANY($2::bigint[]))`

	// Released claims let the next resolution pick the output again.
	deleteStaleInputsQuery = `
WITH gone AS (
	DELETE FROM inputs
	WHERE transaction_id = $1
	  AND (NOT (input_index = ANY($2::bigint[])) OR (source = 'chain' AND input_index = ANY($3::bigint[])))
	RETURNING tx_hash, input_index
)
UPDATE outputs o
SET spent_tx_hash = NULL, spent_input_index = NULL, spent_height = NULL
FROM gone
WHERE o.spent_tx_hash = gone.tx_hash AND o.spent_input_index = gone.input_index`
)

// deleteStaleChildren removes outputs and inputs that an earlier import of the same transaction
// produced but the current bundle no longer does, and chain inputs replaced by ledger inputs.
func deleteStaleChildren(
	ctx context.Context,
	tx pgx.Tx,
	txs []model.Transaction,
	outputs []model.TransactionOutput,
	inputs []model.TransactionInput,
	rows txRows,
) error {
	outputIdx := make(map[string][]int64)
	for _, o := range outputs {
		outputIdx[o.TxHash] = append(outputIdx[o.TxHash], int64(o.Index))
	}
	inputIdx := make(map[string][]int64)
	ledgerInputIdx := make(map[string][]int64)
	for _, in := range inputs {
		inputIdx[in.TxHash] = append(inputIdx[in.TxHash], int64(in.Index))
		if in.Source == model.SourceLedger {
			ledgerInputIdx[in.TxHash] = append(ledgerInputIdx[in.TxHash], int64(in.Index))
		}
	}

	batch := &pgx.Batch{}
	for _, t := range txs {
		row, ok := rows[t.Hash]
		if !ok || row.chainSuperseded() {
			continue
		}
		batch.Queue(deleteStaleInputsQuery, row.id, nonNil(inputIdx[t.Hash]), nonNil(ledgerInputIdx[t.Hash]))
		batch.Queue(deleteStaleOutputsQuery, row.id, nonNil(outputIdx[t.Hash]))
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("delete stale outputs and inputs: %w", err)
	}
	return nil
}

// nonNil keeps empty index sets encoded as '{}' rather than NULL.
func nonNil(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}
