package postgres

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
)

// txRow is the stored identity of a transaction written by the current bundle.
type txRow struct {
	id int64
	// ledgerOwned is set once any write carried ledger data for the transaction.
	ledgerOwned bool
	// ledgerInBundle is set when the current bundle carries ledger data for it.
	ledgerInBundle bool
}

// chainSuperseded reports whether chain-derived children must be left alone.
func (t txRow) chainSuperseded() bool {
	return t.ledgerOwned && !t.ledgerInBundle
}

type txRows map[string]txRow

func (t txRows) ids() []int64 {
	ids := make([]int64, 0, len(t))
	for _, row := range t {
		ids = append(ids, row.id)
	}
	return ids
}

// Chain-owned and ledger-owned columns are merged with COALESCE so that whichever source arrives
// second only fills what it owns. Status follows the ledger once the ledger has written it.
const upsertTransactionQuery = `
INSERT INTO transactions (
	hash, block_height, block_hash, tx_index, timestamp, shielded, status, status_source,
	section, method, signer, signed, fee, raw,
	ledger_id, protocol_version, merkle_root, start_index, end_index, paid_fee, estimated_fee, ledger_raw
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8,
	$9, $10, $11, $12, $13, $14,
	$15, $16, $17, $18, $19, $20, $21, $22
)
ON CONFLICT (hash) DO UPDATE SET
	block_height = EXCLUDED.block_height,
	block_hash = EXCLUDED.block_hash,
	tx_index = EXCLUDED.tx_index,
	timestamp = EXCLUDED.timestamp,
	shielded = transactions.shielded OR EXCLUDED.shielded,
	status = CASE
		WHEN EXCLUDED.status_source = 'ledger' OR transactions.status_source = 'chain' THEN EXCLUDED.status
		ELSE transactions.status
	END,
	status_source = CASE
		WHEN EXCLUDED.status_source = 'ledger' OR transactions.status_source = 'chain' THEN EXCLUDED.status_source
		ELSE transactions.status_source
	END,
	section = COALESCE(EXCLUDED.section, transactions.section),
	method = COALESCE(EXCLUDED.method, transactions.method),
	signer = COALESCE(EXCLUDED.signer, transactions.signer),
	signed = COALESCE(EXCLUDED.signed, transactions.signed),
	fee = COALESCE(EXCLUDED.fee, transactions.fee),
	raw = COALESCE(EXCLUDED.raw, transactions.raw),
	ledger_id = COALESCE(EXCLUDED.ledger_id, transactions.ledger_id),
	protocol_version = COALESCE(EXCLUDED.protocol_version, transactions.protocol_version),
	merkle_root = COALESCE(EXCLUDED.merkle_root, transactions.merkle_root),
	start_index = COALESCE(EXCLUDED.start_index, transactions.start_index),
	end_index = COALESCE(EXCLUDED.end_index, transactions.end_index),
	paid_fee = COALESCE(EXCLUDED.paid_fee, transactions.paid_fee),
	estimated_fee = COALESCE(EXCLUDED.estimated_fee, transactions.estimated_fee),
	ledger_raw = COALESCE(EXCLUDED.ledger_raw, transactions.ledger_raw),
	updated_at = now()
RETURNING id, status_source`

func upsertTransactions(ctx context.Context, tx pgx.Tx, txs []model.Transaction) (txRows, error) {
	rows := make(txRows, len(txs))
	batch := &pgx.Batch{}
	for _, t := range txs {
		status := t.Status
		if status == "" {
			status = model.StatusSuccess
		}
		source := t.Source
		if source == "" {
			source = model.SourceChain
		}
		var signed *bool
		if t.Section != "" {
			signed = &t.Signed
		}

		batch.Queue(upsertTransactionQuery,
			t.Hash,
			t.BlockHeight,
			t.BlockHash,
			int64(t.Index),
			t.Timestamp.UTC(),
			t.Shielded,
			string(status),
			string(source),
			nullText(t.Section),
			nullText(t.Method),
			nullText(t.Signer),
			signed,
			numeric(t.Fee),
			nullBytes(t.Raw),
			t.LedgerID,
			nullUint32(t.ProtocolVersion),
			nullText(t.MerkleRoot),
			t.StartIndex,
			t.EndIndex,
			numeric(t.PaidFee),
			numeric(t.EstimatedFee),
			nullBytes(t.LedgerRaw),
		).QueryRow(func(row pgx.Row) error {
			var (
				id           int64
				statusSource string
			)
			if err := row.Scan(&id, &statusSource); err != nil {
				return fmt.Errorf("upsert transaction %s: %w", t.Hash, err)
			}
			rows[t.Hash] = txRow{
				id:             id,
				ledgerOwned:    statusSource == string(model.SourceLedger),
				ledgerInBundle: source == model.SourceLedger,
			}
			return nil
		})
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return nil, fmt.Errorf("upsert transactions: %w", err)
	}
	return rows, nil
}

const (
	upsertIdentifierQuery = `
INSERT INTO transaction_identifiers (transaction_id, position, identifier)
VALUES ($1, $2, $3)
ON CONFLICT (transaction_id, position) DO UPDATE SET identifier = EXCLUDED.identifier`

	upsertSegmentQuery = `
INSERT INTO transaction_segments (transaction_id, segment_id, success)
VALUES ($1, $2, $3)
ON CONFLICT (transaction_id, segment_id) DO UPDATE SET success = EXCLUDED.success`
)

func upsertTransactionDetails(ctx context.Context, tx pgx.Tx, txs []model.Transaction, rows txRows) error {
	batch := &pgx.Batch{}
	for _, t := range txs {
		row, ok := rows[t.Hash]
		if !ok {
			continue
		}
		for pos, identifier := range t.Identifiers {
			batch.Queue(upsertIdentifierQuery, row.id, pos, identifier)
		}
		for _, seg := range t.Segments {
			batch.Queue(upsertSegmentQuery, row.id, int64(seg.SegmentID), seg.Success)
		}
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("upsert transaction identifiers and segments: %w", err)
	}
	return nil
}
