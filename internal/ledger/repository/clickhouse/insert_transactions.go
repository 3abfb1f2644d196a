package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

// MirrorTransaction is a committed transaction as projected into ClickHouse.
type MirrorTransaction struct {
	Network     model.Network
	Transaction model.Transaction
}

// InsertTransactions stores transaction rows in ClickHouse. Re-sent rows replace older ones.
func (r *Repository) InsertTransactions(ctx context.Context, txs []MirrorTransaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", firstNetwork(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO midnight_transactions (
	network,
	hash,
	block_height,
	tx_index,
	timestamp,
	shielded,
	status,
	source,
	section,
	method,
	signer,
	fee,
	paid_fee
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, m := range txs {
		tx := m.Transaction
		if err = batch.Append(
			string(m.Network),
			tx.Hash,
			tx.BlockHeight,
			tx.Index,
			tx.Timestamp,
			tx.Shielded,
			string(tx.Status),
			string(tx.Source),
			tx.Section,
			tx.Method,
			tx.Signer,
			orZero(tx.Fee),
			orZero(tx.PaidFee),
		); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
