package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/resolver"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// WriteBlock applies everything derived from one block as a single database transaction.
// Re-applying the same bundle leaves every row unchanged.
func (r *Repository) WriteBlock(ctx context.Context, bundle model.BlockBundle, opts model.WriteOptions) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("write_block", r.network, err, start)
	}()

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return r.writeBlock(ctx, tx, bundle, opts)
	})
	if err != nil {
		err = fmt.Errorf("write block %d: %w", bundle.Block.Height, err)
		return err
	}
	return nil
}

func (r *Repository) writeBlock(ctx context.Context, tx pgx.Tx, bundle model.BlockBundle, opts model.WriteOptions) error {
	height := bundle.Block.Height

	if err := upsertBlock(ctx, tx, bundle.Block, bundle.LedgerPending); err != nil {
		return err
	}

	txs, err := upsertTransactions(ctx, tx, bundle.Txs)
	if err != nil {
		return err
	}
	if err := upsertTransactionDetails(ctx, tx, bundle.Txs, txs); err != nil {
		return err
	}

	outputs, inputs := writableChildren(bundle, txs)
	if err := deleteStaleChildren(ctx, tx, bundle.Txs, outputs, inputs, txs); err != nil {
		return err
	}
	if err := upsertOutputs(ctx, tx, outputs, txs); err != nil {
		return err
	}
	if err := upsertNotes(ctx, tx, bundle.Notes); err != nil {
		return err
	}

	resolved, stats, err := r.resolver.Resolve(ctx, &txStore{tx: tx}, height, txPositions(bundle.Txs), inputs)
	if err != nil {
		return fmt.Errorf("resolve inputs: %w", err)
	}
	if len(inputs) > 0 {
		r.logger.Debug("inputs resolved",
			zap.Uint64("height", height),
			zap.Int("authoritative", stats[resolver.MethodAuthoritative]),
			zap.Int("heuristic", stats[resolver.MethodHeuristic]),
			zap.Int("commitment", stats[resolver.MethodCommitment]),
			zap.Int("previous", stats[resolver.MethodPrevious]),
			zap.Int("unmatched", stats[resolver.MethodUnmatched]),
		)
	}
	if err := upsertInputs(ctx, tx, resolved, txs); err != nil {
		return err
	}

	if err := r.updateAccounts(ctx, tx, height, txs); err != nil {
		return err
	}
	if err := upsertContractActions(ctx, tx, bundle.ContractActions, txs); err != nil {
		return err
	}
	if _, err := upsertAddresses(ctx, tx, height, contractAddresses(bundle.ContractActions, txs)); err != nil {
		return err
	}
	if err := upsertLedgerEvents(ctx, tx, bundle.LedgerEvents, txs); err != nil {
		return err
	}

	if opts.AdvanceCheckpoint {
		if err := advanceCheckpoint(ctx, tx, height); err != nil {
			return err
		}
	}
	return nil
}

// writableChildren drops chain-sourced rows of transactions the ledger already wrote when this
// bundle carries no ledger data for them.
func writableChildren(bundle model.BlockBundle, txs txRows) ([]model.TransactionOutput, []model.TransactionInput) {
	outputs := make([]model.TransactionOutput, 0, len(bundle.Outputs))
	for _, o := range bundle.Outputs {
		row, ok := txs[o.TxHash]
		if !ok || (o.Source == model.SourceChain && row.chainSuperseded()) {
			continue
		}
		outputs = append(outputs, o)
	}
	inputs := make([]model.TransactionInput, 0, len(bundle.Inputs))
	for _, in := range bundle.Inputs {
		row, ok := txs[in.TxHash]
		if !ok || (in.Source == model.SourceChain && row.chainSuperseded()) {
			continue
		}
		inputs = append(inputs, in)
	}
	return outputs, inputs
}

func txPositions(txs []model.Transaction) map[string]uint32 {
	positions := make(map[string]uint32, len(txs))
	for _, t := range txs {
		positions[t.Hash] = t.Index
	}
	return positions
}

func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	return tx.SendBatch(ctx, batch).Close()
}
