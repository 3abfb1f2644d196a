package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/accounting"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type balancePair struct {
	addressID int64
	tokenType string
}

// updateAccounts recomputes edges and balance snapshots of the block from the outputs and inputs
// stored for its transactions, so the result does not depend on which source wrote them.
func (r *Repository) updateAccounts(ctx context.Context, tx pgx.Tx, height uint64, rows txRows) error {
	ids := rows.ids()
	outputs, inputs, err := storedMovements(ctx, tx, ids)
	if err != nil {
		return err
	}

	res := accounting.Compute(outputs, inputs, r.addresses)

	addressIDs, err := upsertAddresses(ctx, tx, height, res.Accounts)
	if err != nil {
		return err
	}
	if err := replaceEdges(ctx, tx, ids, res.Edges, addressIDs, rows); err != nil {
		return err
	}
	return replaceSnapshots(ctx, tx, height, res.Deltas, addressIDs)
}

func storedMovements(ctx context.Context, tx pgx.Tx, txIDs []int64) ([]model.TransactionOutput, []model.TransactionInput, error) {
	if len(txIDs) == 0 {
		return nil, nil, nil
	}

	const outputsQuery = `
SELECT tx_hash, owner, token_type, value
FROM outputs
WHERE transaction_id = ANY($1::bigint[]) AND owner IS NOT NULL AND value IS NOT NULL AND NOT shielded`

	const inputsQuery = `
SELECT tx_hash, owner, COALESCE(token_type, ''), value
FROM inputs
WHERE transaction_id = ANY($1::bigint[]) AND owner IS NOT NULL AND value IS NOT NULL AND NOT shielded`

	var outputs []model.TransactionOutput
	err := scanMovements(ctx, tx, outputsQuery, txIDs, func(txHash, owner, token string, value *big.Int) {
		outputs = append(outputs, model.TransactionOutput{TxHash: txHash, Owner: owner, TokenType: token, Value: value})
	})
	if err != nil {
		return nil, nil, fmt.Errorf("query block outputs: %w", err)
	}

	var inputs []model.TransactionInput
	err = scanMovements(ctx, tx, inputsQuery, txIDs, func(txHash, owner, token string, value *big.Int) {
		inputs = append(inputs, model.TransactionInput{TxHash: txHash, Owner: owner, TokenType: token, Value: value})
	})
	if err != nil {
		return nil, nil, fmt.Errorf("query block inputs: %w", err)
	}
	return outputs, inputs, nil
}

func scanMovements(ctx context.Context, tx pgx.Tx, query string, txIDs []int64, fn func(txHash, owner, token string, value *big.Int)) error {
	rows, err := tx.Query(ctx, query, txIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			txHash, owner, token string
			raw                  pgtype.Numeric
		)
		if err := rows.Scan(&txHash, &owner, &token, &raw); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		value, err := fromNumeric(raw)
		if err != nil {
			return err
		}
		fn(txHash, owner, token, value)
	}
	return rows.Err()
}

const upsertAddressQuery = `
INSERT INTO addresses (bech32, hex, first_seen_height, last_seen_height)
VALUES ($1, $2, $3, $3)
ON CONFLICT (hex) DO UPDATE SET
	bech32 = COALESCE(addresses.bech32, EXCLUDED.bech32),
	first_seen_height = LEAST(addresses.first_seen_height, EXCLUDED.first_seen_height),
	last_seen_height = GREATEST(addresses.last_seen_height, EXCLUDED.last_seen_height)
RETURNING id`

func upsertAddresses(ctx context.Context, tx pgx.Tx, height uint64, accounts []model.Address) (map[string]int64, error) {
	ids := make(map[string]int64, len(accounts))
	batch := &pgx.Batch{}
	for _, a := range accounts {
		batch.Queue(upsertAddressQuery, nullText(a.Bech32), a.Hex, height).QueryRow(func(row pgx.Row) error {
			var id int64
			if err := row.Scan(&id); err != nil {
				return fmt.Errorf("address %s: %w", a.Hex, err)
			}
			ids[a.Hex] = id
			return nil
		})
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return nil, fmt.Errorf("upsert addresses: %w", err)
	}
	return ids, nil
}

func replaceEdges(ctx context.Context, tx pgx.Tx, txIDs []int64, edges []model.AccountTransaction, addressIDs map[string]int64, rows txRows) error {
	const (
		deleteQuery = `DELETE FROM account_transactions WHERE transaction_id = ANY($1::bigint[])`
		insertQuery = `
INSERT INTO account_transactions (address_id, transaction_id, direction, token_type, value)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (address_id, transaction_id) DO UPDATE SET
	direction = EXCLUDED.direction,
	token_type = EXCLUDED.token_type,
	value = EXCLUDED.value`
	)

	batch := &pgx.Batch{}
	batch.Queue(deleteQuery, nonNil(txIDs))
	for _, e := range edges {
		row, ok := rows[e.TxHash]
		if !ok {
			continue
		}
		batch.Queue(insertQuery, addressIDs[e.Account.Hex], row.id, string(e.Direction), e.TokenType, numeric(e.Value))
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("replace account transactions: %w", err)
	}
	return nil
}

// replaceSnapshots rewrites the snapshots at height from the preceding balances and then
// rebases later snapshots of every pair touched now or before, so out-of-order imports converge.
func replaceSnapshots(ctx context.Context, tx pgx.Tx, height uint64, deltas []model.BalanceDelta, addressIDs map[string]int64) error {
	pairs, err := snapshotPairsAt(ctx, tx, height)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM account_balances WHERE block_height = $1`, height); err != nil {
		return fmt.Errorf("delete balances at %d: %w", height, err)
	}

	previous, err := previousBalances(ctx, tx, height, deltas, addressIDs)
	if err != nil {
		return err
	}

	const insertQuery = `
INSERT INTO account_balances (address_id, token_type, block_height, delta, balance)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (address_id, token_type, block_height) DO UPDATE SET
	delta = EXCLUDED.delta,
	balance = EXCLUDED.balance`

	batch := &pgx.Batch{}
	for _, s := range accounting.Snapshots(height, deltas, previous) {
		id := addressIDs[s.Account.Hex]
		batch.Queue(insertQuery, id, s.TokenType, height, numeric(s.Delta), numeric(s.Balance))
		pairs[balancePair{addressID: id, tokenType: s.TokenType}] = struct{}{}
	}

	const rebaseQuery = `
UPDATE account_balances b
SET balance = s.running
FROM (
	SELECT id, SUM(delta) OVER (ORDER BY block_height) AS running
	FROM account_balances
	WHERE address_id = $1 AND token_type = $2
) s
WHERE b.id = s.id AND b.block_height > $3 AND b.balance <> s.running`

	for pair := range pairs {
		batch.Queue(rebaseQuery, pair.addressID, pair.tokenType, height)
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("write balances at %d: %w", height, err)
	}
	return nil
}

func snapshotPairsAt(ctx context.Context, tx pgx.Tx, height uint64) (map[balancePair]struct{}, error) {
	rows, err := tx.Query(ctx, `SELECT address_id, token_type FROM account_balances WHERE block_height = $1`, height)
	if err != nil {
		return nil, fmt.Errorf("query balances at %d: %w", height, err)
	}
	defer rows.Close()

	pairs := make(map[balancePair]struct{})
	for rows.Next() {
		var p balancePair
		if err := rows.Scan(&p.addressID, &p.tokenType); err != nil {
			return nil, fmt.Errorf("scan balance pair: %w", err)
		}
		pairs[p] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balances at %d: %w", height, err)
	}
	return pairs, nil
}

func previousBalances(ctx context.Context, tx pgx.Tx, height uint64, deltas []model.BalanceDelta, addressIDs map[string]int64) (map[accounting.SnapshotKey]*big.Int, error) {
	const query = `
SELECT balance
FROM account_balances
WHERE address_id = $1 AND token_type = $2 AND block_height < $3
ORDER BY block_height DESC
LIMIT 1`

	previous := make(map[accounting.SnapshotKey]*big.Int, len(deltas))
	batch := &pgx.Batch{}
	for _, d := range deltas {
		key := accounting.SnapshotKey{AccountHex: d.Account.Hex, TokenType: d.TokenType}
		batch.Queue(query, addressIDs[d.Account.Hex], d.TokenType, height).QueryRow(func(row pgx.Row) error {
			var raw pgtype.Numeric
			err := row.Scan(&raw)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("previous balance of %s: %w", key.AccountHex, err)
			}
			balance, err := fromNumeric(raw)
			if err != nil {
				return err
			}
			previous[key] = balance
			return nil
		})
	}
	if err := sendBatch(ctx, tx, batch); err != nil {
		return nil, fmt.Errorf("query previous balances: %w", err)
	}
	return previous, nil
}
