package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/resolver"
	"github.com/goodnatureofminers/midnight-indexer/pkg/safe"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// txStore serves resolver lookups and claims inside the block transaction, so outputs written
// earlier in the same block are visible and a rollback releases every claim.
type txStore struct {
	tx pgx.Tx
}

var _ resolver.Store = (*txStore)(nil)

const outputColumns = `o.id, o.tx_hash, o.output_index, o.owner, o.token_type, o.value`

func (s *txStore) ClaimedBy(ctx context.Context, spender resolver.Spender) (*model.UnspentOutput, error) {
	const query = `
SELECT ` + outputColumns + `
FROM outputs o
WHERE o.spent_tx_hash = $1 AND o.spent_input_index = $2
ORDER BY o.id
LIMIT 1`
	return s.one(ctx, query, spender.TxHash, int64(spender.Index))
}

func (s *txStore) OutputByRef(ctx context.Context, ref model.OutputRef) (*model.UnspentOutput, error) {
	const query = `
SELECT ` + outputColumns + `
FROM outputs o
WHERE o.tx_hash = $1 AND o.output_index = $2 AND o.spent_tx_hash IS NULL
ORDER BY (o.source = 'ledger') DESC, o.id
LIMIT 1`
	return s.one(ctx, query, ref.TxHash, int64(ref.Index))
}

func (s *txStore) OutputByCommitment(ctx context.Context, commitment string) (*model.UnspentOutput, error) {
	const query = `
SELECT ` + outputColumns + `
FROM outputs o
WHERE o.commitment = $1 AND o.spent_tx_hash IS NULL
ORDER BY o.id
LIMIT 1`
	return s.one(ctx, query, commitment)
}

func (s *txStore) FindUnspentOutput(ctx context.Context, q resolver.Query) (*model.UnspentOutput, error) {
	const query = `
SELECT ` + outputColumns + `
FROM outputs o
JOIN transactions t ON t.id = o.transaction_id
WHERE o.owner = $1
  AND o.token_type = $2
  AND o.value >= $3
  AND NOT o.shielded
  AND o.spent_tx_hash IS NULL
  AND o.tx_hash <> $4
  AND (t.block_height, t.tx_index) < ($5::bigint, $6::integer)
ORDER BY t.block_height DESC, t.tx_index DESC, o.id DESC
LIMIT 1`
	return s.one(ctx, query, q.Owner, q.TokenType, numeric(q.MinValue), q.ExcludeTxHash, q.Height, int64(q.TxIndex))
}

func (s *txStore) ClaimOutput(ctx context.Context, outputID int64, spender resolver.Spender) (bool, error) {
	const query = `
UPDATE outputs
SET spent_tx_hash = $2, spent_input_index = $3, spent_height = $4
WHERE id = $1
  AND (spent_tx_hash IS NULL OR (spent_tx_hash = $2 AND spent_input_index = $3))`
	tag, err := s.tx.Exec(ctx, query, outputID, spender.TxHash, int64(spender.Index), spender.Height)
	if err != nil {
		return false, fmt.Errorf("claim output: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *txStore) SpendNote(ctx context.Context, commitment string, nullifier string, spender resolver.Spender) (bool, error) {
	const query = `
UPDATE shielded_notes
SET status = 'spent',
	nullifier = COALESCE($2, nullifier),
	spent_tx_hash = $3,
	spent_height = $4
WHERE commitment = $1 AND status = 'unspent'`
	tag, err := s.tx.Exec(ctx, query, commitment, nullText(nullifier), spender.TxHash, spender.Height)
	if err != nil {
		return false, fmt.Errorf("spend note: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *txStore) one(ctx context.Context, query string, args ...any) (*model.UnspentOutput, error) {
	var (
		out       model.UnspentOutput
		index     int64
		owner     *string
		tokenType string
		value     pgtype.Numeric
	)
	err := s.tx.QueryRow(ctx, query, args...).Scan(&out.ID, &out.TxHash, &index, &owner, &tokenType, &value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query output: %w", err)
	}
	if out.Value, err = fromNumeric(value); err != nil {
		return nil, fmt.Errorf("output %d value: %w", out.ID, err)
	}
	if out.Index, err = safe.Uint32(index); err != nil {
		return nil, fmt.Errorf("output %d index: %w", out.ID, err)
	}
	out.Owner = textValue(owner)
	out.TokenType = tokenType
	return &out, nil
}
