package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/jackc/pgx/v5"
)

const (
	// deploy_id points calls and updates at the first deploy of the same contract address.
	upsertContractActionQuery = `
INSERT INTO contract_actions (transaction_id, position, kind, address, state, zswap_state, entry_point, deploy_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, CASE
	WHEN $3::text = 'deploy' THEN NULL
	ELSE (SELECT d.id FROM contract_actions d WHERE d.address = $4 AND d.kind = 'deploy' ORDER BY d.id LIMIT 1)
END)
ON CONFLICT (transaction_id, position) DO UPDATE SET
	kind = EXCLUDED.kind,
	address = EXCLUDED.address,
	state = EXCLUDED.state,
	zswap_state = EXCLUDED.zswap_state,
	entry_point = EXCLUDED.entry_point,
	deploy_id = COALESCE(EXCLUDED.deploy_id, contract_actions.deploy_id)
RETURNING id`

	upsertContractBalanceQuery = `
INSERT INTO contract_balances (contract_action_id, token_type, amount)
VALUES ($1, $2, $3)
ON CONFLICT (contract_action_id, token_type) DO UPDATE SET amount = EXCLUDED.amount`
)

// upsertContractActions writes actions one by one so a deploy earlier in the block is visible
// to the calls that follow it.
func upsertContractActions(ctx context.Context, tx pgx.Tx, actions []model.ContractAction, rows txRows) error {
	for _, a := range actions {
		row, ok := rows[a.TxHash]
		if !ok {
			continue
		}

		var id int64
		err := tx.QueryRow(ctx, upsertContractActionQuery,
			row.id,
			int64(a.Position),
			string(a.Kind),
			a.Address,
			nullBytes(a.State),
			nullBytes(a.ZswapState),
			nullText(a.EntryPoint),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert contract action %s/%d: %w", a.TxHash, a.Position, err)
		}

		batch := &pgx.Batch{}
		for _, b := range a.Balances {
			batch.Queue(upsertContractBalanceQuery, id, b.TokenType, numeric(b.Amount))
		}
		if err := sendBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("upsert contract balances %s/%d: %w", a.TxHash, a.Position, err)
		}
	}
	return nil
}

// contractAddresses lists the distinct contract addresses referenced by actions of stored
// transactions. Contract addresses have no bech32 form and are kept as lowercase hex.
func contractAddresses(actions []model.ContractAction, rows txRows) []model.Address {
	seen := make(map[string]struct{}, len(actions))
	var out []model.Address
	for _, a := range actions {
		if _, ok := rows[a.TxHash]; !ok {
			continue
		}
		h := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(a.Address), "0x"))
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, model.Address{Hex: h})
	}
	return out
}
