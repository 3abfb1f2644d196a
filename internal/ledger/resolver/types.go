package resolver

import (
	"context"
	"math/big"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store is the view of committed and in-flight outputs used for matching. It is expected to
	// run inside the block's database transaction.
	Store interface {
		// ClaimedBy returns the output already claimed by spender, if any.
		ClaimedBy(ctx context.Context, spender Spender) (*model.UnspentOutput, error)
		// OutputByRef returns the output named by ref unless another spender claimed it.
		OutputByRef(ctx context.Context, ref model.OutputRef) (*model.UnspentOutput, error)
		// OutputByCommitment returns the shielded output with commitment unless it is claimed.
		OutputByCommitment(ctx context.Context, commitment string) (*model.UnspentOutput, error)
		// FindUnspentOutput returns the newest unclaimed unshielded output matching q.
		FindUnspentOutput(ctx context.Context, q Query) (*model.UnspentOutput, error)
		// ClaimOutput marks the output as consumed by spender. It reports false when another
		// spender holds the claim.
		ClaimOutput(ctx context.Context, outputID int64, spender Spender) (bool, error)
		// SpendNote flips an unspent note to spent. It reports false when no unspent note matched.
		SpendNote(ctx context.Context, commitment string, nullifier string, spender Spender) (bool, error)
	}
)

// Spender identifies the input performing a spend.
type Spender struct {
	TxHash string
	Index  uint32
	Height uint64
}

// Query selects heuristic candidates.
type Query struct {
	Owner     string
	TokenType string
	MinValue  *big.Int
	// ExcludeTxHash keeps a transaction from consuming its own outputs.
	ExcludeTxHash string
	// Height and TxIndex position the spending transaction. Only outputs of transactions
	// strictly before it in chain order qualify.
	Height  uint64
	TxIndex uint32
}
