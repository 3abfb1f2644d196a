// Package resolver links spends to the outputs they consume and moves shielded notes to spent.
package resolver

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"go.uber.org/zap"
)

// Method records how an input was matched.
type Method string

const (
	MethodPrevious      Method = "previous"
	MethodAuthoritative Method = "authoritative"
	MethodHeuristic     Method = "heuristic"
	MethodCommitment    Method = "commitment"
	MethodUnmatched     Method = "unmatched"
)

// Stats counts resolution outcomes for one call to Resolve.
type Stats map[Method]int

// Resolver matches inputs against a Store.
type Resolver struct {
	logger *zap.Logger
}

// New constructs a Resolver.
func New(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve fills ConsumesOutputID and ProducedByTxHash of every input it can match and claims
// the matched outputs. Unmatched inputs are returned unchanged. The order of inputs is kept.
// txIndex maps each spending transaction to its position in the block; a transaction missing
// from it is treated as the first of the block.
func (r *Resolver) Resolve(ctx context.Context, store Store, height uint64, txIndex map[string]uint32, inputs []model.TransactionInput) ([]model.TransactionInput, Stats, error) {
	out := make([]model.TransactionInput, len(inputs))
	stats := make(Stats)
	for i, in := range inputs {
		resolved, method, err := r.resolveOne(ctx, store, height, txIndex[in.TxHash], in)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve input %s:%d: %w", in.TxHash, in.Index, err)
		}
		out[i] = resolved
		stats[method]++
	}
	return out, stats, nil
}

func (r *Resolver) resolveOne(ctx context.Context, store Store, height uint64, txIndex uint32, in model.TransactionInput) (model.TransactionInput, Method, error) {
	spender := Spender{TxHash: in.TxHash, Index: in.Index, Height: height}

	if in.Shielded {
		return r.resolveShielded(ctx, store, spender, in)
	}

	prev, err := store.ClaimedBy(ctx, spender)
	if err != nil {
		return in, "", fmt.Errorf("previous claim: %w", err)
	}
	if prev != nil {
		return link(in, prev), MethodPrevious, nil
	}

	var (
		candidate *model.UnspentOutput
		method    Method
	)
	switch {
	case in.Prev != nil:
		candidate, err = store.OutputByRef(ctx, *in.Prev)
		if err != nil {
			return in, "", fmt.Errorf("output by ref %s:%d: %w", in.Prev.TxHash, in.Prev.Index, err)
		}
		method = MethodAuthoritative
	case in.Owner != "" && in.Value != nil && in.Value.Sign() > 0:
		candidate, err = store.FindUnspentOutput(ctx, Query{
			Owner:         in.Owner,
			TokenType:     in.TokenType,
			MinValue:      in.Value,
			ExcludeTxHash: in.TxHash,
			Height:        height,
			TxIndex:       txIndex,
		})
		if err != nil {
			return in, "", fmt.Errorf("find unspent output: %w", err)
		}
		method = MethodHeuristic
	}
	if candidate == nil {
		return in, MethodUnmatched, nil
	}

	return r.claim(ctx, store, spender, in, candidate, method)
}

func (r *Resolver) resolveShielded(ctx context.Context, store Store, spender Spender, in model.TransactionInput) (model.TransactionInput, Method, error) {
	if in.Commitment == "" {
		return in, MethodUnmatched, nil
	}

	resolved, method := in, MethodUnmatched
	prev, err := store.ClaimedBy(ctx, spender)
	if err != nil {
		return in, "", fmt.Errorf("previous claim: %w", err)
	}
	if prev != nil {
		resolved, method = link(in, prev), MethodPrevious
	} else {
		candidate, err := store.OutputByCommitment(ctx, in.Commitment)
		if err != nil {
			return in, "", fmt.Errorf("output by commitment %s: %w", in.Commitment, err)
		}
		if candidate != nil {
			if resolved, method, err = r.claim(ctx, store, spender, in, candidate, MethodCommitment); err != nil {
				return in, "", err
			}
		}
	}

	spent, err := store.SpendNote(ctx, in.Commitment, in.Nullifier, spender)
	if err != nil {
		return in, "", fmt.Errorf("spend note %s: %w", in.Commitment, err)
	}
	if spent && method == MethodUnmatched {
		method = MethodCommitment
	}
	return resolved, method, nil
}

func (r *Resolver) claim(ctx context.Context, store Store, spender Spender, in model.TransactionInput, candidate *model.UnspentOutput, method Method) (model.TransactionInput, Method, error) {
	ok, err := store.ClaimOutput(ctx, candidate.ID, spender)
	if err != nil {
		return in, "", fmt.Errorf("claim output %d: %w", candidate.ID, err)
	}
	if !ok {
		r.logger.Warn("output already claimed by another input",
			zap.Int64("output_id", candidate.ID),
			zap.String("tx", in.TxHash),
			zap.Uint32("input", in.Index),
		)
		return in, MethodUnmatched, nil
	}
	return link(in, candidate), method, nil
}

func link(in model.TransactionInput, out *model.UnspentOutput) model.TransactionInput {
	id := out.ID
	in.ConsumesOutputID = &id
	in.ProducedByTxHash = out.TxHash
	return in
}
