// Package accounting derives account <-> transaction edges and per-block balance movements
// from the outputs and inputs of a block.
package accounting

import (
	"math/big"
	"sort"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

// AddressNormalizer converts owner addresses to their canonical forms.
type AddressNormalizer interface {
	Normalize(addr string) (model.Address, error)
}

// Result is the accounting view of one block.
type Result struct {
	Edges  []model.AccountTransaction
	Deltas []model.BalanceDelta
	// Accounts lists every address touched, ordered by hex form.
	Accounts []model.Address
}

type flowKey struct {
	owner string
	tx    string
	token string
}

type deltaKey struct {
	owner string
	token string
}

type flow struct {
	received *big.Int
	sent     *big.Int
}

// Compute builds edges and deltas. Shielded rows and rows without an owner are ignored.
// The result is independent of input order.
func Compute(outputs []model.TransactionOutput, inputs []model.TransactionInput, addresses AddressNormalizer) Result {
	flows := make(map[flowKey]*flow)
	get := func(k flowKey) *flow {
		f, ok := flows[k]
		if !ok {
			f = &flow{received: new(big.Int), sent: new(big.Int)}
			flows[k] = f
		}
		return f
	}

	for _, o := range outputs {
		if o.Shielded || o.Owner == "" || o.Value == nil {
			continue
		}
		f := get(flowKey{owner: o.Owner, tx: o.TxHash, token: o.TokenType})
		f.received.Add(f.received, o.Value)
	}
	for _, in := range inputs {
		if in.Shielded || in.Owner == "" || in.Value == nil {
			continue
		}
		f := get(flowKey{owner: in.Owner, tx: in.TxHash, token: in.TokenType})
		f.sent.Add(f.sent, in.Value)
	}

	accounts := make(map[string]model.Address)
	resolve := func(owner string) model.Address {
		if a, ok := accounts[owner]; ok {
			return a
		}
		a, err := addresses.Normalize(owner)
		if err != nil || a.Hex == "" {
			a = model.Address{Hex: owner}
		}
		accounts[owner] = a
		return a
	}

	type edgeKey struct{ owner, tx string }
	tokensByEdge := make(map[edgeKey][]string)
	deltas := make(map[deltaKey]*big.Int)
	for k, f := range flows {
		ek := edgeKey{owner: k.owner, tx: k.tx}
		tokensByEdge[ek] = append(tokensByEdge[ek], k.token)

		dk := deltaKey{owner: k.owner, token: k.token}
		if deltas[dk] == nil {
			deltas[dk] = new(big.Int)
		}
		deltas[dk].Add(deltas[dk], f.received)
		deltas[dk].Sub(deltas[dk], f.sent)
	}

	res := Result{}
	for ek, tokens := range tokensByEdge {
		token := edgeToken(tokens)
		f := flows[flowKey{owner: ek.owner, tx: ek.tx, token: token}]
		dir, value := direction(f.received, f.sent)
		res.Edges = append(res.Edges, model.AccountTransaction{
			Account:   resolve(ek.owner),
			TxHash:    ek.tx,
			Direction: dir,
			TokenType: token,
			Value:     value,
		})
	}
	for dk, d := range deltas {
		res.Deltas = append(res.Deltas, model.BalanceDelta{
			Account:   resolve(dk.owner),
			TokenType: dk.token,
			Delta:     d,
		})
	}
	for _, a := range accounts {
		res.Accounts = append(res.Accounts, a)
	}

	sort.Slice(res.Edges, func(i, j int) bool {
		if res.Edges[i].Account.Hex != res.Edges[j].Account.Hex {
			return res.Edges[i].Account.Hex < res.Edges[j].Account.Hex
		}
		return res.Edges[i].TxHash < res.Edges[j].TxHash
	})
	sort.Slice(res.Deltas, func(i, j int) bool {
		if res.Deltas[i].Account.Hex != res.Deltas[j].Account.Hex {
			return res.Deltas[i].Account.Hex < res.Deltas[j].Account.Hex
		}
		return res.Deltas[i].TokenType < res.Deltas[j].TokenType
	})
	sort.Slice(res.Accounts, func(i, j int) bool { return res.Accounts[i].Hex < res.Accounts[j].Hex })
	return res
}

// edgeToken picks the token reported on an edge: native when involved, else the smallest.
func edgeToken(tokens []string) string {
	best := ""
	for _, t := range tokens {
		if t == model.NativeToken {
			return t
		}
		if best == "" || t < best {
			best = t
		}
	}
	return best
}

func direction(received, sent *big.Int) (model.Direction, *big.Int) {
	switch {
	case received.Sign() > 0 && sent.Sign() > 0:
		return model.DirectionSelf, new(big.Int).Abs(new(big.Int).Sub(received, sent))
	case sent.Sign() > 0:
		return model.DirectionOut, new(big.Int).Set(sent)
	default:
		return model.DirectionIn, new(big.Int).Set(received)
	}
}

// SnapshotKey identifies the running balance of one asset of one account.
type SnapshotKey struct {
	AccountHex string
	TokenType  string
}

// Snapshots applies deltas to the balances preceding height. Missing previous balances are zero.
// Negative results are kept; the chain view may miss credits from before the indexed window.
func Snapshots(height uint64, deltas []model.BalanceDelta, previous map[SnapshotKey]*big.Int) []model.BalanceSnapshot {
	out := make([]model.BalanceSnapshot, 0, len(deltas))
	for _, d := range deltas {
		prev := previous[SnapshotKey{AccountHex: d.Account.Hex, TokenType: d.TokenType}]
		balance := new(big.Int).Set(d.Delta)
		if prev != nil {
			balance.Add(balance, prev)
		}
		out = append(out, model.BalanceSnapshot{
			Account:     d.Account,
			TokenType:   d.TokenType,
			BlockHeight: height,
			Delta:       new(big.Int).Set(d.Delta),
			Balance:     balance,
		})
	}
	return out
}
