package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/decoder"
)

// shape decodes one event variant from either its named or its positional form.
type shape struct {
	named      func(fields) (Event, error)
	positional func([]json.RawMessage) (Event, error)
}

// shapes maps canonical "section.method" keys to their decoders.
var shapes = map[string]shape{
	"balances.transfer": {
		named: func(f fields) (Event, error) {
			from, err := f.account("from")
			if err != nil {
				return nil, err
			}
			to, err := f.account("to")
			if err != nil {
				return nil, err
			}
			amount, err := f.amount("amount", "value")
			if err != nil {
				return nil, err
			}
			return Transfer{From: from, To: to, Amount: amount}, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			if len(items) < 3 {
				return nil, errShortArray
			}
			from, err := parseAccount(items[0])
			if err != nil {
				return nil, err
			}
			to, err := parseAccount(items[1])
			if err != nil {
				return nil, err
			}
			amount, err := parseAmount(items[2])
			if err != nil {
				return nil, err
			}
			return Transfer{From: from, To: to, Amount: amount}, nil
		},
	},
	"balances.deposit": {
		named: func(f fields) (Event, error) {
			who, amount, err := whoAmount(f)
			if err != nil {
				return nil, err
			}
			return Deposit{Who: who, Amount: amount}, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			who, amount, err := whoAmountAt(items)
			if err != nil {
				return nil, err
			}
			return Deposit{Who: who, Amount: amount}, nil
		},
	},
	"balances.withdraw": {
		named: func(f fields) (Event, error) {
			who, amount, err := whoAmount(f)
			if err != nil {
				return nil, err
			}
			return Withdraw{Who: who, Amount: amount}, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			who, amount, err := whoAmountAt(items)
			if err != nil {
				return nil, err
			}
			return Withdraw{Who: who, Amount: amount}, nil
		},
	},
	"assets.transferred": {
		named: func(f fields) (Event, error) {
			asset, err := f.text("asset_id", "asset")
			if err != nil {
				return nil, err
			}
			from, err := f.account("from")
			if err != nil {
				return nil, err
			}
			to, err := f.account("to")
			if err != nil {
				return nil, err
			}
			amount, err := f.amount("amount", "value")
			if err != nil {
				return nil, err
			}
			return AssetTransfer{AssetID: asset, From: from, To: to, Amount: amount}, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			if len(items) < 4 {
				return nil, errShortArray
			}
			asset, err := parseText(items[0])
			if err != nil {
				return nil, err
			}
			from, err := parseAccount(items[1])
			if err != nil {
				return nil, err
			}
			to, err := parseAccount(items[2])
			if err != nil {
				return nil, err
			}
			amount, err := parseAmount(items[3])
			if err != nil {
				return nil, err
			}
			return AssetTransfer{AssetID: asset, From: from, To: to, Amount: amount}, nil
		},
	},
	"transactionpayment.transactionfeepaid": {
		named: func(f fields) (Event, error) {
			who, err := f.account("who")
			if err != nil {
				return nil, err
			}
			fee, err := f.amount("actual_fee", "fee")
			if err != nil {
				return nil, err
			}
			tip, err := f.amount("tip")
			if err != nil && !errors.Is(err, errMissingField) {
				return nil, err
			}
			return FeePaid{Who: who, Fee: fee, Tip: tip}, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			who, fee, err := whoAmountAt(items)
			if err != nil {
				return nil, err
			}
			ev := FeePaid{Who: who, Fee: fee}
			if len(items) > 2 {
				if ev.Tip, err = parseAmount(items[2]); err != nil {
					return nil, err
				}
			}
			return ev, nil
		},
	},
	"system.extrinsicsuccess": {
		named:      func(fields) (Event, error) { return ExtrinsicSuccess{}, nil },
		positional: func([]json.RawMessage) (Event, error) { return ExtrinsicSuccess{}, nil },
	},
	"system.extrinsicfailed": {
		named: func(f fields) (Event, error) {
			reason, _ := f.get("dispatch_error", "error")
			return ExtrinsicFailed{Reason: reason}, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			var reason json.RawMessage
			if len(items) > 0 {
				reason = items[0]
			}
			return ExtrinsicFailed{Reason: reason}, nil
		},
	},
	"midnight.segmentresult": {
		named: func(f fields) (Event, error) {
			rawID, err := f.get("segment_id", "segment")
			if err != nil {
				return nil, err
			}
			id, err := parseUint32(rawID)
			if err != nil {
				return nil, err
			}
			rawOK, err := f.get("success")
			if err != nil {
				return nil, err
			}
			ok, err := parseBool(rawOK)
			if err != nil {
				return nil, err
			}
			return SegmentResult{SegmentID: id, Success: ok}, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			if len(items) < 2 {
				return nil, errShortArray
			}
			id, err := parseUint32(items[0])
			if err != nil {
				return nil, err
			}
			ok, err := parseBool(items[1])
			if err != nil {
				return nil, err
			}
			return SegmentResult{SegmentID: id, Success: ok}, nil
		},
	},
	"midnight.shieldedoutput": {
		named: func(f fields) (Event, error) {
			commitment, err := f.text("commitment")
			if err != nil {
				return nil, err
			}
			ev := ShieldedOutput{Commitment: decoder.NormalizeHash(commitment)}
			if token, err := f.text("token_type"); err == nil {
				ev.TokenType = decoder.NormalizeHash(token)
			}
			if value, err := f.amount("value"); err == nil {
				ev.Value = value
			}
			return ev, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			if len(items) < 1 {
				return nil, errShortArray
			}
			commitment, err := parseText(items[0])
			if err != nil {
				return nil, err
			}
			return ShieldedOutput{Commitment: decoder.NormalizeHash(commitment)}, nil
		},
	},
	"midnight.shieldedspend": {
		named: func(f fields) (Event, error) {
			commitment, err := f.text("commitment")
			if err != nil {
				return nil, err
			}
			nullifier, _ := f.text("nullifier")
			return ShieldedSpend{Commitment: decoder.NormalizeHash(commitment), Nullifier: decoder.NormalizeHash(nullifier)}, nil
		},
		positional: func(items []json.RawMessage) (Event, error) {
			if len(items) < 1 {
				return nil, errShortArray
			}
			commitment, err := parseText(items[0])
			if err != nil {
				return nil, err
			}
			ev := ShieldedSpend{Commitment: decoder.NormalizeHash(commitment)}
			if len(items) > 1 {
				if n, err := parseText(items[1]); err == nil {
					ev.Nullifier = decoder.NormalizeHash(n)
				}
			}
			return ev, nil
		},
	},
}

// DecodeEvent maps a raw event onto its variant. Events without a known shape, and known
// events whose payload fits neither form, become Unrecognized with the payload preserved.
func DecodeEvent(ev chain.RawEvent) Event {
	key := canonicalKey(chain.CallKey(ev.Section, ev.Method))
	s, ok := shapes[key]
	if !ok {
		return Unrecognized{Section: ev.Section, Method: ev.Method, Raw: ev.Data}
	}

	var namedErr, positionalErr error
	if f, err := objectFields(ev.Data); err == nil {
		decoded, err := s.named(f)
		if err == nil {
			return decoded
		}
		namedErr = err
	} else {
		namedErr = err
	}
	if items, err := arrayItems(ev.Data, 0); err == nil {
		decoded, err := s.positional(items)
		if err == nil {
			return decoded
		}
		positionalErr = err
	} else {
		positionalErr = err
	}
	if len(ev.Data) == 0 || isNull(ev.Data) {
		// variants without payload
		if decoded, err := s.positional(nil); err == nil {
			return decoded
		}
	}

	return Unrecognized{
		Section: ev.Section,
		Method:  ev.Method,
		Raw:     ev.Data,
		Err:     fmt.Errorf("decode %s: named: %v; positional: %w", key, namedErr, positionalErr),
	}
}

func whoAmount(f fields) (string, *big.Int, error) {
	who, err := f.account("who", "account")
	if err != nil {
		return "", nil, err
	}
	amount, err := f.amount("amount", "value")
	if err != nil {
		return "", nil, err
	}
	return who, amount, nil
}

func whoAmountAt(items []json.RawMessage) (string, *big.Int, error) {
	if len(items) < 2 {
		return "", nil, errShortArray
	}
	who, err := parseAccount(items[0])
	if err != nil {
		return "", nil, err
	}
	amount, err := parseAmount(items[1])
	if err != nil {
		return "", nil, err
	}
	return who, amount, nil
}
