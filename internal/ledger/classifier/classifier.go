// Package classifier decides which calls are transactions and extracts value movements,
// fees, shielded markers and status from their events.
package classifier

import (
	"math/big"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/decoder"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"go.uber.org/zap"
)

// Evidence ranks where a movement was read from. Lower values are stronger.
type Evidence int

const (
	// EvidenceTransferEvent comes from a transfer or asset transfer event.
	EvidenceTransferEvent Evidence = iota + 1
	// EvidenceBalanceEvent comes from a deposit or withdraw event.
	EvidenceBalanceEvent
	// EvidenceCallArgs comes from positional call arguments.
	EvidenceCallArgs
)

// Movement is one value transfer extracted from a call. An empty From means value
// entered the account set (deposit); an empty To means it left it (withdraw).
type Movement struct {
	From      string
	To        string
	TokenType string
	Amount    *big.Int
	Evidence  Evidence
}

// Extraction is everything derived from one call and its events.
type Extraction struct {
	Movements       []Movement
	Fee             *big.Int
	Shielded        bool
	Status          model.TransactionStatus
	Segments        []model.ResultSegment
	ShieldedOutputs []ShieldedOutput
	ShieldedSpends  []ShieldedSpend
	Unrecognized    []Unrecognized
}

// Classified is a transaction-like call with its extraction.
type Classified struct {
	Call chain.Call
	Extraction
}

// Classifier applies a Config to decoded calls.
type Classifier struct {
	cfg    Config
	logger *zap.Logger
}

// New constructs a Classifier.
func New(cfg Config, logger *zap.Logger) *Classifier {
	return &Classifier{cfg: cfg, logger: logger}
}

// IsTransaction reports whether call is transaction-like: signed or allow-listed, and never deny-listed.
func (c *Classifier) IsTransaction(call chain.Call) bool {
	key := canonicalKey(call.Key())
	if hasAnyPrefix(key, c.cfg.Deny) {
		return false
	}
	return call.Signed || hasAnyPrefix(key, c.cfg.Allow)
}

// Classify returns the transaction-like calls of block in on-chain order.
func (c *Classifier) Classify(block *chain.DecodedBlock) []Classified {
	out := make([]Classified, 0, len(block.Calls))
	for _, call := range block.Calls {
		if !c.IsTransaction(call) {
			continue
		}
		out = append(out, Classified{Call: call, Extraction: c.Extract(call)})
	}
	return out
}

// Extract derives movements, fee, shielded flag and status from call and its events.
// Undecodable events are logged and kept as Unrecognized.
func (c *Classifier) Extract(call chain.Call) Extraction {
	ex := Extraction{Status: model.StatusSuccess}
	failed := false

	var transfers, balances []Movement
	for _, raw := range call.Events {
		if containsAny(raw.Section, c.cfg.ShieldedMarkers) || containsAny(raw.Method, c.cfg.ShieldedMarkers) {
			ex.Shielded = true
		}

		switch ev := DecodeEvent(raw).(type) {
		case Transfer:
			transfers = append(transfers, Movement{From: ev.From, To: ev.To, TokenType: model.NativeToken, Amount: ev.Amount, Evidence: EvidenceTransferEvent})
		case AssetTransfer:
			transfers = append(transfers, Movement{From: ev.From, To: ev.To, TokenType: decoder.NormalizeHash(ev.AssetID), Amount: ev.Amount, Evidence: EvidenceTransferEvent})
		case Deposit:
			balances = append(balances, Movement{To: ev.Who, TokenType: model.NativeToken, Amount: ev.Amount, Evidence: EvidenceBalanceEvent})
		case Withdraw:
			balances = append(balances, Movement{From: ev.Who, TokenType: model.NativeToken, Amount: ev.Amount, Evidence: EvidenceBalanceEvent})
		case FeePaid:
			if ex.Fee == nil {
				ex.Fee = new(big.Int)
			}
			ex.Fee.Add(ex.Fee, ev.Fee)
		case ExtrinsicFailed:
			failed = true
		case SegmentResult:
			ex.Segments = append(ex.Segments, model.ResultSegment{SegmentID: ev.SegmentID, Success: ev.Success})
		case ShieldedOutput:
			ex.Shielded = true
			ex.ShieldedOutputs = append(ex.ShieldedOutputs, ev)
		case ShieldedSpend:
			ex.Shielded = true
			ex.ShieldedSpends = append(ex.ShieldedSpends, ev)
		case Unrecognized:
			ex.Unrecognized = append(ex.Unrecognized, ev)
			if ev.Err != nil && c.logger != nil {
				c.logger.Warn("event payload not decoded",
					zap.String("call", call.Key()),
					zap.Uint32("extrinsic", call.Index),
					zap.Error(ev.Err),
				)
			}
		}
	}

	switch {
	case len(transfers) > 0:
		ex.Movements = transfers
	case len(balances) > 0:
		ex.Movements = balances
	case !failed:
		if m, ok := c.fromCallArgs(call); ok {
			ex.Movements = []Movement{m}
		}
	}

	switch {
	case failed:
		ex.Status = model.StatusFailure
	case len(ex.Segments) > 0:
		ex.Status = model.StatusFromSegments(ex.Segments)
	}
	return ex
}

func (c *Classifier) fromCallArgs(call chain.Call) (Movement, bool) {
	key := canonicalKey(call.Key())
	from := call.Signer

	var m Movement
	var err error
	switch {
	case hasAnyPrefix(key, []string{"balances.transfer"}):
		if len(call.Args) < 2 {
			return Movement{}, false
		}
		m.To, err = parseAccount(call.Args[0])
		if err == nil {
			m.Amount, err = parseAmount(call.Args[1])
		}
		m.TokenType = model.NativeToken
	case hasAnyPrefix(key, []string{"assets.transfer"}):
		if len(call.Args) < 3 {
			return Movement{}, false
		}
		var asset string
		asset, err = parseText(call.Args[0])
		if err == nil {
			m.To, err = parseAccount(call.Args[1])
		}
		if err == nil {
			m.Amount, err = parseAmount(call.Args[2])
		}
		m.TokenType = decoder.NormalizeHash(asset)
	default:
		return Movement{}, false
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("call arguments not decoded", zap.String("call", call.Key()), zap.Error(err))
		}
		return Movement{}, false
	}
	m.From = from
	m.Evidence = EvidenceCallArgs
	return m, true
}
