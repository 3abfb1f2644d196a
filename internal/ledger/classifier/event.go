package classifier

import (
	"encoding/json"
	"math/big"
)

// Event is one of the closed set of event variants understood by the extractor.
type Event interface {
	variant() string
}

// Transfer moves a native amount between two accounts.
type Transfer struct {
	From   string
	To     string
	Amount *big.Int
}

// Deposit credits an account.
type Deposit struct {
	Who    string
	Amount *big.Int
}

// Withdraw debits an account.
type Withdraw struct {
	Who    string
	Amount *big.Int
}

// AssetTransfer moves a non-native asset between two accounts.
type AssetTransfer struct {
	AssetID string
	From    string
	To      string
	Amount  *big.Int
}

// FeePaid reports the fee charged for the call.
type FeePaid struct {
	Who string
	Fee *big.Int
	Tip *big.Int
}

// ExtrinsicSuccess marks the call as applied.
type ExtrinsicSuccess struct{}

// ExtrinsicFailed marks the call as failed.
type ExtrinsicFailed struct {
	Reason json.RawMessage
}

// SegmentResult carries the outcome of one segment of a partially applied transaction.
type SegmentResult struct {
	SegmentID uint32
	Success   bool
}

// ShieldedOutput announces a new shielded note.
type ShieldedOutput struct {
	Commitment string
	TokenType  string
	Value      *big.Int
}

// ShieldedSpend announces the spend of a shielded note.
type ShieldedSpend struct {
	Commitment string
	Nullifier  string
}

// Unrecognized keeps the payload of an event no decoder accepted.
type Unrecognized struct {
	Section string
	Method  string
	Raw     json.RawMessage
	// Err is set when a known shape was expected but could not be decoded.
	Err error
}

func (Transfer) variant() string         { return "transfer" }
func (Deposit) variant() string          { return "deposit" }
func (Withdraw) variant() string         { return "withdraw" }
func (AssetTransfer) variant() string    { return "asset_transfer" }
func (FeePaid) variant() string          { return "fee_paid" }
func (ExtrinsicSuccess) variant() string { return "extrinsic_success" }
func (ExtrinsicFailed) variant() string  { return "extrinsic_failed" }
func (SegmentResult) variant() string    { return "segment_result" }
func (ShieldedOutput) variant() string   { return "shielded_output" }
func (ShieldedSpend) variant() string    { return "shielded_spend" }
func (Unrecognized) variant() string     { return "unrecognized" }

// VariantName returns the stable name of the variant of ev.
func VariantName(ev Event) string {
	return ev.variant()
}
