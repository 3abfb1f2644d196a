package model

import (
	"math/big"
	"time"
)

// TransactionStatus is the execution outcome of a transaction.
type TransactionStatus string

var (
	StatusSuccess TransactionStatus = "success"
	StatusPartial TransactionStatus = "partial"
	StatusFailure TransactionStatus = "failure"
)

// Transaction is the merge point of the chain and ledger views of one transaction.
// Fields left at their zero value (or nil) are not owned by the source that built
// the struct and never overwrite what the other source already stored.
type Transaction struct {
	Hash        string
	BlockHeight uint64
	BlockHash   string
	Index       uint32
	Timestamp   time.Time
	Shielded    bool
	Status      TransactionStatus
	Source      Source

	// chain-owned
	Section string
	Method  string
	Signer  string
	Signed  bool
	Fee     *big.Int
	Raw     []byte

	// ledger-owned
	LedgerID        *uint64
	ProtocolVersion uint32
	MerkleRoot      string
	StartIndex      *uint64
	EndIndex        *uint64
	PaidFee         *big.Int
	EstimatedFee    *big.Int
	LedgerRaw       []byte
	Identifiers     []string
	Segments        []ResultSegment
}

// ResultSegment is the per-segment success flag of a partially applied transaction.
type ResultSegment struct {
	SegmentID uint32
	Success   bool
}

// StatusFromSegments derives the overall status of a transaction from its segments.
func StatusFromSegments(segments []ResultSegment) TransactionStatus {
	if len(segments) == 0 {
		return StatusSuccess
	}
	succeeded := 0
	for _, s := range segments {
		if s.Success {
			succeeded++
		}
	}
	switch succeeded {
	case len(segments):
		return StatusSuccess
	case 0:
		return StatusFailure
	default:
		return StatusPartial
	}
}
