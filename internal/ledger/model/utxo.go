package model

import (
	"math/big"
	"time"
)

// NativeToken is the token type of the chain's native unshielded asset.
const NativeToken = "0000000000000000000000000000000000000000000000000000000000000000"

// TransactionOutput represents a value produced by a transaction.
type TransactionOutput struct {
	TxHash            string
	Index             uint32
	Owner             string
	TokenType         string
	Value             *big.Int
	Shielded          bool
	Commitment        string
	IntentHash        string
	InitialNonce      string
	RegisteredForDust bool
	CreatedAt         time.Time
	Source            Source
}

// OutputRef is an authoritative pointer to a previously created output.
type OutputRef struct {
	TxHash string
	Index  uint32
}

// TransactionInput describes value consumed by a transaction.
type TransactionInput struct {
	TxHash     string
	Index      uint32
	Owner      string
	TokenType  string
	Value      *big.Int
	Shielded   bool
	Commitment string
	Nullifier  string
	Source     Source

	// Prev is set when the source names the spent output explicitly.
	Prev *OutputRef
	// ConsumesOutputID is filled by the resolver once the spent output is found.
	ConsumesOutputID *int64
	// ProducedByTxHash is the hash of the transaction that created the consumed output.
	ProducedByTxHash string
}

// UnspentOutput is a stored output candidate returned by resolver lookups.
type UnspentOutput struct {
	ID        int64
	TxHash    string
	Index     uint32
	Owner     string
	TokenType string
	Value     *big.Int
}
