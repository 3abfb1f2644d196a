package model

import "math/big"

// NoteStatus is the lifecycle state of a shielded note.
type NoteStatus string

var (
	NoteUnspent NoteStatus = "unspent"
	NoteSpent   NoteStatus = "spent"
)

// ShieldedNote is a privacy note identified by its commitment.
type ShieldedNote struct {
	Commitment    string
	TokenType     string
	Value         *big.Int
	CreatedTxHash string
	CreatedHeight uint64
	Nullifier     string
	Status        NoteStatus
	SpentTxHash   string
	SpentHeight   uint64
}
