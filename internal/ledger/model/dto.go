package model

// BlockBundle groups everything derived from one block for a single atomic write.
type BlockBundle struct {
	Block           Block
	Txs             []Transaction
	Outputs         []TransactionOutput
	Inputs          []TransactionInput
	Notes           []ShieldedNote
	ContractActions []ContractAction
	LedgerEvents    []LedgerEvent
	// LedgerPending is set when the ledger source had no data for this height yet.
	LedgerPending bool
}

// WriteOptions controls side effects of a block write.
type WriteOptions struct {
	// AdvanceCheckpoint moves the indexing cursor to the block height (never backwards).
	AdvanceCheckpoint bool
	// Finalized marks the block as final. A stored final block never reverts to non-final.
	Finalized bool
}
