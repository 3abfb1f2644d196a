package model

// Network names the chain deployment being indexed.
type Network string

var (
	Preview  Network = "preview"
	Testnet  Network = "testnet"
	Mainnet  Network = "mainnet"
	Devnet   Network = "devnet"
	Undeploy Network = "undeployed"
)

// Source identifies which upstream produced a row.
type Source string

var (
	// SourceChain marks data decoded from the chain node's blocks and events.
	SourceChain Source = "chain"
	// SourceLedger marks data read from the secondary ledger API.
	SourceLedger Source = "ledger"
)
