package model

import "math/big"

// ContractActionKind enumerates contract action variants.
type ContractActionKind string

var (
	ContractDeploy ContractActionKind = "deploy"
	ContractCall   ContractActionKind = "call"
	ContractUpdate ContractActionKind = "update"
)

// ContractAction is one deploy/call/update carried by a transaction.
type ContractAction struct {
	TxHash     string
	Position   uint32
	Kind       ContractActionKind
	Address    string
	State      []byte
	ZswapState []byte
	EntryPoint string
	Balances   []ContractBalance
}

// ContractBalance is an unshielded token balance held by a contract after an action.
type ContractBalance struct {
	TokenType string
	Amount    *big.Int
}
