package model

import "math/big"

// Direction is the net flow of value for an account in one transaction.
type Direction string

var (
	DirectionIn   Direction = "in"
	DirectionOut  Direction = "out"
	DirectionSelf Direction = "self"
)

// Address holds both canonical forms of an account address.
type Address struct {
	Bech32 string
	Hex    string
}

// AccountTransaction is the account <-> transaction edge.
type AccountTransaction struct {
	Account   Address
	TxHash    string
	Direction Direction
	TokenType string
	Value     *big.Int
}

// BalanceDelta is the net movement of one asset for one account within one block.
type BalanceDelta struct {
	Account   Address
	TokenType string
	Delta     *big.Int
}

// BalanceSnapshot is the running balance of an account's asset after a block.
type BalanceSnapshot struct {
	Account     Address
	TokenType   string
	BlockHeight uint64
	Delta       *big.Int
	Balance     *big.Int
}
