// Package model defines domain models for ledger ingestion.
package model

import "time"

// Block represents a chain block persisted to the relational store.
type Block struct {
	Network         Network
	Height          uint64
	Hash            string
	ParentHash      string
	Slot            uint64
	Timestamp       time.Time
	TxCount         uint32
	Finalized       bool
	ProtocolVersion uint32
	Author          string
	Raw             []byte
}
