package chain

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

// Header is a block header as reported by the chain node.
type Header struct {
	Number     uint64
	Hash       string
	ParentHash string
}

// RawBlock is a node block with decoded extrinsics.
type RawBlock struct {
	Hash       string
	Header     Header
	Slot       uint64
	Extrinsics []RawExtrinsic
	Raw        []byte
}

// RawExtrinsic is one decoded extrinsic.
type RawExtrinsic struct {
	Hash    string
	Section string
	Method  string
	Signer  string
	Signed  bool
	Args    []json.RawMessage
	Raw     []byte
}

// RawEvent is one decoded event record.
type RawEvent struct {
	// ExtrinsicIndex is nil for events emitted outside an extrinsic (initialization, finalization).
	ExtrinsicIndex *uint32
	Section        string
	Method         string
	Data           json.RawMessage
}

// Call is an extrinsic together with the events it emitted, in on-chain order.
type Call struct {
	Index   uint32
	Hash    string
	Section string
	Method  string
	Signer  string
	Signed  bool
	Args    []json.RawMessage
	Raw     []byte
	Events  []RawEvent
}

// Key returns the lower-case "section.method" key of the call.
func (c Call) Key() string {
	return CallKey(c.Section, c.Method)
}

// DecodedBlock is the canonical form of a chain block produced by the decoder.
type DecodedBlock struct {
	Block model.Block
	Calls []Call
}

// LedgerBlock is the ledger API view of a block.
type LedgerBlock struct {
	Hash            string
	Height          uint64
	ProtocolVersion uint32
	Timestamp       time.Time
	Author          string
	ParentHash      string
	Transactions    []LedgerTransaction
}

// LedgerTransaction is the ledger API view of one transaction.
type LedgerTransaction struct {
	Hash              string
	ID                uint64
	Raw               []byte
	Identifiers       []string
	MerkleRoot        string
	StartIndex        uint64
	EndIndex          uint64
	PaidFee           *big.Int
	EstimatedFee      *big.Int
	Status            model.TransactionStatus
	Segments          []model.ResultSegment
	ContractActions   []LedgerContractAction
	UnshieldedCreated []LedgerUtxo
	UnshieldedSpent   []LedgerUtxo
	ZswapEvents       []LedgerEventRecord
	DustEvents        []LedgerEventRecord
}

// LedgerContractAction is a contract deploy/call/update reported by the ledger API.
type LedgerContractAction struct {
	Kind       model.ContractActionKind
	Address    string
	State      []byte
	ZswapState []byte
	EntryPoint string
	Balances   []model.ContractBalance
}

// LedgerUtxo is an unshielded output reported by the ledger API.
type LedgerUtxo struct {
	Owner             string
	TokenType         string
	Value             *big.Int
	IntentHash        string
	InitialNonce      string
	RegisteredForDust bool
	OutputIndex       uint32
	CreatedAtTxHash   string
	SpentAtTxHash     string
	CreatedAt         time.Time
}

// LedgerEventRecord is a zswap or dust ledger event reported by the ledger API.
type LedgerEventRecord struct {
	ID          uint64
	MaxID       uint64
	Variant     string
	Raw         []byte
	OutputNonce string
}
