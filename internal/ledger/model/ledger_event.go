package model

// LedgerEventKind distinguishes privacy-ledger and fee-generation events.
type LedgerEventKind string

var (
	LedgerEventZswap LedgerEventKind = "zswap"
	LedgerEventDust  LedgerEventKind = "dust"
)

// LedgerEvent is a zswap or dust ledger state transition attached to a transaction.
type LedgerEvent struct {
	TxHash      string
	Position    uint32
	Kind        LedgerEventKind
	Variant     string
	EventID     uint64
	MaxID       uint64
	Raw         []byte
	OutputNonce string
}
