// Package chain defines interfaces and structs shared between ledger ingestion components.
package chain

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned when the chain node cannot supply a block.
	ErrUnavailable = errors.New("chain data unavailable")
	// ErrLedgerUnavailable is returned when the ledger source has no data for a height yet.
	ErrLedgerUnavailable = errors.New("ledger data unavailable")
)

// ChainSource is the node RPC boundary. Every method returns decoded structures keyed by
// section/method names and argument lists.
type ChainSource interface {
	LatestHeader(ctx context.Context) (*Header, error)
	FinalizedHeader(ctx context.Context) (*Header, error)
	HeaderAt(ctx context.Context, height uint64) (*Header, error)
	BlockHash(ctx context.Context, height uint64) (string, error)
	Block(ctx context.Context, hash string) (*RawBlock, error)
	EventsAt(ctx context.Context, hash string) ([]RawEvent, error)
	TimestampAt(ctx context.Context, hash string) (uint64, error)
	SubscribeNewHeads(ctx context.Context) (HeadSubscription, error)
	SubscribeFinalizedHeads(ctx context.Context) (HeadSubscription, error)
}

// HeadSubscription delivers headers until unsubscribed or the connection fails.
type HeadSubscription interface {
	Headers() <-chan Header
	Err() <-chan error
	Unsubscribe()
}

// LedgerSource is the secondary read API boundary.
type LedgerSource interface {
	// BlockByHeight returns nil, nil when the height is not indexed by the ledger API yet.
	BlockByHeight(ctx context.Context, height uint64) (*LedgerBlock, error)
}
