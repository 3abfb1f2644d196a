// Package decoder turns raw chain blocks into canonical blocks with ordered calls.
package decoder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/pkg/safe"
	"go.uber.org/zap"
)

// Decoder builds chain.DecodedBlock values from a chain.ChainSource.
type Decoder struct {
	source  chain.ChainSource
	network model.Network
	logger  *zap.Logger
}

// New constructs a Decoder.
func New(source chain.ChainSource, network model.Network, logger *zap.Logger) *Decoder {
	return &Decoder{
		source:  source,
		network: network,
		logger:  logger,
	}
}

// Decode fetches and decodes the block at height.
func (d *Decoder) Decode(ctx context.Context, height uint64) (*chain.DecodedBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := d.source.BlockHash(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("block hash at height %d: %w: %w", height, chain.ErrUnavailable, err)
	}
	if NormalizeHash(hash) == "" {
		return nil, fmt.Errorf("block hash at height %d: %w", height, chain.ErrUnavailable)
	}

	block, err := d.DecodeHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if block.Block.Height != height {
		return nil, fmt.Errorf("block %s reports height %d, requested %d", block.Block.Hash, block.Block.Height, height)
	}
	return block, nil
}

// DecodeHash fetches and decodes the block identified by hash.
func (d *Decoder) DecodeHash(ctx context.Context, hash string) (*chain.DecodedBlock, error) {
	raw, err := d.source.Block(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w: %w", hash, chain.ErrUnavailable, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("get block %s: %w", hash, chain.ErrUnavailable)
	}

	events, err := d.source.EventsAt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("get events %s: %w: %w", hash, chain.ErrUnavailable, err)
	}

	millis, err := d.source.TimestampAt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("get timestamp %s: %w: %w", hash, chain.ErrUnavailable, err)
	}

	return d.build(raw, events, millis)
}

func (d *Decoder) build(raw *chain.RawBlock, events []chain.RawEvent, millis uint64) (*chain.DecodedBlock, error) {
	txCount, err := safe.Uint32(len(raw.Extrinsics))
	if err != nil {
		return nil, fmt.Errorf("block %s extrinsic count overflow: %w", raw.Hash, err)
	}
	ts, err := safe.Int64(millis)
	if err != nil {
		return nil, fmt.Errorf("block %s timestamp overflow: %w", raw.Hash, err)
	}

	hash := NormalizeHash(raw.Hash)
	if hash == "" {
		hash = NormalizeHash(raw.Header.Hash)
	}

	out := &chain.DecodedBlock{
		Block: model.Block{
			Network:    d.network,
			Height:     raw.Header.Number,
			Hash:       hash,
			ParentHash: NormalizeHash(raw.Header.ParentHash),
			Slot:       raw.Slot,
			Timestamp:  time.UnixMilli(ts).UTC(),
			TxCount:    txCount,
			Raw:        raw.Raw,
		},
		Calls: make([]chain.Call, 0, len(raw.Extrinsics)),
	}

	for i, ext := range raw.Extrinsics {
		index, err := safe.Uint32(i)
		if err != nil {
			return nil, fmt.Errorf("block %s extrinsic index overflow: %w", hash, err)
		}
		out.Calls = append(out.Calls, chain.Call{
			Index:   index,
			Hash:    NormalizeHash(ext.Hash),
			Section: ext.Section,
			Method:  ext.Method,
			Signer:  ext.Signer,
			Signed:  ext.Signed,
			Args:    ext.Args,
			Raw:     ext.Raw,
		})
	}

	for _, ev := range events {
		if ev.ExtrinsicIndex == nil {
			continue
		}
		idx := int(*ev.ExtrinsicIndex)
		if idx >= len(out.Calls) {
			if d.logger != nil {
				d.logger.Warn("event references unknown extrinsic",
					zap.String("block", hash),
					zap.Int("extrinsic", idx),
					zap.String("event", chain.CallKey(ev.Section, ev.Method)),
				)
			}
			continue
		}
		out.Calls[idx].Events = append(out.Calls[idx].Events, ev)
	}

	return out, nil
}

// NormalizeHash lower-cases a hex hash and strips the 0x prefix.
func NormalizeHash(hash string) string {
	h := strings.TrimSpace(hash)
	if len(h) >= 2 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	return strings.ToLower(h)
}
