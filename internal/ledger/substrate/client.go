// Package substrate implements chain.ChainSource over the node's JSON-RPC interface.
package substrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/decoder"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/gorilla/websocket"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/ybbus/jsonrpc/v3"
	"go.uber.org/zap"
)

// Client talks to one node. It is safe for concurrent use.
type Client struct {
	rpc     RPCClient
	wsURL   string
	dialer  *websocket.Dialer
	methods Methods
	network model.Network
	metrics Metrics
	logger  *zap.Logger

	// replyTimeout bounds the wait for a subscription reply.
	replyTimeout time.Duration

	// timestamps holds timestamps read by Block until TimestampAt consumes them.
	timestamps *xsync.Map[string, uint64]
}

var _ chain.ChainSource = (*Client)(nil)

// New constructs a Client for cfg.
func New(cfg Config, network model.Network, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if cfg.HTTPURL == "" {
		return nil, errors.New("node rpc url is required")
	}
	if cfg.Methods == (Methods{}) {
		cfg.Methods = DefaultMethods()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rpc := jsonrpc.NewClientWithOpts(cfg.HTTPURL, &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{Timeout: timeout},
	})
	return &Client{
		rpc:     rpc,
		wsURL:   cfg.WSURL,
		dialer:  &websocket.Dialer{HandshakeTimeout: timeout},
		methods: cfg.Methods,
		network: network,
		metrics: metrics,
		logger:  logger.Named("substrate"),

		replyTimeout: timeout,

		timestamps: xsync.NewMap[string, uint64](),
	}, nil
}

// call performs one request and decodes its result into out. A null result leaves out untouched
// and reports found=false.
func (c *Client) call(ctx context.Context, method string, out any, params ...any) (found bool, err error) {
	start := time.Now()
	defer func() {
		c.metrics.Observe(method, c.network, err, start)
	}()

	resp, err := c.rpc.Call(ctx, method, params...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", method, err)
	}
	if resp == nil {
		err = fmt.Errorf("%s: empty response", method)
		return false, err
	}
	if resp.Error != nil {
		err = fmt.Errorf("%s: %w", method, resp.Error)
		return false, err
	}
	if resp.Result == nil {
		return false, nil
	}
	if err = resp.GetObject(out); err != nil {
		err = fmt.Errorf("%s: decode result: %w", method, err)
		return false, err
	}
	return true, nil
}

func (c *Client) LatestHeader(ctx context.Context) (*chain.Header, error) {
	var h headerDTO
	found, err := c.call(ctx, c.methods.Header, &h)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("latest header: %w", chain.ErrUnavailable)
	}
	header, err := h.toHeader("")
	if err != nil {
		return nil, err
	}
	if header.Hash, err = c.BlockHash(ctx, header.Number); err != nil {
		return nil, err
	}
	return header, nil
}

func (c *Client) FinalizedHeader(ctx context.Context) (*chain.Header, error) {
	var hash string
	found, err := c.call(ctx, c.methods.FinalizedHead, &hash)
	if err != nil {
		return nil, err
	}
	if !found || hash == "" {
		return nil, fmt.Errorf("finalized head: %w", chain.ErrUnavailable)
	}
	return c.headerByHash(ctx, hash)
}

func (c *Client) HeaderAt(ctx context.Context, height uint64) (*chain.Header, error) {
	hash, err := c.BlockHash(ctx, height)
	if err != nil {
		return nil, err
	}
	return c.headerByHash(ctx, hash)
}

func (c *Client) headerByHash(ctx context.Context, hash string) (*chain.Header, error) {
	var h headerDTO
	found, err := c.call(ctx, c.methods.Header, &h, prefixed(hash))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("header %s: %w", hash, chain.ErrUnavailable)
	}
	return h.toHeader(hash)
}

// BlockHash returns the canonical hash at height, or chain.ErrUnavailable when the node has none.
func (c *Client) BlockHash(ctx context.Context, height uint64) (string, error) {
	var hash string
	found, err := c.call(ctx, c.methods.BlockHash, &hash, height)
	if err != nil {
		return "", err
	}
	if !found || hash == "" {
		return "", fmt.Errorf("block hash at %d: %w", height, chain.ErrUnavailable)
	}
	return decoder.NormalizeHash(hash), nil
}

func (c *Client) Block(ctx context.Context, hash string) (*chain.RawBlock, error) {
	var raw json.RawMessage
	found, err := c.call(ctx, c.methods.Block, &raw, prefixed(hash))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var signed signedBlockDTO
	if err := json.Unmarshal(raw, &signed); err != nil {
		return nil, fmt.Errorf("decode block %s: %w", hash, err)
	}
	block, err := signed.Block.toRawBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("decode block %s: %w", hash, err)
	}
	block.Raw = raw
	if ts, err := timestampOf(block); err == nil {
		c.timestamps.Store(decoder.NormalizeHash(hash), ts)
	}
	return block, nil
}

func (c *Client) EventsAt(ctx context.Context, hash string) ([]chain.RawEvent, error) {
	var records []eventRecordDTO
	if _, err := c.call(ctx, c.methods.Events, &records, prefixed(hash)); err != nil {
		return nil, err
	}

	events := make([]chain.RawEvent, 0, len(records))
	for i, r := range records {
		ev, err := r.toRawEvent()
		if err != nil {
			c.logger.Warn("skip undecodable event record",
				zap.String("block", hash),
				zap.Int("position", i),
				zap.Error(err),
			)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// TimestampAt returns the block's timestamp in milliseconds, read from its timestamp.set call.
func (c *Client) TimestampAt(ctx context.Context, hash string) (uint64, error) {
	if ts, ok := c.timestamps.LoadAndDelete(decoder.NormalizeHash(hash)); ok {
		return ts, nil
	}
	block, err := c.Block(ctx, hash)
	if err != nil {
		return 0, err
	}
	if block == nil {
		return 0, fmt.Errorf("timestamp of %s: %w", hash, chain.ErrUnavailable)
	}
	c.timestamps.Delete(decoder.NormalizeHash(hash))
	return timestampOf(block)
}

func prefixed(hash string) string {
	return "0x" + decoder.NormalizeHash(hash)
}
