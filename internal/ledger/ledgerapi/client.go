// Package ledgerapi implements chain.LedgerSource over the ledger indexer's GraphQL API.
package ledgerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/pkg/safe"
	graphql "github.com/hasura/go-graphql-client"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const methodBlockByHeight = "block_by_height"

type Config struct {
	URL     string
	Timeout time.Duration
	// RPS caps outgoing queries per second. Zero disables the limit.
	RPS int
}

// Client queries one ledger API endpoint. It is safe for concurrent use.
type Client struct {
	gql     *graphql.Client
	limiter ratelimit.Limiter
	network model.Network
	metrics Metrics
	logger  *zap.Logger
}

var _ chain.LedgerSource = (*Client)(nil)

func New(cfg Config, network model.Network, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("ledger api url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		limiter = ratelimit.New(cfg.RPS)
	}
	return &Client{
		gql:     graphql.NewClient(cfg.URL, &http.Client{Timeout: timeout}),
		limiter: limiter,
		network: network,
		metrics: metrics,
		logger:  logger.Named("ledgerapi"),
	}, nil
}

// BlockByHeight returns nil, nil when the ledger API has not indexed height yet.
func (c *Client) BlockByHeight(ctx context.Context, height uint64) (_ *chain.LedgerBlock, err error) {
	start := time.Now()
	defer func() {
		c.metrics.Observe(methodBlockByHeight, c.network, err, start)
	}()

	h, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("height %d: %w", height, err)
	}
	var resp blockByHeightData
	if err := c.query(ctx, blockByHeightQuery, map[string]any{"height": h}, &resp); err != nil {
		return nil, fmt.Errorf("block at height %d: %w", height, err)
	}
	if resp.Block == nil {
		c.logger.Debug("height not indexed by ledger api yet", zap.Uint64("height", height))
		return nil, nil
	}
	if resp.Block.Height != height {
		return nil, fmt.Errorf("ledger api returned height %d for %d", resp.Block.Height, height)
	}

	block, err := resp.Block.toLedgerBlock()
	if err != nil {
		return nil, fmt.Errorf("decode ledger block %d: %w", height, err)
	}
	return block, nil
}

// query runs a raw query document and decodes its data member into out. GraphQL errors and
// non-200 responses come back as graphql.Errors.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	c.limiter.Take()
	data, err := c.gql.ExecRaw(ctx, query, variables)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("empty response data")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
