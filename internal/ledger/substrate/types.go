package substrate

import (
	"context"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/ybbus/jsonrpc/v3"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(method string, network model.Network, err error, started time.Time)
	}

	// RPCClient is the request/response JSON-RPC transport.
	RPCClient interface {
		Call(ctx context.Context, method string, params ...any) (*jsonrpc.RPCResponse, error)
	}
)
