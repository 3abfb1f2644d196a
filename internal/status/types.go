package status

import (
	"context"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/service/ingester"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Provider reports the continuous ingester's state.
	Provider interface {
		Status(ctx context.Context) (ingester.Status, error)
	}

	// Pinger is a dependency checked by /healthz.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
