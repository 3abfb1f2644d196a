package ledgerapi

import (
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(method string, network model.Network, err error, started time.Time)
	}
)
