// Package app wires the ingestion pipeline shared by the command line tools.
package app

import (
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/classifier"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/substrate"
	"github.com/goodnatureofminers/midnight-indexer/internal/logging"
)

type NodeOptions struct {
	Network      model.Network `long:"network" env:"MIDNIGHT_NETWORK" description:"network name" default:"preview"`
	URL          string        `long:"node-url" env:"MIDNIGHT_NODE_URL" description:"chain node JSON-RPC URL" default:"http://127.0.0.1:9944"`
	WSURL        string        `long:"node-ws-url" env:"MIDNIGHT_NODE_WS_URL" description:"chain node websocket URL for head subscriptions" default:"ws://127.0.0.1:9944"`
	Timeout      time.Duration `long:"node-timeout" env:"MIDNIGHT_NODE_TIMEOUT" description:"timeout for node requests" default:"30s"`
	BlockMethod  string        `long:"node-block-method" env:"MIDNIGHT_NODE_BLOCK_METHOD" description:"RPC method returning a decoded block" default:"chain_getBlock"`
	EventsMethod string        `long:"node-events-method" env:"MIDNIGHT_NODE_EVENTS_METHOD" description:"RPC method returning decoded block events" default:"state_getEvents"`
}

type LedgerOptions struct {
	URL     string        `long:"ledger-url" env:"MIDNIGHT_LEDGER_URL" description:"ledger read API GraphQL URL" default:"http://127.0.0.1:8088/api/v3/graphql"`
	Timeout time.Duration `long:"ledger-timeout" env:"MIDNIGHT_LEDGER_TIMEOUT" description:"timeout for ledger queries" default:"30s"`
	RPS     int           `long:"ledger-rps" env:"MIDNIGHT_LEDGER_RPS" description:"max ledger queries per second, 0 for unlimited" default:"0"`
}

type StoreOptions struct {
	PostgresDSN      string `long:"postgres-dsn" env:"MIDNIGHT_POSTGRES_DSN" description:"PostgreSQL DSN"`
	PostgresMaxConns int32  `long:"postgres-max-conns" env:"MIDNIGHT_POSTGRES_MAX_CONNS" description:"max pooled connections" default:"16"`
	ClickhouseDSN    string `long:"clickhouse-dsn" env:"MIDNIGHT_CLICKHOUSE_DSN" description:"ClickHouse DSN of the optional analytics mirror"`
}

type ClassifierOptions struct {
	AllowCalls []string `long:"allow-call" env:"MIDNIGHT_ALLOW_CALLS" env-delim:"," description:"extra section.method prefix treated as a transaction (repeatable)"`
	DenyCalls  []string `long:"deny-call" env:"MIDNIGHT_DENY_CALLS" env-delim:"," description:"extra section.method prefix never treated as a transaction (repeatable)"`
}

// Options are the flags common to every tool that imports blocks.
type Options struct {
	Logging    logging.Options   `group:"Logging"`
	Node       NodeOptions       `group:"Chain node"`
	Ledger     LedgerOptions     `group:"Ledger API"`
	Store      StoreOptions      `group:"Storage"`
	Classifier ClassifierOptions `group:"Classification"`
	StatusAddr string            `long:"status-addr" env:"MIDNIGHT_STATUS_ADDR" description:"address for the metrics and status server" default:":2112"`
}

// Config returns the classifier lists: the defaults extended with the flag values.
func (o ClassifierOptions) Config() classifier.Config {
	cfg := classifier.DefaultConfig()
	cfg.Allow = append(cfg.Allow, o.AllowCalls...)
	cfg.Deny = append(cfg.Deny, o.DenyCalls...)
	return cfg
}

// Config returns the node client configuration.
func (o NodeOptions) Config() substrate.Config {
	methods := substrate.DefaultMethods()
	if o.BlockMethod != "" {
		methods.Block = o.BlockMethod
	}
	if o.EventsMethod != "" {
		methods.Events = o.EventsMethod
	}
	return substrate.Config{
		HTTPURL: o.URL,
		WSURL:   o.WSURL,
		Timeout: o.Timeout,
		Methods: methods,
	}
}
