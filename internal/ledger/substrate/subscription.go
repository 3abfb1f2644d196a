package substrate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/retry"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	subscribeRequestID   = 1
	unsubscribeRequestID = 2
	writeTimeout         = 5 * time.Second
	defaultReplyTimeout  = 30 * time.Second
)

type wsRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type wsMessage struct {
	ID     *int            `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  *wsError        `json:"error"`
	Params *struct {
		Subscription json.RawMessage `json:"subscription"`
		Result       json.RawMessage `json:"result"`
	} `json:"params"`
}

type wsError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *wsError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// SubscribeNewHeads streams best-chain headers. Header hashes are left empty.
func (c *Client) SubscribeNewHeads(ctx context.Context) (chain.HeadSubscription, error) {
	return c.subscribe(ctx, c.methods.SubscribeNewHeads, c.methods.UnsubscribeNewHeads)
}

// SubscribeFinalizedHeads streams finalized headers. Header hashes are left empty.
func (c *Client) SubscribeFinalizedHeads(ctx context.Context) (chain.HeadSubscription, error) {
	return c.subscribe(ctx, c.methods.SubscribeFinalized, c.methods.UnsubscribeFinalized)
}

func (c *Client) subscribe(ctx context.Context, method, unsubscribe string) (_ chain.HeadSubscription, err error) {
	start := time.Now()
	defer func() {
		c.metrics.Observe(method, c.network, err, start)
	}()

	if c.wsURL == "" {
		return nil, retry.Permanent(errors.New("node websocket url is not configured"))
	}
	conn, _, err := c.dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.wsURL, err)
	}

	sub := &subscription{
		conn:        conn,
		unsubscribe: unsubscribe,
		headers:     make(chan chain.Header, 16),
		errs:        make(chan error, 1),
		done:        make(chan struct{}),
		logger:      c.logger.With(zap.String("subscription", method)),
	}
	if err := sub.write(wsRequest{JSONRPC: "2.0", ID: subscribeRequestID, Method: method, Params: []any{}}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	_ = conn.SetReadDeadline(c.replyDeadline(ctx))
	if sub.id, err = sub.awaitID(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	// notifications may be minutes apart
	_ = conn.SetReadDeadline(time.Time{})

	go sub.readLoop()
	go func() {
		select {
		case <-ctx.Done():
			sub.Unsubscribe()
		case <-sub.done:
		}
	}()
	return sub, nil
}

// replyDeadline is the earlier of the reply timeout and the ctx deadline.
func (c *Client) replyDeadline(ctx context.Context) time.Time {
	timeout := c.replyTimeout
	if timeout <= 0 {
		timeout = defaultReplyTimeout
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return deadline
}

type subscription struct {
	conn        *websocket.Conn
	id          string
	unsubscribe string
	headers     chan chain.Header
	errs        chan error
	done        chan struct{}
	once        sync.Once
	writeMu     sync.Mutex
	logger      *zap.Logger
}

func (s *subscription) Headers() <-chan chain.Header { return s.headers }

func (s *subscription) Err() <-chan error { return s.errs }

// Unsubscribe is idempotent. The header channel is closed once the read loop exits.
func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		req := wsRequest{JSONRPC: "2.0", ID: unsubscribeRequestID, Method: s.unsubscribe, Params: []any{s.id}}
		if err := s.write(req); err != nil {
			s.logger.Debug("unsubscribe request failed", zap.Error(err))
		}
		_ = s.conn.Close()
	})
}

func (s *subscription) write(req wsRequest) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(req)
}

func (s *subscription) awaitID() (string, error) {
	for {
		var msg wsMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return "", err
		}
		if msg.ID == nil || *msg.ID != subscribeRequestID {
			continue
		}
		if msg.Error != nil {
			return "", retry.Permanent(msg.Error)
		}
		var id string
		if err := json.Unmarshal(msg.Result, &id); err != nil {
			// Some nodes answer with a numeric subscription id.
			var n uint64
			if err := json.Unmarshal(msg.Result, &n); err != nil {
				return "", fmt.Errorf("subscription id %s: %w", string(msg.Result), err)
			}
			id = fmt.Sprint(n)
		}
		return id, nil
	}
}

func (s *subscription) readLoop() {
	defer close(s.headers)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.errs <- fmt.Errorf("subscription %s: %w", s.id, err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("skip malformed subscription message", zap.Error(err))
			continue
		}
		if msg.Params == nil || subscriptionKey(msg.Params.Subscription) != s.id {
			continue
		}

		var dto headerDTO
		if err := json.Unmarshal(msg.Params.Result, &dto); err != nil {
			s.logger.Warn("skip malformed header", zap.Error(err))
			continue
		}
		header, err := dto.toHeader("")
		if err != nil {
			s.logger.Warn("skip malformed header", zap.Error(err))
			continue
		}

		select {
		case s.headers <- *header:
		case <-s.done:
			return
		}
	}
}

// subscriptionKey renders a string or numeric subscription id the way awaitID stores it.
func subscriptionKey(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
