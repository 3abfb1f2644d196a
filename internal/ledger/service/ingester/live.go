package ingester

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
	"go.uber.org/zap"
)

var errSubscriptionClosed = errors.New("subscription closed")

type live struct {
	importer *Importer
	heads    HeadSource
	retrier  Retrier
	queue    *retryQueue
	metrics  Metrics
	logger   *zap.Logger

	lastFinalized atomic.Uint64
}

// Run follows new and finalized heads until ctx is done. The two handlers run independently;
// importing the same height from both is safe. Failing to re-establish a subscription is fatal.
func (l *live) Run(ctx context.Context, committed uint64) error {
	l.lastFinalized.Store(committed)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, 2)
	go func() {
		errs <- l.follow(ctx, headKindBest, l.heads.SubscribeNewHeads, l.onNewHead)
	}()
	go func() {
		errs <- l.follow(ctx, headKindFinalized, l.heads.SubscribeFinalizedHeads, l.onFinalized)
	}()

	err := <-errs
	cancel()
	if other := <-errs; err == nil {
		err = other
	}
	return err
}

type subscribeFunc func(ctx context.Context) (chain.HeadSubscription, error)

func (l *live) follow(ctx context.Context, kind string, subscribe subscribeFunc, handle func(context.Context, chain.Header)) error {
	for {
		var sub chain.HeadSubscription
		err := l.retrier.Do(ctx, "subscribe "+kind+" heads", func(ctx context.Context) error {
			s, err := subscribe(ctx)
			if err != nil {
				return err
			}
			sub = s
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("subscribe %s heads: %w", kind, err)
		}

		err = l.consume(ctx, kind, sub, handle)
		sub.Unsubscribe()
		if ctx.Err() != nil {
			return nil
		}
		l.logger.Warn("head subscription dropped, resubscribing", zap.String("kind", kind), zap.Error(err))
	}
}

func (l *live) consume(ctx context.Context, kind string, sub chain.HeadSubscription, handle func(context.Context, chain.Header)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return err
		case h, ok := <-sub.Headers():
			if !ok {
				return errSubscriptionClosed
			}
			l.metrics.SetHead(kind, h.Number)
			handle(ctx, h)
		}
	}
}

func (l *live) onNewHead(ctx context.Context, h chain.Header) {
	if h.Number <= l.lastFinalized.Load() {
		return
	}

	res, err := l.importer.Import(ctx, h.Number, model.WriteOptions{})
	if err != nil {
		l.logger.Warn("import new head failed", zap.Uint64("height", h.Number), zap.Error(err))
		return
	}
	if res.LedgerPending {
		l.queue.Add(h.Number)
		l.metrics.SetRetryQueue(l.queue.Len())
	}
}

// onFinalized retries queued heights and then imports every height up to the finalized head
// in order, advancing the checkpoint. It stops at the first failure; the next finalized head
// resumes from there.
func (l *live) onFinalized(ctx context.Context, h chain.Header) {
	l.drainQueue(ctx)

	for height := l.lastFinalized.Load() + 1; height <= h.Number; height++ {
		res, err := l.importer.Import(ctx, height, model.WriteOptions{AdvanceCheckpoint: true, Finalized: true})
		if err != nil {
			l.logger.Warn("import finalized height failed", zap.Uint64("height", height), zap.Error(err))
			return
		}
		if res.LedgerPending {
			l.queue.Add(height)
		}
		l.lastFinalized.Store(height)
	}
	l.metrics.SetRetryQueue(l.queue.Len())
}

func (l *live) drainQueue(ctx context.Context) {
	heights := l.queue.Drain()
	if len(heights) == 0 {
		return
	}
	l.logger.Info("retrying heights with pending ledger data", zap.Int("count", len(heights)))
	finalized := l.lastFinalized.Load()
	for _, height := range heights {
		res, err := l.importer.Import(ctx, height, model.WriteOptions{Finalized: height <= finalized})
		switch {
		case err != nil:
			l.logger.Warn("retry height failed", zap.Uint64("height", height), zap.Error(err))
			l.queue.Add(height)
		case res.LedgerPending:
			l.queue.Add(height)
		}
	}
	l.metrics.SetRetryQueue(l.queue.Len())
}
