// Package batcher accumulates items in memory and hands them to a sink in rate-limited batches.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once the batcher has been stopped.
var ErrStopped = errors.New("batcher stopped")

// Config controls when buffered items are flushed.
type Config struct {
	// Size flushes as soon as this many items are buffered.
	Size int
	// Interval flushes whatever is buffered on every tick.
	Interval time.Duration
	// RPS bounds the number of flushes per second.
	RPS int
}

// Sink receives flushed batches. The slice is reused after the call returns.
type Sink[T any] func(context.Context, []T) error

// Batcher buffers items and flushes them by size or interval.
type Batcher[T any] struct {
	sink    Sink[T]
	cfg     Config
	items   chan T
	limiter ratelimit.Limiter
	logger  *zap.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	stop     chan struct{}
}

// New constructs a Batcher. Zero config fields fall back to small sane values.
func New[T any](logger *zap.Logger, sink Sink[T], cfg Config) *Batcher[T] {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 10
	}
	return &Batcher[T]{
		sink:    sink,
		cfg:     cfg,
		items:   make(chan T, cfg.Size*2),
		limiter: ratelimit.New(cfg.RPS),
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

// Start launches the flushing loop. It exits when ctx is done or Stop is called.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.loop(ctx)
}

// Stop flushes what is buffered and waits for the loop to exit. It is safe to call twice.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues an item, blocking while the buffer is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) loop(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.Size)
	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		b.limiter.Take()
		if err := b.sink(ctx, buf); err != nil {
			b.logger.Error("batch flush failed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}
	drain := func() {
		for {
			select {
			case item := <-b.items:
				buf = append(buf, item)
			default:
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			flush(context.WithoutCancel(ctx))
			return
		case <-b.stop:
			drain()
			flush(ctx)
			return
		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.cfg.Size {
				flush(ctx)
			}
		case <-ticker.C:
			flush(ctx)
		}
	}
}
