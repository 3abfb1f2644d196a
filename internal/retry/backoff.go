// Package retry runs connectivity-bound operations with bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/clock"
	"go.uber.org/zap"
)

// Config defines retry behavior.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Jitter is the fraction of each delay that is randomized. Zero disables it.
	Jitter float64
}

// DefaultConfig returns the settings used at process start and on subscription re-establishment.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  8,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
		Jitter:       0.3,
	}
}

type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// Retrier runs operations with a Config.
type Retrier struct {
	cfg    Config
	logger *zap.Logger
	sleep  clock.SleepFunc
}

// New constructs a Retrier.
func New(cfg Config, logger *zap.Logger) *Retrier {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &Retrier{cfg: cfg, logger: logger, sleep: clock.SleepWithContext}
}

// Do runs fn until it succeeds, returns a Permanent error, or attempts are exhausted.
func (r *Retrier) Do(ctx context.Context, operation string, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", operation, err)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 1 {
				r.logger.Info("operation succeeded after retries",
					zap.String("operation", operation),
					zap.Int("attempts", attempt))
			}
			return nil
		}

		var perm permanentError
		if errors.As(lastErr, &perm) {
			return fmt.Errorf("%s: %w", operation, perm.err)
		}
		if attempt == r.cfg.MaxAttempts {
			break
		}

		delay := r.delay(attempt)
		r.logger.Warn("operation failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.cfg.MaxAttempts),
			zap.Duration("retry_in", delay),
			zap.Error(lastErr))

		if err := r.sleep(ctx, delay); err != nil {
			return fmt.Errorf("%s: %w", operation, err)
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operation, r.cfg.MaxAttempts, lastErr)
}

func (r *Retrier) delay(attempt int) time.Duration {
	d := float64(r.cfg.InitialDelay) * math.Pow(r.cfg.Multiplier, float64(attempt-1))
	if ceiling := float64(r.cfg.MaxDelay); ceiling > 0 && d > ceiling {
		d = ceiling
	}
	return clock.Jitter(time.Duration(d), r.cfg.Jitter)
}
