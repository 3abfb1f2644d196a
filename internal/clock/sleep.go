// Package clock provides context-aware waiting helpers.
package clock

import (
	"context"
	"math/rand/v2"
	"time"
)

// SleepFunc waits for a duration or until ctx is done. Services take one so tests can skip waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

// SleepWithContext waits for d or returns ctx.Err() if the context ends first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Jitter spreads d uniformly over [d*(1-fraction/2), d*(1+fraction/2)).
func Jitter(d time.Duration, fraction float64) time.Duration {
	if d <= 0 || fraction <= 0 {
		return d
	}
	spread := float64(d) * fraction
	return time.Duration(float64(d) - spread/2 + rand.Float64()*spread)
}
