package health

import (
	"context"
	"math/rand/v2"
	"time"
)

// Delay pauses before a recommendation is derived. It returns early with the
// context error when ctx is done.
type Delay func(ctx context.Context) error

// NewRandomDelay returns a Delay sleeping a uniform duration in [minDelay, maxDelay].
// It exists for load-testing demos and is not installed unless configured.
func NewRandomDelay(minDelay, maxDelay time.Duration) Delay {
	return func(ctx context.Context) error {
		d := minDelay
		if span := maxDelay - minDelay; span > 0 {
			d += time.Duration(rand.Int64N(int64(span) + 1))
		}
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
}
