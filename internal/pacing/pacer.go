// Package pacing spaces outbound provider calls so video platform and
// language model endpoints do not throttle or block the pipeline.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between calls sharing it. The zero value
// and a nil *Pacer never wait.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// New returns a pacer allowing one call per interval. An interval of zero or
// less disables pacing.
func New(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{}
	}
	return &Pacer{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

// Interval reports the configured spacing between calls.
func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	return p.interval
}
