package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the admission point for model calls made with one API key.
// A nil *Limiter admits everything.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter allows perMinute calls per minute with the given burst.
// perMinute <= 0 disables limiting.
func NewLimiter(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)}
}

// Wait blocks until a call is admitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}
