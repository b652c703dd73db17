// Package pacing spaces outbound API requests.
//
// The validation API applies account-level rate limits, and bulk runs can
// involve hundreds of requests. A Fixed pacer enforces a caller-supplied
// minimum interval between successive requests using a token bucket, and
// honors context cancellation while waiting.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Fixed enforces a fixed minimum interval between requests.
type Fixed struct {
	bucket *rate.Limiter
}

// NewFixed creates a pacer with the given interval. A non-positive interval
// returns nil, which callers treat as pacing disabled.
func NewFixed(interval time.Duration) *Fixed {
	if interval <= 0 {
		return nil
	}
	return &Fixed{
		// Burst of one: the first request goes through immediately, every
		// subsequent one waits out the interval.
		bucket: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the interval since the previous request has elapsed, or
// the context is done.
func (f *Fixed) Wait(ctx context.Context) error {
	return f.bucket.Wait(ctx)
}
