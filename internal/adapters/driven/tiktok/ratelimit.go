package tiktok

import (
	"context"

	"golang.org/x/time/rate"
)

// The creator-info endpoint allows 20 requests per minute per token.
// The client itself stays unthrottled; services gate their calls
// through a limiter instead.
const (
	creatorInfoPerMinute = 20
	creatorInfoBurst     = 1
)

// CreatorInfoLimiter paces creator-info queries under the provider's
// per-token limit using a token bucket.
type CreatorInfoLimiter struct {
	limiter *rate.Limiter
}

// NewCreatorInfoLimiter creates a limiter tuned to the provider's
// 20/min cap.
func NewCreatorInfoLimiter() *CreatorInfoLimiter {
	return &CreatorInfoLimiter{
		limiter: rate.NewLimiter(rate.Limit(creatorInfoPerMinute)/60, creatorInfoBurst),
	}
}

// Wait blocks until a request can be made without exceeding the limit.
func (l *CreatorInfoLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow checks if a request can be made immediately without blocking.
func (l *CreatorInfoLimiter) Allow() bool {
	return l.limiter.Allow()
}
