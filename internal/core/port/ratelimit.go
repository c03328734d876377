package port

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// RateDecision is the outcome of one fixed-window check.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimiterPort interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateDecision, error)
}
