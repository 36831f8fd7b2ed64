package ratelimit

import (
	"context"
	"time"
)

// Policy is a sliding window: at most Limit hits per Window for one key.
type Policy struct {
	Limit  int
	Window time.Duration
}

func (p Policy) Disabled() bool {
	return p.Limit <= 0 || p.Window <= 0
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	GetRemaining(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}
