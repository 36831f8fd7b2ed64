package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter keeps the sliding window in process. It backs the login
// limiter when Redis is disabled and is not shared between replicas.
type MemoryRateLimiter struct {
	mu     sync.Mutex
	policy Policy
	hits   map[string][]time.Time
	now    func() time.Time
}

func NewMemoryRateLimiter(policy Policy) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		policy: policy,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.policy.Disabled() {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(key, now)
	allowed := len(recent) < l.policy.Limit
	l.hits[key] = append(recent, now)
	return allowed, nil
}

func (l *MemoryRateLimiter) GetRemaining(_ context.Context, key string) (int64, error) {
	if l.policy.Disabled() {
		return 0, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.policy.Limit - len(l.prune(key, l.now()))
	if remaining < 0 {
		remaining = 0
	}
	return int64(remaining), nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.hits, key)
	l.mu.Unlock()
	return nil
}

// prune drops hits outside the window. Callers hold mu.
func (l *MemoryRateLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.policy.Window)
	hits := l.hits[key]
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	recent := hits[i:]
	if len(recent) == 0 {
		delete(l.hits, key)
		return nil
	}
	l.hits[key] = recent
	return recent
}
