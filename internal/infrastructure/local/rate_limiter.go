package local

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DealerRateLimiter is the in-process fallback when redis is not configured:
// one token bucket per dealer, refilling limit tokens per window.
type DealerRateLimiter struct {
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func NewDealerRateLimiter(limit int64, window time.Duration) *DealerRateLimiter {
	return &DealerRateLimiter{
		limit:   rate.Limit(float64(limit) / window.Seconds()),
		burst:   int(limit),
		buckets: make(map[string]*rate.Limiter),
	}
}

func (l *DealerRateLimiter) Allow(_ context.Context, dealerID string) (bool, error) {
	l.mu.Lock()
	bucket, found := l.buckets[dealerID]
	if !found {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets[dealerID] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow(), nil
}
