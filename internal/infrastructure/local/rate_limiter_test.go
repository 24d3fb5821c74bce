package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	limiter := NewDealerRateLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "Alice")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestBucketsAreIsolatedPerDealer(t *testing.T) {
	limiter := NewDealerRateLimiter(1, time.Minute)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "Alice")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "Alice")
	require.NoError(t, err)
	require.False(t, allowed)

	// Alice exhausting her bucket must not affect Bob.
	allowed, err = limiter.Allow(ctx, "Bob")
	require.NoError(t, err)
	assert.True(t, allowed)
}
