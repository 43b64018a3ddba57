package omnivore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_ZeroConfigFallsBack(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{})

	assert.True(t, limiter.Allow())
}

func TestRateLimiter_Allow_FreshLimiter(t *testing.T) {
	limiter := NewRateLimiter(DefaultRateLimit)

	assert.True(t, limiter.Allow())
}

func TestRateLimiter_RecordRateLimitError_Backoff(t *testing.T) {
	limiter := NewRateLimiter(DefaultRateLimit)

	limiter.RecordRateLimitError(120)

	assert.False(t, limiter.Allow(), "requests are denied during backoff")
}

func TestRateLimiter_RecordRateLimitError_DefaultBackoff(t *testing.T) {
	limiter := NewRateLimiter(DefaultRateLimit)

	// Zero or negative retry hints still start a backoff
	limiter.RecordRateLimitError(0)

	assert.False(t, limiter.Allow())
}

func TestRateLimiter_Wait_ContextCancelledDuringBackoff(t *testing.T) {
	limiter := NewRateLimiter(DefaultRateLimit)
	limiter.RecordRateLimitError(300)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_Wait_AllowsWithinBudget(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
}
