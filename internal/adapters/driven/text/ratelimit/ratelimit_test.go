package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

type countingExtractor struct {
	calls  int
	closed bool
}

func (c *countingExtractor) ExtractText(_ context.Context, _ domain.Document) (string, error) {
	c.calls++
	return "text", nil
}

func (c *countingExtractor) Close() error {
	c.closed = true
	return nil
}

func TestRateLimiter_RespectsBurst(t *testing.T) {
	r := NewRateLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 2})

	assert.True(t, r.limiter.Allow())
	assert.True(t, r.limiter.Allow())
	assert.False(t, r.limiter.Allow())
}

func TestRateLimiter_Unlimited(t *testing.T) {
	r := NewRateLimiter(Config{})

	for i := 0; i < 100; i++ {
		require.NoError(t, r.Wait(context.Background()))
	}
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	r := NewRateLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})
	require.True(t, r.limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, r.Wait(ctx))
}

func TestExtractor_DelegatesAndCloses(t *testing.T) {
	next := &countingExtractor{}
	e := Wrap(next, Config{RequestsPerSecond: 1000, BurstSize: 5})

	for i := 0; i < 3; i++ {
		got, err := e.ExtractText(context.Background(), domain.Document{})
		require.NoError(t, err)
		assert.Equal(t, "text", got)
	}
	require.NoError(t, e.Close())

	assert.Equal(t, 3, next.calls)
	assert.True(t, next.closed)
}

func TestExtractor_CancelledContextSkipsCall(t *testing.T) {
	next := &countingExtractor{}
	e := Wrap(next, Config{RequestsPerSecond: 0.001, BurstSize: 1})
	require.True(t, e.limiter.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ExtractText(ctx, domain.Document{})
	assert.Error(t, err)
	assert.Equal(t, 0, next.calls)
}
