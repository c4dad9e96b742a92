package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestMemory(max int) (*Memory, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return newMemory(max, time.Minute, clock.Now), clock
}

func TestMemory_AllowsUnderLimit(t *testing.T) {
	m, _ := newTestMemory(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := m.Allow(ctx, "1.1.1.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i+1)
		assert.Equal(t, 3-(i+1), res.Remaining)
	}
}

func TestMemory_BlocksOverLimit(t *testing.T) {
	m, clock := newTestMemory(2)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "1.1.1.1")
	clock.Advance(10 * time.Second)
	_, _ = m.Allow(ctx, "1.1.1.1")

	res, err := m.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, 50*time.Second, res.RetryAfter)
}

func TestMemory_RejectedRequestsAreNotCounted(t *testing.T) {
	m, clock := newTestMemory(1)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "k")
	for i := 0; i < 5; i++ {
		res, _ := m.Allow(ctx, "k")
		assert.False(t, res.Allowed)
	}

	clock.Advance(time.Minute + time.Second)
	res, _ := m.Allow(ctx, "k")
	assert.True(t, res.Allowed)
}

func TestMemory_KeysAreIndependent(t *testing.T) {
	m, _ := newTestMemory(1)
	ctx := context.Background()

	res, _ := m.Allow(ctx, "a")
	assert.True(t, res.Allowed)
	res, _ = m.Allow(ctx, "b")
	assert.True(t, res.Allowed)
	res, _ = m.Allow(ctx, "a")
	assert.False(t, res.Allowed)
}

func TestMemory_WindowSlides(t *testing.T) {
	m, clock := newTestMemory(2)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "k")
	clock.Advance(30 * time.Second)
	_, _ = m.Allow(ctx, "k")
	clock.Advance(31 * time.Second)

	res, _ := m.Allow(ctx, "k")
	assert.True(t, res.Allowed, "first request has left the window")
	res, _ = m.Allow(ctx, "k")
	assert.False(t, res.Allowed)
}

func TestMemory_CleanupDropsIdleKeys(t *testing.T) {
	m, clock := newTestMemory(5)
	ctx := context.Background()

	_, _ = m.Allow(ctx, "idle")
	clock.Advance(2 * time.Minute)
	_, _ = m.Allow(ctx, "active")

	m.cleanup()

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.NotContains(t, m.clients, "idle")
	assert.Contains(t, m.clients, "active")
}

func TestMemory_StopIsIdempotent(t *testing.T) {
	m := NewMemory(1, time.Minute)
	m.Stop()
	m.Stop()
}
