package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, perSecond, perMinute int, ban time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(perSecond, perMinute, ban)
	rl.now = clock.now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiter_PerSecond(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(t, 3, 100, 10*time.Second)

	for range 3 {
		assert.True(t, rl.Allow("p1"))
	}
	assert.False(t, rl.Allow("p1"))
	assert.True(t, rl.IsBanned("p1"))
	// 其他 key 不受影响
	assert.True(t, rl.Allow("p2"))

	clock.advance(5 * time.Second)
	assert.False(t, rl.Allow("p1"))

	clock.advance(6 * time.Second)
	assert.False(t, rl.IsBanned("p1"))
	assert.True(t, rl.Allow("p1"))
}

func TestRateLimiter_PerMinute(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(t, 10, 5, time.Minute)

	for range 5 {
		assert.True(t, rl.Allow("ip"))
		clock.advance(2 * time.Second)
	}
	assert.False(t, rl.Allow("ip"))
}

func TestRateLimiter_CleanupAndForget(t *testing.T) {
	t.Parallel()
	rl, clock := newTestLimiter(t, 1, 10, time.Second)

	rl.Allow("idle")
	rl.Allow("gone")
	rl.Forget("gone")

	clock.advance(rateEntryTTL + time.Minute)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.entries)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(1, 1, time.Second)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
