package pushcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(capacity int, window time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return New(Config{Capacity: capacity, Window: window, Now: clock.Now}), clock
}

func TestRecentWithinWindow(t *testing.T) {
	c, _ := newTestCache(8, 3*time.Second)

	assert.False(t, c.Recent("u1", "fp-a"))
	c.Record("u1", "fp-a")
	assert.True(t, c.Recent("u1", "fp-a"))
}

func TestRecentExpiresAfterWindow(t *testing.T) {
	c, clock := newTestCache(8, 3*time.Second)

	c.Record("u1", "fp-a")
	clock.Advance(3 * time.Second)

	assert.False(t, c.Recent("u1", "fp-a"))
	// Expired entries are evicted on sight.
	assert.Equal(t, 0, c.Len())
}

func TestRecentJustInsideWindow(t *testing.T) {
	c, clock := newTestCache(8, 3*time.Second)

	c.Record("u1", "fp-a")
	clock.Advance(3*time.Second - time.Millisecond)

	assert.True(t, c.Recent("u1", "fp-a"))
}

func TestFingerprintMismatchIsNotRecent(t *testing.T) {
	c, _ := newTestCache(8, 3*time.Second)

	c.Record("u1", "fp-a")

	// A different payload must push even inside the window, and the old entry
	// stays until overwritten.
	assert.False(t, c.Recent("u1", "fp-b"))
	assert.True(t, c.Recent("u1", "fp-a"))
}

func TestRecordOverwritesFingerprint(t *testing.T) {
	c, _ := newTestCache(8, 3*time.Second)

	c.Record("u1", "fp-a")
	c.Record("u1", "fp-b")

	assert.False(t, c.Recent("u1", "fp-a"))
	assert.True(t, c.Recent("u1", "fp-b"))
	assert.Equal(t, 1, c.Len())
}

func TestCapacityEvictsOldest(t *testing.T) {
	c, _ := newTestCache(3, time.Minute)

	for i := 0; i < 4; i++ {
		c.Record(fmt.Sprintf("u%d", i), "fp")
	}

	assert.Equal(t, 3, c.Len())
	assert.False(t, c.Recent("u0", "fp"))
	assert.True(t, c.Recent("u3", "fp"))
}

func TestRecentRefreshesLRUOrder(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	c.Record("u1", "fp")
	c.Record("u2", "fp")

	// Touch u1 so u2 becomes eviction candidate.
	assert.True(t, c.Recent("u1", "fp"))
	c.Record("u3", "fp")

	assert.True(t, c.Recent("u1", "fp"))
	assert.False(t, c.Recent("u2", "fp"))
}

func TestDefaultsApplied(t *testing.T) {
	c := New(Config{})
	c.Record("u1", "fp")
	assert.True(t, c.Recent("u1", "fp"))
}
