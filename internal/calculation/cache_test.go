package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withFrozenClock(t *testing.T, start time.Time) func(d time.Duration) {
	t.Helper()
	current := start
	SetNowFunc(func() time.Time { return current })
	t.Cleanup(func() { SetNowFunc(time.Now) })
	return func(d time.Duration) { current = current.Add(d) }
}

func TestCache_RoundTrip(t *testing.T) {
	withFrozenClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCache[string](10)

	c.Set("k", "v", time.Minute)
	got, hit := c.Get("k")
	assert.True(t, hit)
	assert.Equal(t, "v", got)
	assert.True(t, c.Has("k"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_MissReturnsZeroValue(t *testing.T) {
	c := NewCache[int](10)
	got, hit := c.Get("absent")
	assert.False(t, hit)
	assert.Zero(t, got)
}

func TestCache_TTLExpiry(t *testing.T) {
	advance := withFrozenClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCache[string](10)

	c.Set("k", "v", time.Minute)
	advance(59 * time.Second)
	_, hit := c.Get("k")
	assert.True(t, hit, "entry still live just before the TTL")

	advance(2 * time.Second)
	_, hit = c.Get("k")
	assert.False(t, hit, "entry expired past the TTL")
	assert.Equal(t, 0, c.Len(), "lazy expiry deletes the entry")
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	advance := withFrozenClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCache[string](10)

	c.Set("k", "v", 0)
	advance(365 * 24 * time.Hour)
	_, hit := c.Get("k")
	assert.True(t, hit)
}

func TestCache_LRUEviction(t *testing.T) {
	withFrozenClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCache[int](3)

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Set("c", 3, 0)

	// Touch "a" so "b" becomes least recently used.
	_, _ = c.Get("a")

	c.Set("d", 4, 0)
	assert.False(t, c.Has("b"), "least-recently-used entry evicted")
	assert.True(t, c.Has("a"))
	assert.True(t, c.Has("c"))
	assert.True(t, c.Has("d"))
	assert.Equal(t, 3, c.Len())
}

func TestCache_SetExistingKeyUpdatesInPlace(t *testing.T) {
	withFrozenClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCache[int](2)

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Set("a", 10, 0)

	got, _ := c.Get("a")
	assert.Equal(t, 10, got)
	assert.Equal(t, 2, c.Len(), "update does not grow the cache")
	assert.True(t, c.Has("b"), "update does not evict")
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := NewCache[int](10)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	assert.False(t, c.Has("a"))
	c.Delete("a") // deleting twice is harmless

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has("b"))
}

func TestCache_Sweep(t *testing.T) {
	advance := withFrozenClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCache[int](10)

	c.Set("short", 1, time.Second)
	c.Set("long", 2, time.Hour)
	c.Set("forever", 3, 0)

	advance(time.Minute)
	removed := c.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Has("long"))
	assert.True(t, c.Has("forever"))
}

func TestCache_DefaultCapacity(t *testing.T) {
	withFrozenClock(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewCache[int](0)
	for i := 0; i < DefaultCacheCapacity+20; i++ {
		c.Set(fmt.Sprintf("k%d", i), i, 0)
	}
	assert.Equal(t, DefaultCacheCapacity, c.Len())
}
