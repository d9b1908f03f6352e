package calculation

import (
	"container/list"
	"time"
)

// DefaultCacheCapacity bounds the effect cache when no capacity is given.
const DefaultCacheCapacity = 100

// DefaultCacheTTL is the entry lifetime used by the engine for effect
// results. Invalidation is key-based (scenario id + lastModified), so the
// TTL only bounds memory for abandoned keys.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
	ttl        time.Duration
}

func (e *cacheEntry[V]) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.insertedAt) > e.ttl
}

// Cache is a memoizing cache with TTL and LRU capacity eviction. Expiry is
// lazy: an expired entry is deleted on the Get or Has that observes it.
// Not safe for unsynchronized concurrent mutation; the engine runs on a
// single logical thread of control.
type Cache[V any] struct {
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

// NewCache creates a cache bounded to capacity entries; capacity <= 0
// selects the default.
func NewCache[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache[V]{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached value for key. An expired entry is deleted and
// reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	el, exists := c.entries[key]
	if !exists {
		return zero, false
	}
	entry := el.Value.(*cacheEntry[V])
	if entry.expired(nowFunc()) {
		c.remove(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return entry.value, true
}

// Set stores value under key with the given ttl (ttl <= 0 means no expiry).
// When the cache is full, the least-recently-used entry is evicted first.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if el, exists := c.entries[key]; exists {
		entry := el.Value.(*cacheEntry[V])
		entry.value = value
		entry.insertedAt = nowFunc()
		entry.ttl = ttl
		c.order.MoveToFront(el)
		return
	}
	if len(c.entries) >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
	el := c.order.PushFront(&cacheEntry[V]{
		key:        key,
		value:      value,
		insertedAt: nowFunc(),
		ttl:        ttl,
	})
	c.entries[key] = el
}

// Has reports whether key holds a live entry, without refreshing recency.
func (c *Cache[V]) Has(key string) bool {
	el, exists := c.entries[key]
	if !exists {
		return false
	}
	if el.Value.(*cacheEntry[V]).expired(nowFunc()) {
		c.remove(el)
		return false
	}
	return true
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	if el, exists := c.entries[key]; exists {
		c.remove(el)
	}
}

// Clear drops every entry.
func (c *Cache[V]) Clear() {
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int { return len(c.entries) }

// Sweep removes every expired entry. Expiry is lazy by default; callers
// MAY sweep periodically to bound memory for keys that are never read again.
func (c *Cache[V]) Sweep() int {
	now := nowFunc()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*cacheEntry[V]).expired(now) {
			c.remove(el)
			removed++
		}
		el = prev
	}
	return removed
}

func (c *Cache[V]) remove(el *list.Element) {
	entry := el.Value.(*cacheEntry[V])
	c.order.Remove(el)
	delete(c.entries, entry.key)
}
