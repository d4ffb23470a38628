package cache

import (
	"container/list"
	"sync"
	"time"
)

type Config struct {
	MaxSize int
	TTL     time.Duration
}

// LRU is a fixed-capacity cache with optional per-entry TTL. Reads refresh
// recency; expired entries are dropped lazily on access and in bulk via
// CleanupExpired.
type LRU[K comparable, V any] struct {
	capacity int
	ttl      time.Duration

	mu      sync.Mutex
	byKey   map[K]*list.Element
	recency *list.List

	hits   int64
	misses int64
}

type entry[K comparable, V any] struct {
	key      K
	value    V
	storedAt time.Time
}

func New[K comparable, V any](cfg Config) *LRU[K, V] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 100
	}
	return &LRU[K, V]{
		capacity: cfg.MaxSize,
		ttl:      cfg.TTL,
		byKey:    make(map[K]*list.Element),
		recency:  list.New(),
	}
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, exists := c.byKey[key]
	if !exists {
		c.misses++
		return zero, false
	}

	e := el.Value.(*entry[K, V])
	if c.expired(e, time.Now()) {
		c.remove(el)
		c.misses++
		return zero, false
	}

	c.recency.MoveToFront(el)
	c.hits++
	return e.value, true
}

func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, exists := c.byKey[key]; exists {
		e := el.Value.(*entry[K, V])
		e.value = value
		e.storedAt = time.Now()
		c.recency.MoveToFront(el)
		return
	}

	el := c.recency.PushFront(&entry[K, V]{key: key, value: value, storedAt: time.Now()})
	c.byKey[key] = el

	if c.recency.Len() > c.capacity {
		if oldest := c.recency.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

func (c *LRU[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, exists := c.byKey[key]; exists {
		c.remove(el)
	}
}

func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byKey = make(map[K]*list.Element)
	c.recency = list.New()
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byKey)
}

// Stats reports hit/miss counters accumulated since creation.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *LRU[K, V]) CleanupExpired() int {
	if c.ttl <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	// Entries age from the back of the recency list; Set refreshes storedAt,
	// so the first fresh entry ends the scan.
	for el := c.recency.Back(); el != nil; {
		e := el.Value.(*entry[K, V])
		if !c.expired(e, now) {
			break
		}
		prev := el.Prev()
		c.remove(el)
		removed++
		el = prev
	}
	return removed
}

func (c *LRU[K, V]) expired(e *entry[K, V], now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.storedAt) > c.ttl
}

func (c *LRU[K, V]) remove(el *list.Element) {
	e := el.Value.(*entry[K, V])
	delete(c.byKey, e.key)
	c.recency.Remove(el)
}
