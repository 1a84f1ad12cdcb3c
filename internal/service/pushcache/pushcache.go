package pushcache

// Package pushcache holds the short-lived dedup state for entitlement pushes.
// It is process-local: under a multi-process deployment each process keeps its
// own window and duplicate pushes can recur. Pushes are idempotent, so that
// only costs extra remote calls.

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a small in-memory LRU keyed by user ID, remembering the
// fingerprint and time of the last entitlement push. Capacity-bounded so the
// map cannot grow with process lifetime.
// Concurrency: methods are safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	cap    int
	window time.Duration
	ll     *list.List               // front = most-recently used
	items  map[string]*list.Element // userID -> element
	now    func() time.Time         // injectable clock for tests
}

type cacheEntry struct {
	userID      string
	fingerprint string
	pushedAt    time.Time
}

// Config groups constructor options.
type Config struct {
	// Capacity bounds the number of tracked users.
	Capacity int
	// Window is the debounce span during which an identical push is redundant.
	Window time.Duration
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Capacity: 4096, Window: 3 * time.Second, Now: time.Now}
}

// New creates a new Cache with the given config.
func New(cfg Config) *Cache {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 4096
	}
	window := cfg.Window
	if window <= 0 {
		window = 3 * time.Second
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Cache{
		cap:    capacity,
		window: window,
		ll:     list.New(),
		items:  make(map[string]*list.Element, capacity),
		now:    nowFn,
	}
}

// Recent reports whether an identical payload was already pushed for userID
// within the debounce window. Entries older than the window are evicted on
// sight.
func (c *Cache) Recent(userID, fingerprint string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.items[userID]
	if !found {
		return false
	}
	ent := el.Value.(*cacheEntry)
	if c.now().Sub(ent.pushedAt) >= c.window {
		c.removeElement(el)
		return false
	}
	if ent.fingerprint != fingerprint {
		return false
	}
	c.ll.MoveToFront(el)
	return true
}

// Record notes that a push for userID with the given fingerprint was just
// attempted. Called regardless of push success so a failing push does not
// hot-loop retries within the window.
func (c *Cache) Record(userID, fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, found := c.items[userID]; found {
		ent := el.Value.(*cacheEntry)
		ent.fingerprint = fingerprint
		ent.pushedAt = c.now()
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(&cacheEntry{userID: userID, fingerprint: fingerprint, pushedAt: c.now()})
	c.items[userID] = el
	for c.ll.Len() > c.cap {
		if oldest := c.ll.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Len returns the number of tracked users.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *Cache) removeElement(el *list.Element) {
	c.ll.Remove(el)
	ent := el.Value.(*cacheEntry)
	delete(c.items, ent.userID)
}
