package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Memory is a size-bounded LRU with optional expiry.
type Memory struct {
	mu  sync.Mutex
	cap int
	ttl time.Duration
	ll  *list.List
	m   map[string]*list.Element
	now func() time.Time
}

type memoryEntry struct {
	key     string
	value   []byte
	expires time.Time
}

// NewMemory creates an LRU holding up to capacity entries. A zero ttl keeps
// entries until they are evicted.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Memory{
		cap: capacity,
		ttl: ttl,
		ll:  list.New(),
		m:   make(map[string]*list.Element, capacity),
		now: time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.m[key]
	if !ok {
		return nil, false
	}
	entry := e.Value.(*memoryEntry)
	if !entry.expires.IsZero() && c.now().After(entry.expires) {
		c.ll.Remove(e)
		delete(c.m, key)
		return nil, false
	}
	c.ll.MoveToFront(e)
	return entry.value, true
}

func (c *Memory) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}

	if e, ok := c.m[key]; ok {
		entry := e.Value.(*memoryEntry)
		entry.value = value
		entry.expires = expires
		c.ll.MoveToFront(e)
		return nil
	}

	c.m[key] = c.ll.PushFront(&memoryEntry{key: key, value: value, expires: expires})
	if c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(*memoryEntry).key)
		}
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
