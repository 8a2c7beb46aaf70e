// internal/cache/cache.go

// Package cache is a small in-process TTL cache. It stands in for Redis:
// the recommendation feed and the status-change undo window both live here.
package cache

import (
	"sync"
	"time"
)

type item struct {
	value      interface{}
	expiration time.Time
}

// Cache is a thread-safe TTL key/value store. A background goroutine sweeps
// expired entries once a minute until Stop is called.
type Cache struct {
	mu     sync.RWMutex
	data   map[string]*item
	stopCh chan struct{}
}

func New() *Cache {
	c := &Cache{
		data:   make(map[string]*item),
		stopCh: make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Set stores value under key. A ttl of 0 means no expiration.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiration time.Time
	if ttl > 0 {
		expiration = time.Now().Add(ttl)
	}
	c.data[key] = &item{value: value, expiration: expiration}
}

// Get returns the value under key, or false when the key is absent or
// expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, exists := c.data[key]
	if !exists {
		return nil, false
	}
	if !it.expiration.IsZero() && time.Now().After(it.expiration) {
		return nil, false
	}
	return it.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

func (c *Cache) Exists(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Stop ends the background sweeper.
func (c *Cache) Stop() {
	close(c.stopCh)
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *Cache) removeExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, it := range c.data {
		if !it.expiration.IsZero() && now.After(it.expiration) {
			delete(c.data, key)
		}
	}
}
