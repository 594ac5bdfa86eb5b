// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memocache provides a small in-memory TTL cache with lazy
// expiry on read and a periodic background sweep.
package memocache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value      any
	insertedAt time.Time
	ttl        time.Duration
}

func (e entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.insertedAt) > e.ttl
}

// Cache is a thread-safe string-keyed cache. Every entry carries its
// own TTL; expired entries are dropped lazily on read and periodically
// by a background sweeper.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	defaultTTL time.Duration
	flight     singleflight.Group

	done      chan struct{}
	closeOnce sync.Once

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// New creates a cache. defaultTTL applies to entries stored without an
// explicit TTL; zero means entries never expire by default. When
// sweepInterval is positive a background goroutine evicts expired
// entries on that cadence until Close is called.
func New(defaultTTL, sweepInterval time.Duration) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		done:       make(chan struct{}),
		now:        time.Now,
	}
	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}
	return c
}

// Set stores value under key. A non-positive ttl falls back to the
// cache's default TTL. Storing resets the entry's insertion time.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, insertedAt: c.now(), ttl: ttl}
}

// Get returns the live value under key. An expired entry is evicted on
// the spot and reported as a miss, so readers never see stale values
// regardless of sweep timing.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if cur, still := c.entries[key]; still && cur.expired(c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Flush removes every entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, including any expired ones
// the sweeper has not reached yet.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Do returns the cached value under key, or computes it with fn, stores
// it with ttl and returns it. Concurrent calls for the same missing key
// share one fn execution.
func (c *Cache) Do(key string, ttl time.Duration, fn func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.flight.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return nil, err
		}
		c.Set(key, v, ttl)
		return v, nil
	})
	return v, err
}

// Close stops the background sweeper. The cache remains usable; only
// periodic eviction stops.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Cache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep collects expired keys under the read lock and deletes under the
// write lock, so a large scan never blocks readers.
func (c *Cache) sweep() {
	now := c.now()
	c.mu.RLock()
	var expired []string
	for key, e := range c.entries {
		if e.expired(now) {
			expired = append(expired, key)
		}
	}
	c.mu.RUnlock()
	if len(expired) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range expired {
		if e, ok := c.entries[key]; ok && e.expired(now) {
			delete(c.entries, key)
		}
	}
}
