package loader

import (
	"sync"

	"github.com/fennec-run/fennec/internal/domain/modules"
)

// Cache maps canonical specifiers to resolved modules. It supports
// concurrent readers and exclusive writers. Entries persist until Clear
// or loader teardown; they are never invalidated when the underlying
// file changes.
//
// Population is not atomic with the miss check: two concurrent first-time
// loads of the same specifier may both miss, both fetch, and both insert.
// Last write wins, which wastes work but cannot corrupt state. Returned
// modules share their Dependencies backing array with the cache entry, so
// callers must treat them as read-only.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]modules.ResolvedModule
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]modules.ResolvedModule)}
}

// Get returns the cached module for specifier, if any.
func (c *Cache) Get(specifier string) (modules.ResolvedModule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[specifier]
	return m, ok
}

// Insert stores a module under its canonical specifier, replacing any
// previous entry.
func (c *Cache) Insert(specifier string, m modules.ResolvedModule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[specifier] = m
}

// Contains reports whether specifier is cached.
func (c *Cache) Contains(specifier string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[specifier]
	return ok
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]modules.ResolvedModule)
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
