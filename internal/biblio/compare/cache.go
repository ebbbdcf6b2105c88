package compare

import (
	"sync"
)

type cacheKey struct {
	value string
	opts  Options
}

type entry struct {
	normalised string
	tokens     []string
}

// Cache holds derived comparison keys for the lifetime of one conversion run.
// It is safe for use by the goroutines of that run.
type Cache struct {
	entries map[cacheKey]entry
	mu      sync.RWMutex
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]entry),
	}
}

func (c *Cache) lookup(s string, opts Options) entry {
	k := cacheKey{value: s, opts: opts}

	c.mu.RLock()
	e, exists := c.entries[k]
	c.mu.RUnlock()
	if exists {
		return e
	}

	normalised := normalise(s, opts)
	e = entry{
		normalised: normalised,
		tokens:     Tokenize(normalised),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = e
	return e
}

// Len reports how many keys have been derived so far.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
