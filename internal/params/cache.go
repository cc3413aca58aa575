package params

import (
	"sync"

	"github.com/roach88/deploykit/internal/schema"
)

type cacheEntry struct {
	set *SpecSet
	err error
}

// Cache memoizes camelCase spec sets per class name for the lifetime of the
// process. Registries are read-only after start-up, so entries never go
// stale.
type Cache struct {
	builder *Builder

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache creates a cache in front of b.
func NewCache(b *Builder) *Cache {
	return &Cache{builder: b, entries: make(map[string]cacheEntry)}
}

// Get returns the camelCase spec set of cls, building it on first use.
// Callers receive their own copy.
func (c *Cache) Get(cls *schema.Class) (*SpecSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cls.Name]
	if !ok {
		set, err := c.builder.Build(cls)
		if err == nil {
			set = set.AsCamelCase()
		}
		e = cacheEntry{set: set, err: err}
		c.entries[cls.Name] = e
	}
	if e.err != nil {
		return nil, e.err
	}
	return e.set.Clone(), nil
}

// Len returns the number of cached classes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
