package dashgrid

import (
	"sync"
	"time"
)

// LayoutCache memoizes fetched layouts per user so every dashboard render
// does not hit the gateway. Saving a layout invalidates the entry, which
// re-establishes the gateway as the source of truth on the next read.
type LayoutCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedLayout
}

type cachedLayout struct {
	placements []WidgetPlacement
	expires    time.Time
}

// NewLayoutCache builds a cache with the provided TTL. A non-positive TTL
// disables caching entirely.
func NewLayoutCache(ttl time.Duration) *LayoutCache {
	return &LayoutCache{
		ttl:     ttl,
		entries: make(map[string]cachedLayout),
	}
}

// Get returns the cached layout for the user, if fresh.
func (c *LayoutCache) Get(user UserContext) ([]WidgetPlacement, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	key := user.StorageKey()
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.Invalidate(user)
		}
		return nil, false
	}
	return clonePlacements(entry.placements), true
}

// Set stores a layout snapshot for the user.
func (c *LayoutCache) Set(user UserContext, placements []WidgetPlacement) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[user.StorageKey()] = cachedLayout{
		placements: clonePlacements(placements),
		expires:    time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Invalidate drops the user's cached layout.
func (c *LayoutCache) Invalidate(user UserContext) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, user.StorageKey())
	c.mu.Unlock()
}
