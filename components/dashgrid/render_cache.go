package dashgrid

import (
	"sync"
	"time"
)

// RenderCache is an in-memory TTL cache for rendered chart HTML so
// repeated provider fetches are cheap.
type RenderCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedRender
}

type cachedRender struct {
	html    string
	expires time.Time
}

// NewRenderCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewRenderCache(ttl time.Duration) *RenderCache {
	return &RenderCache{
		ttl:     ttl,
		entries: make(map[string]cachedRender),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *RenderCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

func (c *RenderCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return "", false
	}
	return entry.html, true
}

func (c *RenderCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedRender{
		html:    html,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}
