package dashgrid

import (
	"fmt"
	"sort"
	"sync"
)

// CatalogHook lets packages register catalog entries/providers during init().
type CatalogHook func(c *Catalog) error

var (
	globalHookMu sync.Mutex
	globalHooks  []CatalogHook
)

// RegisterCatalogHook registers a hook executed against new catalogs.
func RegisterCatalogHook(h CatalogHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// CatalogEntry describes one renderable widget type: its display name, its
// intrinsic defaults, and the schema its settings must satisfy.
type CatalogEntry struct {
	Code         string         `json:"code" yaml:"code"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category     string         `json:"category,omitempty" yaml:"category,omitempty"`
	Removable    bool           `json:"removable" yaml:"removable"`
	DefaultScale int            `json:"default_scale,omitempty" yaml:"default_scale,omitempty"`
	Schema       map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Catalog is the fixed mapping from widget codes to catalog entries and
// data providers. Pure lookup: it holds no per-user state.
type Catalog struct {
	mu        sync.RWMutex
	entries   map[string]CatalogEntry
	providers map[string]Provider
	order     []string
}

// NewCatalog builds a catalog seeded with the built-in back-office widgets
// and applies global hooks.
func NewCatalog() *Catalog {
	c := &Catalog{
		entries:   map[string]CatalogEntry{},
		providers: map[string]Provider{},
	}
	c.registerDefaults()
	_ = c.ApplyHooks()
	return c
}

func (c *Catalog) registerDefaults() {
	for _, entry := range DefaultCatalogEntries() {
		_ = c.Register(entry)
		if provider, ok := defaultProviders[entry.Code]; ok {
			_ = c.RegisterProvider(entry.Code, provider)
		}
	}
}

// ApplyHooks executes registered catalog hooks.
func (c *Catalog) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(c); err != nil {
			return err
		}
	}
	return nil
}

// Register stores widget metadata. Re-registering a code replaces the
// entry but keeps its catalog order.
func (c *Catalog) Register(entry CatalogEntry) error {
	if entry.Code == "" {
		return fmt.Errorf("catalog entry code is required")
	}
	if entry.DefaultScale < 1 || entry.DefaultScale > GridColumns {
		entry.DefaultScale = GridColumns
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[entry.Code]; !exists {
		c.order = append(c.order, entry.Code)
	}
	c.entries[entry.Code] = entry
	return nil
}

// RegisterProvider associates a data provider with an entry.
func (c *Catalog) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return fmt.Errorf("catalog entry code is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[code]; !ok {
		return fmt.Errorf("catalog entry %s not found", code)
	}
	c.providers[code] = provider
	return nil
}

// Entry fetches a catalog entry by code.
func (c *Catalog) Entry(code string) (CatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[code]
	return entry, ok
}

// Provider fetches a data provider by code.
func (c *Catalog) Provider(code string) (Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	provider, ok := c.providers[code]
	return provider, ok
}

// Entries returns all registered entries in registration order.
func (c *Catalog) Entries() []CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := make([]CatalogEntry, 0, len(c.entries))
	for _, code := range c.order {
		entries = append(entries, c.entries[code])
	}
	return entries
}

// Codes returns registered widget codes sorted lexically.
func (c *Catalog) Codes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	codes := make([]string, 0, len(c.entries))
	for code := range c.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DefaultPlacements produces the fallback layout used when a user has no
// persisted customization yet: every entry visible, in catalog order.
func (c *Catalog) DefaultPlacements() []WidgetPlacement {
	entries := c.Entries()
	placements := make([]WidgetPlacement, 0, len(entries))
	for i, entry := range entries {
		placements = append(placements, WidgetPlacement{
			WidgetID: entry.Code,
			Scale:    entry.DefaultScale,
			Position: i + 1,
			Editable: entry.Removable,
		})
	}
	return placements
}
