package layoutapi

import (
	"context"
	"sync"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
)

// MockClient implements dashgrid.LayoutGateway with in-memory state, for
// tests and local demos. Each user's collection is keyed by the same
// clientId:userId namespace the real service uses.
type MockClient struct {
	mu      sync.RWMutex
	layouts map[string][]dashgrid.WidgetPlacement

	// SaveErr, when set, fails every SaveWidget call with this error.
	SaveErr error
}

var _ dashgrid.LayoutGateway = (*MockClient)(nil)

// NewMockClient builds an empty mock gateway.
func NewMockClient() *MockClient {
	return &MockClient{layouts: make(map[string][]dashgrid.WidgetPlacement)}
}

// Seed loads a collection for a user.
func (c *MockClient) Seed(user dashgrid.UserContext, placements []dashgrid.WidgetPlacement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layouts[user.StorageKey()] = append([]dashgrid.WidgetPlacement(nil), placements...)
}

// FetchLayout returns the stored collection.
func (c *MockClient) FetchLayout(_ context.Context, user dashgrid.UserContext) ([]dashgrid.WidgetPlacement, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stored := c.layouts[user.StorageKey()]
	out := make([]dashgrid.WidgetPlacement, len(stored))
	copy(out, stored)
	return out, nil
}

// SaveWidget upserts one placement into the stored collection.
func (c *MockClient) SaveWidget(_ context.Context, user dashgrid.UserContext, placement dashgrid.WidgetPlacement) error {
	if c.SaveErr != nil {
		return c.SaveErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := user.StorageKey()
	stored := c.layouts[key]
	for i := range stored {
		if stored[i].WidgetID == placement.WidgetID {
			stored[i] = placement
			c.layouts[key] = stored
			return nil
		}
	}
	c.layouts[key] = append(stored, placement)
	return nil
}
