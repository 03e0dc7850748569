package dashgrid

import "context"

// GridColumns is the column count of the responsive dashboard grid.
const GridColumns = 12

// WidgetPlacement is the per-user record of one widget on the dashboard:
// where it sits, how wide it renders, and whether it is currently hidden.
type WidgetPlacement struct {
	WidgetID string `json:"widget_id"`
	Scale    int    `json:"scale"`
	Position int    `json:"position"`
	Deleted  bool   `json:"is_deleted"`
	Editable bool   `json:"is_editable"`
}

// UserContext identifies the back-office user whose layout is being edited.
// It is produced by the host application's auth/session provider.
type UserContext struct {
	ClientID    string `json:"client_id"`
	UserID      string `json:"user_id"`
	AccessToken string `json:"-"`
	Locale      string `json:"locale,omitempty"`
}

// StorageKey returns the clientId:userId namespace shared by per-user
// device state (dismissed notices, cached layouts).
func (u UserContext) StorageKey() string {
	return u.ClientID + ":" + u.UserID
}

// LayoutGateway is the persistence boundary for per-user layouts. Saves are
// issued one widget at a time; there is no batch upsert on the wire.
type LayoutGateway interface {
	FetchLayout(ctx context.Context, user UserContext) ([]WidgetPlacement, error)
	SaveWidget(ctx context.Context, user UserContext, placement WidgetPlacement) error
}

// CatalogLookup resolves widget codes to catalog entries.
type CatalogLookup interface {
	Entry(code string) (CatalogEntry, bool)
	Entries() []CatalogEntry
	DefaultPlacements() []WidgetPlacement
}

// RefreshHook notifies transports (REST/WebSocket) about layout changes.
type RefreshHook interface {
	LayoutUpdated(ctx context.Context, event LayoutEvent) error
}

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// LayoutEvent describes a layout change transports might care about.
type LayoutEvent struct {
	User    UserContext       `json:"user"`
	Reason  string            `json:"reason"`
	Widgets []WidgetPlacement `json:"widgets,omitempty"`
}

// clonePlacements copies a placement slice so callers never alias the
// working copy held by a store or cache.
func clonePlacements(placements []WidgetPlacement) []WidgetPlacement {
	if placements == nil {
		return nil
	}
	out := make([]WidgetPlacement, len(placements))
	copy(out, placements)
	return out
}
