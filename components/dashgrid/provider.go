package dashgrid

import "context"

// Provider fetches the data required to render a widget tile.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// WidgetContext contains the metadata providers need.
type WidgetContext struct {
	Placement WidgetPlacement
	User      UserContext
	Settings  map[string]any
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any
