package dashgrid

import (
	"context"
	"fmt"
	"io"
)

// ControllerOptions wires the service and an optional renderer/provider
// source into a controller.
type ControllerOptions struct {
	Service   *Service
	Renderer  Renderer
	Providers *Catalog
	Telemetry Telemetry
}

// Controller produces render-ready grid plans and HTML for transports.
type Controller struct {
	opts ControllerOptions
}

// NewController builds a controller.
func NewController(opts ControllerOptions) *Controller {
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Controller{opts: opts}
}

// Plan loads the user's layout and builds the grid plan with provider data
// attached. Provider failures degrade to tiles without data; they never
// fail the grid.
func (c *Controller) Plan(ctx context.Context, user UserContext) (GridPlan, error) {
	if c.opts.Service == nil {
		return GridPlan{}, errMissingGateway
	}
	placements, err := c.opts.Service.LoadLayout(ctx, user)
	if err != nil {
		return GridPlan{}, err
	}
	plan := BuildGrid(placements, c.opts.Service.Catalog())
	c.attachProviderData(ctx, user, placements, &plan)
	return plan, nil
}

// RenderHTML renders the grid plan through the configured template
// renderer.
func (c *Controller) RenderHTML(ctx context.Context, user UserContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return fmt.Errorf("dashgrid: renderer is not configured")
	}
	plan, err := c.Plan(ctx, user)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render("grid", map[string]any{
		"plan": plan,
		"user": user,
	}, out)
	return err
}

func (c *Controller) attachProviderData(ctx context.Context, user UserContext, placements []WidgetPlacement, plan *GridPlan) {
	if c.opts.Providers == nil {
		return
	}
	index := make(map[string]WidgetPlacement, len(placements))
	for _, p := range placements {
		index[p.WidgetID] = p
	}
	for ri := range plan.Rows {
		for ti := range plan.Rows[ri].Tiles {
			tile := &plan.Rows[ri].Tiles[ti]
			provider, ok := c.opts.Providers.Provider(tile.WidgetID)
			if !ok {
				continue
			}
			data, err := provider.Fetch(ctx, WidgetContext{
				Placement: index[tile.WidgetID],
				User:      user,
			})
			if err != nil {
				c.opts.Telemetry.Record(ctx, "dashgrid.widget.provider_error", map[string]any{
					"widget_id": tile.WidgetID,
					"error":     err.Error(),
				})
				continue
			}
			tile.Data = data
		}
	}
}
