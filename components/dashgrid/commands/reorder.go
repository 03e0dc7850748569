package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
)

// ReorderDashboardInput contains the reorder payload: the desired visual
// order of the visible widgets.
type ReorderDashboardInput struct {
	User       dashgrid.UserContext `json:"user"`
	OrderedIDs []string             `json:"ordered_ids"`
}

type reorderService interface {
	ReorderDashboard(ctx context.Context, user dashgrid.UserContext, orderedVisibleIDs []string) ([]dashgrid.WidgetPlacement, error)
}

// ReorderDashboardCommand wraps Service.ReorderDashboard.
type ReorderDashboardCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderDashboardCommand builds the command.
func NewReorderDashboardCommand(service reorderService, telemetry Telemetry) *ReorderDashboardCommand {
	return &ReorderDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderDashboardInput] = (*ReorderDashboardCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderDashboardCommand) Execute(ctx context.Context, msg ReorderDashboardInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	if _, err := c.service.ReorderDashboard(ctx, msg.User, msg.OrderedIDs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashgrid.command.reorder", map[string]any{
		"user":  msg.User.UserID,
		"count": len(msg.OrderedIDs),
	})
	return nil
}
