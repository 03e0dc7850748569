package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
)

// ToggleWidgetInput identifies the widget whose hidden flag flips.
type ToggleWidgetInput struct {
	User     dashgrid.UserContext `json:"user"`
	WidgetID string               `json:"widget_id"`
}

type toggleService interface {
	ToggleWidget(ctx context.Context, user dashgrid.UserContext, widgetID string) ([]dashgrid.WidgetPlacement, error)
}

// ToggleWidgetCommand wraps Service.ToggleWidget. The widget stays a member
// of the collection so it can be restored later.
type ToggleWidgetCommand struct {
	service   toggleService
	telemetry Telemetry
}

// NewToggleWidgetCommand builds the command.
func NewToggleWidgetCommand(service toggleService, telemetry Telemetry) *ToggleWidgetCommand {
	return &ToggleWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleWidgetInput] = (*ToggleWidgetCommand)(nil)

// Execute flips the hidden flag.
func (c *ToggleWidgetCommand) Execute(ctx context.Context, msg ToggleWidgetInput) error {
	if c.service == nil {
		return errors.New("toggle command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("toggle command requires widget id")
	}
	if _, err := c.service.ToggleWidget(ctx, msg.User, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashgrid.command.toggle", map[string]any{
		"user":      msg.User.UserID,
		"widget_id": msg.WidgetID,
	})
	return nil
}
