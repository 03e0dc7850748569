package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
)

// SaveLayoutInput carries the full placement collection to persist.
type SaveLayoutInput struct {
	User    dashgrid.UserContext       `json:"user"`
	Widgets []dashgrid.WidgetPlacement `json:"widgets"`
}

type saveService interface {
	SaveLayout(ctx context.Context, user dashgrid.UserContext, placements []dashgrid.WidgetPlacement) error
}

// SaveLayoutCommand wraps Service.SaveLayout.
type SaveLayoutCommand struct {
	service   saveService
	telemetry Telemetry
}

// NewSaveLayoutCommand builds the command.
func NewSaveLayoutCommand(service saveService, telemetry Telemetry) *SaveLayoutCommand {
	return &SaveLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutInput] = (*SaveLayoutCommand)(nil)

// Execute persists the collection. A joined error from the per-widget
// fan-out propagates unchanged so callers can surface partial failures.
func (c *SaveLayoutCommand) Execute(ctx context.Context, msg SaveLayoutInput) error {
	if c.service == nil {
		return errors.New("save command requires service")
	}
	if msg.User.UserID == "" {
		return errors.New("save command requires user id")
	}
	if err := c.service.SaveLayout(ctx, msg.User, msg.Widgets); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashgrid.command.save", map[string]any{
		"user":  msg.User.UserID,
		"count": len(msg.Widgets),
	})
	return nil
}
