package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
)

type layoutService interface {
	LoadLayout(ctx context.Context, user dashgrid.UserContext) ([]dashgrid.WidgetPlacement, error)
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[dashgrid.UserContext, []dashgrid.WidgetPlacement] = (*LayoutQuery)(nil)

// Query resolves the placement collection for the user.
func (q *LayoutQuery) Query(ctx context.Context, user dashgrid.UserContext) ([]dashgrid.WidgetPlacement, error) {
	return q.service.LoadLayout(ctx, user)
}
