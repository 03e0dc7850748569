package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
)

type planController interface {
	Plan(ctx context.Context, user dashgrid.UserContext) (dashgrid.GridPlan, error)
}

// GridQuery produces the render-ready grid plan for a user.
type GridQuery struct {
	controller planController
}

// NewGridQuery builds the query.
func NewGridQuery(controller planController) *GridQuery {
	return &GridQuery{controller: controller}
}

var _ gocommand.Querier[dashgrid.UserContext, dashgrid.GridPlan] = (*GridQuery)(nil)

// Query builds the grid plan, provider data attached.
func (q *GridQuery) Query(ctx context.Context, user dashgrid.UserContext) (dashgrid.GridPlan, error) {
	return q.controller.Plan(ctx, user)
}
