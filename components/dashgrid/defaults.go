package dashgrid

import "context"

// DefaultCatalogEntries returns the built-in back-office widget set.
func DefaultCatalogEntries() []CatalogEntry {
	return []CatalogEntry{
		{
			Code:         "rental.widget.vehicles_due_in",
			Name:         "Vehicles Due In",
			Description:  "Agreements with vehicles returning today",
			Category:     "agreements",
			Removable:    true,
			DefaultScale: 6,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
				},
				"additionalProperties": false,
			},
		},
		{
			Code:         "rental.widget.reservations_today",
			Name:         "Reservations Today",
			Description:  "Reservations scheduled to start today",
			Category:     "reservations",
			Removable:    true,
			DefaultScale: 6,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
				},
				"additionalProperties": false,
			},
		},
		{
			Code:         "rental.widget.open_agreements",
			Name:         "Open Agreements",
			Description:  "Currently checked-out agreements",
			Category:     "agreements",
			Removable:    true,
			DefaultScale: 4,
		},
		{
			Code:         "rental.widget.fleet_utilization",
			Name:         "Fleet Utilization",
			Description:  "On-rent share of the fleet by vehicle class",
			Category:     "charts",
			Removable:    true,
			DefaultScale: 8,
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"chart_type": map[string]any{
						"type":    "string",
						"enum":    []string{"bar", "line"},
						"default": "bar",
					},
					"title": map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		},
		{
			Code:         "rental.widget.overdue_vehicles",
			Name:         "Overdue Vehicles",
			Description:  "Vehicles past their expected return",
			Category:     "agreements",
			Removable:    false,
			DefaultScale: 4,
		},
		{
			Code:         "rental.widget.customer_search",
			Name:         "Customer Search",
			Description:  "Quick lookup across customers and drivers",
			Category:     "actions",
			Removable:    true,
			DefaultScale: 4,
		},
	}
}

var defaultProviders = map[string]Provider{
	"rental.widget.vehicles_due_in": ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"rows": []map[string]any{
				{"agreement": "AGR-20144", "vehicle": "Corolla · 7KDX012", "due": "14:00"},
				{"agreement": "AGR-20139", "vehicle": "RAV4 · 8PLM330", "due": "16:30"},
			},
		}, nil
	}),
	"rental.widget.reservations_today": ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"rows": []map[string]any{
				{"reservation": "RES-8812", "customer": "M. Okafor", "pickup": "09:15"},
				{"reservation": "RES-8815", "customer": "J. Laurent", "pickup": "11:00"},
				{"reservation": "RES-8820", "customer": "T. Nguyen", "pickup": "15:45"},
			},
		}, nil
	}),
	"rental.widget.open_agreements": ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{"count": 37, "with_payment_due": 5}, nil
	}),
	"rental.widget.fleet_utilization": NewFleetChartProvider(StaticFleetRepository{}),
	"rental.widget.overdue_vehicles": ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"rows": []map[string]any{
				{"agreement": "AGR-19871", "vehicle": "Sprinter · 3TRK884", "days_overdue": 2},
			},
		}, nil
	}),
	"rental.widget.customer_search": ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"actions": []map[string]any{
				{"label": "Find customer", "route": "/customers", "icon": "search"},
				{"label": "New reservation", "route": "/reservations/new", "icon": "calendar-plus"},
			},
		}, nil
	}),
}
