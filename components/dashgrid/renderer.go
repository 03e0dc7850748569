package dashgrid

import "io"

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// GridTile is one rendered widget cell.
type GridTile struct {
	WidgetID string     `json:"widget_id"`
	Title    string     `json:"title"`
	Category string     `json:"category,omitempty"`
	Span     int        `json:"span"`
	Position int        `json:"position"`
	Editable bool       `json:"editable"`
	Missing  bool       `json:"missing"`
	Data     WidgetData `json:"data,omitempty"`
}

// GridRow groups tiles that share one 12-column row.
type GridRow struct {
	Tiles []GridTile `json:"tiles"`
	Span  int        `json:"span"`
}

// GridPlan is the render model for a placement collection: visible widgets
// in position order, packed into rows.
type GridPlan struct {
	Rows []GridRow `json:"rows"`
}

// Tiles flattens the plan back into a single ordered slice.
func (p GridPlan) Tiles() []GridTile {
	var tiles []GridTile
	for _, row := range p.Rows {
		tiles = append(tiles, row.Tiles...)
	}
	return tiles
}

// BuildGrid packs non-deleted placements, in position order, into rows of
// a 12-column grid. Scale is clamped to 1..12 here, not by the engine. A
// widget id with no catalog entry renders as a visible fallback tile
// instead of failing the whole grid.
func BuildGrid(placements []WidgetPlacement, catalog CatalogLookup) GridPlan {
	var plan GridPlan
	row := GridRow{}
	for _, placement := range candidatePool(placements, true) {
		span := placement.Scale
		if span < 1 {
			span = 1
		}
		if span > GridColumns {
			span = GridColumns
		}
		tile := GridTile{
			WidgetID: placement.WidgetID,
			Span:     span,
			Position: placement.Position,
			Editable: placement.Editable,
		}
		if entry, ok := catalog.Entry(placement.WidgetID); ok {
			tile.Title = entry.Name
			tile.Category = entry.Category
		} else {
			tile.Title = "Widget not found"
			tile.Missing = true
		}
		if row.Span+span > GridColumns && len(row.Tiles) > 0 {
			plan.Rows = append(plan.Rows, row)
			row = GridRow{}
		}
		row.Tiles = append(row.Tiles, tile)
		row.Span += span
	}
	if len(row.Tiles) > 0 {
		plan.Rows = append(plan.Rows, row)
	}
	return plan
}
