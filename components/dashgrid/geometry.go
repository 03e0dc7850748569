package dashgrid

import "math"

// Point is a position in the host surface's coordinate space. The engine
// only compares distances; it never interprets units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Corners returns the four corners in top-left, top-right, bottom-left,
// bottom-right order.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X, r.Y + r.Height},
		{r.X + r.Width, r.Y + r.Height},
	}
}

// Contains reports whether the point falls inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Translate returns the rect shifted by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func distSq(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// cornerDistance scores how close two rects are by comparing corresponding
// corners and taking the nearest pair.
func cornerDistance(a, b Rect) float64 {
	ac := a.Corners()
	bc := b.Corners()
	best := math.Inf(1)
	for i := range ac {
		if d := distSq(ac[i], bc[i]); d < best {
			best = d
		}
	}
	return best
}

// Tile associates a rendered widget with its on-screen bounds.
type Tile struct {
	WidgetID string `json:"widget_id"`
	Bounds   Rect   `json:"bounds"`
}

// closestTile resolves the drop target for a dragged rect: the candidate
// whose corresponding corner is nearest the dragged tile's corner. Tiles
// matching excludeID (the dragged widget itself) are skipped. Returns -1
// when candidates is empty or only contains the dragged tile.
func closestTile(dragged Rect, candidates []Tile, excludeID string) int {
	best := -1
	bestDist := math.Inf(1)
	for i, tile := range candidates {
		if tile.WidgetID == excludeID {
			continue
		}
		if d := cornerDistance(dragged, tile.Bounds); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
