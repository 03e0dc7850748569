package dashgrid

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// PointerKind classifies normalized drag-session events.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerSource tags the input modality that produced an event. The state
// machine treats both identically; the tag exists for telemetry.
type PointerSource int

const (
	SourceMouse PointerSource = iota
	SourceTouch
)

// PointerEvent is the normalized form of mouse and touch input. Hosts feed
// raw toolkit events through the Mouse*/Touch* constructors so a single
// state machine serves both modalities.
type PointerEvent struct {
	Kind   PointerKind
	Source PointerSource
	Point  Point
}

func MouseDown(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerDown, Source: SourceMouse, Point: Point{x, y}}
}

func MouseMove(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMove, Source: SourceMouse, Point: Point{x, y}}
}

func MouseUp(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerUp, Source: SourceMouse, Point: Point{x, y}}
}

func TouchStart(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerDown, Source: SourceTouch, Point: Point{x, y}}
}

func TouchMove(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMove, Source: SourceTouch, Point: Point{x, y}}
}

func TouchEnd(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerUp, Source: SourceTouch, Point: Point{x, y}}
}

// DragState is the controller's session state.
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
)

// DragControllerOptions configures a controller instance. The dashboard
// grid and the visibility picker each run their own instance: the grid
// excludes hidden widgets from the draggable set, the picker drags over the
// full collection so hidden widgets can be pulled back into visible order.
type DragControllerOptions struct {
	Store      *LayoutStore
	DropHidden bool
	OnReorder  func(ctx context.Context, placements []WidgetPlacement)
	Telemetry  Telemetry
}

// DragController runs one drag session at a time over the rendered tiles.
// A session starts on pointer-down over a tile, tracks the closest-corner
// drop target on every move, and commits a reconciled reorder on drop.
type DragController struct {
	opts DragControllerOptions

	mu          sync.Mutex
	state       DragState
	locked      bool
	tiles       []Tile
	sessionID   string
	originIndex int
	targetIndex int
	grabOffset  Point
	dragged     Rect
}

// NewDragController builds a controller in the Idle state.
func NewDragController(opts DragControllerOptions) *DragController {
	if opts.Store == nil {
		opts.Store = NewLayoutStore()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &DragController{opts: opts, originIndex: -1, targetIndex: -1}
}

// SetTiles replaces the tile bounds the controller resolves drop targets
// against. Tiles must be supplied in rendered order. An in-flight session
// holds indexes into the previous slice, so it is abandoned.
func (c *DragController) SetTiles(tiles []Tile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	c.tiles = append([]Tile(nil), tiles...)
}

// Lock puts the controller in view-only mode: listeners stay attached but
// events produce no state transitions. An in-flight session is abandoned.
func (c *DragController) Lock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locked = true
	c.reset()
}

// Unlock re-enables drag sessions.
func (c *DragController) Unlock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locked = false
}

// Locked reports whether the layout is locked.
func (c *DragController) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// State returns the current session state.
func (c *DragController) State() DragState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Handle feeds one normalized event through the state machine. It reports
// whether the event produced a state change or a committed reorder. All
// reconciliation triggered by a drop completes before Handle returns, so
// the store is consistent with the drop by the next render.
func (c *DragController) Handle(ctx context.Context, ev PointerEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return false
	}
	switch ev.Kind {
	case PointerDown:
		return c.begin(ctx, ev)
	case PointerMove:
		return c.track(ev)
	case PointerUp:
		return c.drop(ctx)
	}
	return false
}

func (c *DragController) begin(ctx context.Context, ev PointerEvent) bool {
	if c.state != StateIdle {
		return false
	}
	origin := -1
	for i, tile := range c.tiles {
		if tile.Bounds.Contains(ev.Point) {
			origin = i
			break
		}
	}
	if origin < 0 {
		return false
	}
	c.state = StateDragging
	c.sessionID = uuid.NewString()
	c.originIndex = origin
	c.targetIndex = origin
	bounds := c.tiles[origin].Bounds
	c.grabOffset = Point{X: ev.Point.X - bounds.X, Y: ev.Point.Y - bounds.Y}
	c.dragged = bounds
	c.opts.Telemetry.Record(ctx, "dashgrid.drag.start", map[string]any{
		"session_id": c.sessionID,
		"widget_id":  c.tiles[origin].WidgetID,
		"source":     ev.Source,
	})
	return true
}

func (c *DragController) track(ev PointerEvent) bool {
	if c.state != StateDragging {
		return false
	}
	c.dragged = Rect{
		X:      ev.Point.X - c.grabOffset.X,
		Y:      ev.Point.Y - c.grabOffset.Y,
		Width:  c.dragged.Width,
		Height: c.dragged.Height,
	}
	originID := c.tiles[c.originIndex].WidgetID
	if idx := closestTile(c.dragged, c.tiles, originID); idx >= 0 {
		c.targetIndex = idx
	}
	return true
}

func (c *DragController) drop(ctx context.Context) bool {
	if c.state != StateDragging {
		return false
	}
	origin, target := c.originIndex, c.targetIndex
	sessionID := c.sessionID
	c.reset()
	if target < 0 || target == origin {
		c.opts.Telemetry.Record(ctx, "dashgrid.drag.cancel", map[string]any{
			"session_id": sessionID,
		})
		return false
	}

	ids := make([]string, len(c.tiles))
	for i, tile := range c.tiles {
		ids[i] = tile.WidgetID
	}
	order := MoveID(ids, origin, target)
	snapshot := c.opts.Store.Snapshot()
	reconciled := Reconcile(snapshot, order, ReconcileOptions{
		DropHidden: c.opts.DropHidden,
	})
	if len(reconciled) != len(snapshot) {
		// Stale tiles: the reconciler degraded to its candidate pool, which
		// must not replace the full working copy.
		c.opts.Telemetry.Record(ctx, "dashgrid.drag.stale", map[string]any{
			"session_id": sessionID,
		})
		return false
	}
	c.opts.Store.ApplyReorder(reconciled)
	if c.opts.OnReorder != nil {
		c.opts.OnReorder(ctx, clonePlacements(reconciled))
	}
	c.opts.Telemetry.Record(ctx, "dashgrid.drag.drop", map[string]any{
		"session_id": sessionID,
		"widget_id":  ids[origin],
		"from":       origin,
		"to":         target,
	})
	return true
}

// reset requires c.mu to be held.
func (c *DragController) reset() {
	c.state = StateIdle
	c.sessionID = ""
	c.originIndex = -1
	c.targetIndex = -1
	c.dragged = Rect{}
	c.grabOffset = Point{}
}
