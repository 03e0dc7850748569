package dashgrid

import (
	"context"
	"reflect"
	"sync"
	"testing"
)

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTelemetry) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func rowTiles(ids ...string) []Tile {
	tiles := make([]Tile, len(ids))
	for i, id := range ids {
		tiles[i] = Tile{WidgetID: id, Bounds: Rect{X: float64(i * 120), Y: 0, Width: 100, Height: 100}}
	}
	return tiles
}

func TestDragSessionReordersOnDrop(t *testing.T) {
	ctx := context.Background()
	store := NewLayoutStore()
	store.Load([]WidgetPlacement{
		{WidgetID: "a", Position: 1},
		{WidgetID: "b", Position: 2},
		{WidgetID: "c", Position: 3},
	})
	var reordered []WidgetPlacement
	controller := NewDragController(DragControllerOptions{
		Store:      store,
		DropHidden: true,
		OnReorder: func(_ context.Context, placements []WidgetPlacement) {
			reordered = placements
		},
	})
	controller.SetTiles(rowTiles("a", "b", "c"))

	if !controller.Handle(ctx, MouseDown(10, 10)) {
		t.Fatalf("pointer-down over tile a should start a session")
	}
	if controller.State() != StateDragging {
		t.Fatalf("expected dragging state")
	}
	if !controller.Handle(ctx, MouseMove(250, 15)) {
		t.Fatalf("move during a session should be consumed")
	}
	if !controller.Handle(ctx, MouseUp(250, 15)) {
		t.Fatalf("drop on a new target should commit")
	}
	if controller.State() != StateIdle {
		t.Fatalf("controller should return to idle after drop")
	}
	if got := idsOf(store.Snapshot()); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Fatalf("store order after drop: %v", got)
	}
	if reordered == nil {
		t.Fatalf("OnReorder was not invoked")
	}
}

func TestDragTouchEventsBehaveLikeMouse(t *testing.T) {
	ctx := context.Background()
	store := NewLayoutStore()
	store.Load([]WidgetPlacement{
		{WidgetID: "a", Position: 1},
		{WidgetID: "b", Position: 2},
	})
	controller := NewDragController(DragControllerOptions{Store: store, DropHidden: true})
	controller.SetTiles(rowTiles("a", "b"))

	if !controller.Handle(ctx, TouchStart(130, 10)) {
		t.Fatalf("touch-start over tile b should start a session")
	}
	controller.Handle(ctx, TouchMove(10, 10))
	if !controller.Handle(ctx, TouchEnd(10, 10)) {
		t.Fatalf("touch-end should commit the reorder")
	}
	if got := idsOf(store.Snapshot()); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("store order after touch drag: %v", got)
	}
}

func TestDragDownOutsideTilesIsIgnored(t *testing.T) {
	ctx := context.Background()
	controller := NewDragController(DragControllerOptions{})
	controller.SetTiles(rowTiles("a"))
	if controller.Handle(ctx, MouseDown(500, 500)) {
		t.Fatalf("pointer-down outside every tile should not start a session")
	}
	if controller.State() != StateIdle {
		t.Fatalf("state should remain idle")
	}
}

func TestDragDropWithoutTargetChangeIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := NewLayoutStore()
	store.Load([]WidgetPlacement{
		{WidgetID: "a", Position: 1},
		{WidgetID: "b", Position: 2},
	})
	telemetry := &recordingTelemetry{}
	controller := NewDragController(DragControllerOptions{
		Store:      store,
		DropHidden: true,
		Telemetry:  telemetry,
	})
	controller.SetTiles(rowTiles("a", "b"))

	controller.Handle(ctx, MouseDown(10, 10))
	if controller.Handle(ctx, MouseUp(12, 12)) {
		t.Fatalf("drop on the origin tile should not commit")
	}
	if got := idsOf(store.Snapshot()); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("store changed on cancelled drop: %v", got)
	}
	events := telemetry.names()
	if len(events) != 2 || events[1] != "dashgrid.drag.cancel" {
		t.Fatalf("expected start+cancel events, got %v", events)
	}
}

func TestDragLockedControllerIgnoresEvents(t *testing.T) {
	ctx := context.Background()
	store := NewLayoutStore()
	store.Load(placementsFixture())
	controller := NewDragController(DragControllerOptions{Store: store, DropHidden: true})
	controller.SetTiles(rowTiles("X", "Y", "Z"))

	controller.Lock()
	if !controller.Locked() {
		t.Fatalf("expected controller locked")
	}
	if controller.Handle(ctx, MouseDown(10, 10)) {
		t.Fatalf("locked controller must ignore pointer-down")
	}
	controller.Unlock()
	if !controller.Handle(ctx, MouseDown(10, 10)) {
		t.Fatalf("unlock should re-enable sessions")
	}
}

func TestDragLockAbandonsSession(t *testing.T) {
	ctx := context.Background()
	store := NewLayoutStore()
	store.Load(placementsFixture())
	controller := NewDragController(DragControllerOptions{Store: store, DropHidden: true})
	controller.SetTiles(rowTiles("X", "Y", "Z"))

	controller.Handle(ctx, MouseDown(10, 10))
	controller.Lock()
	if controller.State() != StateIdle {
		t.Fatalf("lock should abandon the in-flight session")
	}
	controller.Unlock()
	if controller.Handle(ctx, MouseUp(250, 10)) {
		t.Fatalf("drop without session should be ignored")
	}
	if got := idsOf(store.Snapshot()); !reflect.DeepEqual(got, []string{"X", "Y", "Z"}) {
		t.Fatalf("abandoned session must not change the store: %v", got)
	}
}

func TestDragTileSwapMidSessionAbandonsSession(t *testing.T) {
	ctx := context.Background()
	store := NewLayoutStore()
	store.Load([]WidgetPlacement{
		{WidgetID: "a", Position: 1},
		{WidgetID: "b", Position: 2},
		{WidgetID: "c", Position: 3},
	})
	controller := NewDragController(DragControllerOptions{Store: store, DropHidden: true})
	controller.SetTiles(rowTiles("a", "b", "c"))

	if !controller.Handle(ctx, MouseDown(250, 10)) {
		t.Fatalf("pointer-down over tile c should start a session")
	}
	// A host re-render mid-session shrinks the tile list below the
	// session's captured origin index.
	controller.SetTiles(rowTiles("a"))
	if controller.State() != StateIdle {
		t.Fatalf("replacing tiles must abandon the in-flight session")
	}
	if controller.Handle(ctx, MouseMove(10, 10)) {
		t.Fatalf("move after tile swap should be ignored")
	}
	if controller.Handle(ctx, MouseUp(10, 10)) {
		t.Fatalf("drop after tile swap should be ignored")
	}
	if got := idsOf(store.Snapshot()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("abandoned session must not change the store: %v", got)
	}
}

func TestDragStaleTilesDoNotShrinkCollection(t *testing.T) {
	ctx := context.Background()
	store := NewLayoutStore()
	store.Load([]WidgetPlacement{
		{WidgetID: "a", Position: 1},
		{WidgetID: "b", Position: 2},
		{WidgetID: "c", Position: 3},
		{WidgetID: "d", Position: 4, Deleted: true},
	})
	telemetry := &recordingTelemetry{}
	controller := NewDragController(DragControllerOptions{
		Store:      store,
		DropHidden: true,
		Telemetry:  telemetry,
	})
	// Tiles lag behind the store: widget c is missing.
	controller.SetTiles(rowTiles("a", "b"))

	controller.Handle(ctx, MouseDown(10, 10))
	controller.Handle(ctx, MouseMove(130, 10))
	if controller.Handle(ctx, MouseUp(130, 10)) {
		t.Fatalf("stale drop should not commit")
	}
	if store.Len() != 4 {
		t.Fatalf("stale drop dropped placements: %#v", store.Snapshot())
	}
	events := telemetry.names()
	if len(events) == 0 || events[len(events)-1] != "dashgrid.drag.stale" {
		t.Fatalf("expected stale event, got %v", events)
	}
}
