package dashgrid

import (
	"context"
	"errors"
	"io"
	"testing"
)

type fixedCatalog struct {
	entries map[string]CatalogEntry
}

func (c fixedCatalog) Entry(code string) (CatalogEntry, bool) {
	entry, ok := c.entries[code]
	return entry, ok
}

func (c fixedCatalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry)
	}
	return out
}

func (c fixedCatalog) DefaultPlacements() []WidgetPlacement { return nil }

func TestBuildGridPacksRows(t *testing.T) {
	catalog := fixedCatalog{entries: map[string]CatalogEntry{
		"a": {Code: "a", Name: "A"},
		"b": {Code: "b", Name: "B"},
		"c": {Code: "c", Name: "C"},
	}}
	placements := []WidgetPlacement{
		{WidgetID: "a", Scale: 6, Position: 1},
		{WidgetID: "b", Scale: 6, Position: 2},
		{WidgetID: "c", Scale: 4, Position: 3},
	}
	plan := BuildGrid(placements, catalog)
	if len(plan.Rows) != 2 {
		t.Fatalf("expected two rows, got %#v", plan)
	}
	if len(plan.Rows[0].Tiles) != 2 || plan.Rows[0].Span != 12 {
		t.Fatalf("first row should hold a+b at full span: %#v", plan.Rows[0])
	}
	if len(plan.Rows[1].Tiles) != 1 || plan.Rows[1].Tiles[0].WidgetID != "c" {
		t.Fatalf("second row should hold c: %#v", plan.Rows[1])
	}
}

func TestBuildGridSkipsHiddenAndClampsSpan(t *testing.T) {
	catalog := fixedCatalog{entries: map[string]CatalogEntry{
		"a": {Code: "a", Name: "A"},
		"b": {Code: "b", Name: "B"},
	}}
	placements := []WidgetPlacement{
		{WidgetID: "a", Scale: 40, Position: 1},
		{WidgetID: "b", Scale: 0, Position: 2, Deleted: true},
	}
	plan := BuildGrid(placements, catalog)
	tiles := plan.Tiles()
	if len(tiles) != 1 {
		t.Fatalf("hidden widget should not render: %#v", tiles)
	}
	if tiles[0].Span != GridColumns {
		t.Fatalf("span should clamp to %d, got %d", GridColumns, tiles[0].Span)
	}
}

func TestBuildGridFallbackTileForUnknownWidget(t *testing.T) {
	catalog := fixedCatalog{entries: map[string]CatalogEntry{}}
	placements := []WidgetPlacement{{WidgetID: "ghost", Scale: 4, Position: 1}}
	plan := BuildGrid(placements, catalog)
	tiles := plan.Tiles()
	if len(tiles) != 1 {
		t.Fatalf("unknown widget must still render a tile: %#v", plan)
	}
	if !tiles[0].Missing || tiles[0].Title != "Widget not found" {
		t.Fatalf("expected fallback tile, got %#v", tiles[0])
	}
}

func TestControllerPlanAttachesProviderData(t *testing.T) {
	gateway := newFakeGateway()
	user := testUser()
	gateway.layouts[user.StorageKey()] = []WidgetPlacement{
		{WidgetID: "rental.widget.reservations_today", Position: 1, Scale: 6},
	}
	catalog := NewCatalog()
	service := NewService(Options{Gateway: gateway, Catalog: catalog})
	controller := NewController(ControllerOptions{Service: service, Providers: catalog})

	plan, err := controller.Plan(context.Background(), user)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	tiles := plan.Tiles()
	if len(tiles) != 1 {
		t.Fatalf("expected one tile, got %#v", plan)
	}
	if tiles[0].Data == nil {
		t.Fatalf("expected provider data on tile: %#v", tiles[0])
	}
}

func TestControllerPlanSurvivesProviderFailure(t *testing.T) {
	gateway := newFakeGateway()
	user := testUser()
	gateway.layouts[user.StorageKey()] = []WidgetPlacement{
		{WidgetID: "broken.widget", Position: 1, Scale: 4},
	}
	catalog := NewCatalog()
	if err := catalog.Register(CatalogEntry{Code: "broken.widget", Name: "Broken", DefaultScale: 4}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_ = catalog.RegisterProvider("broken.widget", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, errors.New("upstream down")
	}))
	telemetry := &recordingTelemetry{}
	service := NewService(Options{Gateway: gateway, Catalog: catalog})
	controller := NewController(ControllerOptions{Service: service, Providers: catalog, Telemetry: telemetry})

	plan, err := controller.Plan(context.Background(), user)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	tiles := plan.Tiles()
	if len(tiles) != 1 || tiles[0].Data != nil {
		t.Fatalf("failed provider should leave the tile dataless: %#v", tiles)
	}
	found := false
	for _, event := range telemetry.names() {
		if event == "dashgrid.widget.provider_error" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected provider error telemetry, got %v", telemetry.names())
	}
}

type stubRenderer struct {
	name string
	data any
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.name = name
	r.data = data
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte("<div>ok</div>"))
	}
	return "<div>ok</div>", nil
}

func TestControllerRenderHTML(t *testing.T) {
	gateway := newFakeGateway()
	user := testUser()
	gateway.layouts[user.StorageKey()] = []WidgetPlacement{{WidgetID: "a", Position: 1, Scale: 6}}
	service := NewService(Options{Gateway: gateway})
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{Service: service, Renderer: renderer})

	if err := controller.RenderHTML(context.Background(), user, io.Discard); err != nil {
		t.Fatalf("RenderHTML returned error: %v", err)
	}
	if renderer.name != "grid" {
		t.Fatalf("expected grid template, got %q", renderer.name)
	}
}
