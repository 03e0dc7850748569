package dashgrid

import (
	"context"
	"testing"
)

func TestCatalogRegistersBuiltins(t *testing.T) {
	catalog := NewCatalog()
	entry, ok := catalog.Entry("rental.widget.fleet_utilization")
	if !ok {
		t.Fatalf("expected built-in fleet utilization entry")
	}
	if entry.DefaultScale != 8 {
		t.Fatalf("unexpected default scale: %d", entry.DefaultScale)
	}
	if _, ok := catalog.Provider("rental.widget.fleet_utilization"); !ok {
		t.Fatalf("expected built-in provider")
	}
	overdue, ok := catalog.Entry("rental.widget.overdue_vehicles")
	if !ok || overdue.Removable {
		t.Fatalf("overdue vehicles should be pinned: %#v", overdue)
	}
}

func TestCatalogRegisterValidation(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.Register(CatalogEntry{}); err == nil {
		t.Fatalf("expected error for missing code")
	}
	if err := catalog.Register(CatalogEntry{Code: "x", Name: "X", DefaultScale: 40}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	entry, _ := catalog.Entry("x")
	if entry.DefaultScale != GridColumns {
		t.Fatalf("out-of-range scale should clamp to %d, got %d", GridColumns, entry.DefaultScale)
	}
}

func TestCatalogRegisterProviderRequiresEntry(t *testing.T) {
	catalog := NewCatalog()
	provider := ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return nil, nil
	})
	if err := catalog.RegisterProvider("unknown.widget", provider); err == nil {
		t.Fatalf("expected error for unregistered entry")
	}
	if err := catalog.RegisterProvider("rental.widget.customer_search", nil); err == nil {
		t.Fatalf("expected error for nil provider")
	}
}

func TestCatalogDefaultPlacements(t *testing.T) {
	catalog := NewCatalog()
	placements := catalog.DefaultPlacements()
	if len(placements) != len(catalog.Entries()) {
		t.Fatalf("expected one placement per entry")
	}
	for i, p := range placements {
		if p.Position != i+1 {
			t.Fatalf("positions not dense: %#v", placements)
		}
		if p.Deleted {
			t.Fatalf("defaults must be visible: %#v", p)
		}
		entry, _ := catalog.Entry(p.WidgetID)
		if p.Editable != entry.Removable {
			t.Fatalf("editable flag should mirror removability for %s", p.WidgetID)
		}
	}
}

func TestCatalogHookRuns(t *testing.T) {
	RegisterCatalogHook(func(c *Catalog) error {
		return c.Register(CatalogEntry{Code: "test.widget.hooked", Name: "Hooked", DefaultScale: 3})
	})
	catalog := NewCatalog()
	if _, ok := catalog.Entry("test.widget.hooked"); !ok {
		t.Fatalf("hook entry missing from new catalog")
	}
}
