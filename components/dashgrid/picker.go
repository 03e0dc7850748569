package dashgrid

import (
	"context"
	"sync"
)

// VisibilityPicker is the modal editing surface over the placement
// collection. It owns a private working copy, so cancelling without saving
// just discards that copy. The dashboard grid's state is never touched
// until a save-and-reload cycle completes.
type VisibilityPicker struct {
	service   *Service
	user      UserContext
	telemetry Telemetry

	mu            sync.Mutex
	store         *LayoutStore
	drag          *DragController
	open          bool
	closingLocked bool
}

// NewVisibilityPicker builds a picker bound to one user's layout.
func NewVisibilityPicker(service *Service, user UserContext, telemetry Telemetry) *VisibilityPicker {
	store := NewLayoutStore()
	p := &VisibilityPicker{
		service:   service,
		user:      user,
		telemetry: normalizeTelemetry(telemetry),
		store:     store,
	}
	// The picker drags over the full collection, hidden widgets included,
	// so a hidden widget can be pulled back into visible order.
	p.drag = NewDragController(DragControllerOptions{
		Store:      store,
		DropHidden: false,
		Telemetry:  telemetry,
	})
	return p
}

// Open shows the picker, loading its local copy on first open.
func (p *VisibilityPicker) Open(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store.Empty() {
		placements, err := p.service.LoadLayout(ctx, p.user)
		if err != nil {
			return err
		}
		p.store.Load(placements)
	}
	p.open = true
	p.telemetry.Record(ctx, "dashgrid.picker.open", map[string]any{
		"user": p.user.UserID,
	})
	return nil
}

// IsOpen reports whether the picker is showing.
func (p *VisibilityPicker) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// ClosingLocked reports whether the close affordance is suppressed because
// a save is in flight.
func (p *VisibilityPicker) ClosingLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closingLocked
}

// ToggleVisibility flips the hidden flag on one row of the local copy.
// Positions stay untouched until the next reorder.
func (p *VisibilityPicker) ToggleVisibility(widgetID string) bool {
	return p.store.ToggleDeleted(widgetID)
}

// Reorder applies a new full-collection ordering to the local copy.
func (p *VisibilityPicker) Reorder(orderedIDs []string) {
	reconciled := Reconcile(p.store.Snapshot(), orderedIDs, ReconcileOptions{DropHidden: false})
	if len(reconciled) == p.store.Len() {
		p.store.ApplyReorder(reconciled)
	}
}

// Drag exposes the picker's drag controller so the host can feed it
// pointer events over the rendered rows.
func (p *VisibilityPicker) Drag() *DragController {
	return p.drag
}

// Snapshot returns the picker's local copy.
func (p *VisibilityPicker) Snapshot() []WidgetPlacement {
	return p.store.Snapshot()
}

// Save persists the full local collection through the gateway and closes
// the picker. The close affordance is locked for the duration so the modal
// cannot be dismissed while the save is settling; a failed save re-enables
// closing and leaves the picker open.
func (p *VisibilityPicker) Save(ctx context.Context) error {
	p.mu.Lock()
	if p.closingLocked {
		p.mu.Unlock()
		return nil
	}
	p.closingLocked = true
	placements := p.store.Snapshot()
	p.mu.Unlock()

	err := p.service.SaveLayout(ctx, p.user, placements)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.closingLocked = false
	if err != nil {
		return err
	}
	p.open = false
	p.store.Load(nil)
	p.telemetry.Record(ctx, "dashgrid.picker.save", map[string]any{
		"user":  p.user.UserID,
		"count": len(placements),
	})
	return nil
}

// Cancel discards the local copy and closes without touching the gateway.
// It reports false while a save holds the closing lock.
func (p *VisibilityPicker) Cancel() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closingLocked {
		return false
	}
	p.open = false
	p.store.Load(nil)
	return true
}
