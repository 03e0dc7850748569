package dashgrid

import "sync"

// LayoutStore holds the working copy of a placement collection while the
// user customizes the dashboard. It is pure in-memory state with
// last-write-wins semantics; persistence happens elsewhere.
type LayoutStore struct {
	mu         sync.RWMutex
	placements []WidgetPlacement
}

// NewLayoutStore creates an empty store.
func NewLayoutStore() *LayoutStore {
	return &LayoutStore{}
}

// Load replaces the working copy wholesale. Used on initial fetch and after
// a save settles and the canonical layout is re-read.
func (s *LayoutStore) Load(placements []WidgetPlacement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placements = clonePlacements(placements)
}

// ApplyReorder replaces the working copy with a reconciled collection.
// The change is local until the caller explicitly saves.
func (s *LayoutStore) ApplyReorder(placements []WidgetPlacement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placements = clonePlacements(placements)
}

// ToggleDeleted flips the soft-delete flag for one placement, leaving
// positions untouched until the next reconciliation pass. It reports
// whether the widget was found.
func (s *LayoutStore) ToggleDeleted(widgetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.placements {
		if s.placements[i].WidgetID == widgetID {
			s.placements[i].Deleted = !s.placements[i].Deleted
			return true
		}
	}
	return false
}

// Snapshot returns a defensive copy of the working copy.
func (s *LayoutStore) Snapshot() []WidgetPlacement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlacements(s.placements)
}

// Len returns the number of placements, hidden widgets included.
func (s *LayoutStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.placements)
}

// Empty reports whether the store has been loaded.
func (s *LayoutStore) Empty() bool {
	return s.Len() == 0
}
