package dashgrid

import "sort"

// ReconcileOptions selects the candidate pool for a reconciliation pass.
type ReconcileOptions struct {
	// DropHidden restricts the orderable pool to non-deleted widgets; hidden
	// widgets are appended after the visible ones, preserving their relative
	// order. The visibility picker reorders the full collection and sets
	// this to false.
	DropHidden bool
}

// Reconcile recomputes dense position values for a placement collection
// given a desired ordering of the candidate pool. It never creates or drops
// widget ids: mismatched or unknown ids degrade to a no-op reorder because
// this runs inside drag-drop event handlers where failing loudly would leave
// the grid visually inconsistent.
func Reconcile(placements []WidgetPlacement, orderedIDs []string, opts ReconcileOptions) []WidgetPlacement {
	pool := candidatePool(placements, opts.DropHidden)
	if len(pool) != len(orderedIDs) {
		return pool
	}
	index := make(map[string]WidgetPlacement, len(pool))
	for _, p := range pool {
		index[p.WidgetID] = p
	}
	if !resolvable(index, orderedIDs) {
		return pool
	}

	result := make([]WidgetPlacement, 0, len(placements))
	seen := make(map[string]struct{}, len(placements))
	pos := 0
	for _, id := range orderedIDs {
		p := index[id]
		pos++
		p.Position = pos
		result = append(result, p)
		seen[id] = struct{}{}
	}
	if opts.DropHidden {
		for _, p := range sortedByPosition(placements) {
			if !p.Deleted {
				continue
			}
			if _, dup := seen[p.WidgetID]; dup {
				continue
			}
			pos++
			p.Position = pos
			result = append(result, p)
			seen[p.WidgetID] = struct{}{}
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result
}

// candidatePool returns the orderable subset sorted by current position,
// with duplicate widget ids collapsed to their first occurrence.
func candidatePool(placements []WidgetPlacement, dropHidden bool) []WidgetPlacement {
	pool := make([]WidgetPlacement, 0, len(placements))
	seen := make(map[string]struct{}, len(placements))
	for _, p := range sortedByPosition(placements) {
		if dropHidden && p.Deleted {
			continue
		}
		if _, dup := seen[p.WidgetID]; dup {
			continue
		}
		pool = append(pool, p)
		seen[p.WidgetID] = struct{}{}
	}
	return pool
}

func sortedByPosition(placements []WidgetPlacement) []WidgetPlacement {
	out := clonePlacements(placements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// resolvable reports whether every requested id maps to a distinct pool
// member. Duplicate or unknown ids would silently drop widgets, so the
// caller treats the request as stale instead.
func resolvable(index map[string]WidgetPlacement, orderedIDs []string) bool {
	used := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := index[id]; !ok {
			return false
		}
		if _, dup := used[id]; dup {
			return false
		}
		used[id] = struct{}{}
	}
	return true
}

// MoveID applies array-move semantics to an id sequence: the id at index
// from is removed and re-inserted at index to. Out-of-range indexes return
// the input unchanged.
func MoveID(ids []string, from, to int) []string {
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) {
		return ids
	}
	out := make([]string, 0, len(ids))
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)
	out = append(out[:to], append([]string{ids[from]}, out[to:]...)...)
	return out
}

// VisibleIDs lists non-deleted widget ids in position order.
func VisibleIDs(placements []WidgetPlacement) []string {
	ids := make([]string, 0, len(placements))
	for _, p := range candidatePool(placements, true) {
		ids = append(ids, p.WidgetID)
	}
	return ids
}

// AllIDs lists every widget id in position order, hidden widgets included.
func AllIDs(placements []WidgetPlacement) []string {
	ids := make([]string, 0, len(placements))
	for _, p := range candidatePool(placements, false) {
		ids = append(ids, p.WidgetID)
	}
	return ids
}
