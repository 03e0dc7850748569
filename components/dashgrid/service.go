package dashgrid

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	errMissingGateway = errors.New("dashgrid: layout gateway not configured")
	errMissingUser    = errors.New("dashgrid: user context missing client or user id")
)

const defaultCacheTTL = time.Minute

// Options configures the dashgrid Service. Every collaborator is provided
// via interface so host applications can swap implementations.
type Options struct {
	Gateway     LayoutGateway
	Catalog     CatalogLookup
	Validator   SettingsValidator
	RefreshHook RefreshHook
	Telemetry   Telemetry
	CacheTTL    time.Duration
}

// Service orchestrates layout loading, reordering, and persistence for the
// back-office dashboard.
type Service struct {
	opts  Options
	cache *LayoutCache
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = NewCatalog()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.CacheTTL == 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	return &Service{
		opts:  opts,
		cache: NewLayoutCache(opts.CacheTTL),
	}
}

// Catalog exposes the configured widget catalog.
func (s *Service) Catalog() CatalogLookup {
	return s.opts.Catalog
}

// LoadLayout returns the user's placement collection: cached if fresh,
// fetched from the gateway otherwise. An empty gateway result means "no
// customization yet" and falls back to catalog defaults.
func (s *Service) LoadLayout(ctx context.Context, user UserContext) ([]WidgetPlacement, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if placements, ok := s.cache.Get(user); ok {
		return placements, nil
	}
	gateway, err := s.gateway()
	if err != nil {
		return nil, err
	}
	placements, err := gateway.FetchLayout(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("dashgrid: fetch layout: %w", err)
	}
	if len(placements) == 0 {
		placements = s.opts.Catalog.DefaultPlacements()
	}
	placements = Reconcile(placements, AllIDs(placements), ReconcileOptions{})
	s.cache.Set(user, placements)
	s.record(ctx, "dashgrid.layout.load", map[string]any{
		"user":  user.UserID,
		"count": len(placements),
	})
	return placements, nil
}

// ReorderDashboard applies a new visual ordering of the visible widgets and
// updates the cached working copy optimistically. Nothing is persisted
// until SaveLayout runs.
func (s *Service) ReorderDashboard(ctx context.Context, user UserContext, orderedVisibleIDs []string) ([]WidgetPlacement, error) {
	current, err := s.LoadLayout(ctx, user)
	if err != nil {
		return nil, err
	}
	reconciled := Reconcile(current, orderedVisibleIDs, ReconcileOptions{DropHidden: true})
	if len(reconciled) == len(current) {
		s.cache.Set(user, reconciled)
	} else {
		// Fail-soft: a stale ordering degraded to the candidate pool.
		reconciled = current
	}
	if err := s.opts.RefreshHook.LayoutUpdated(ctx, LayoutEvent{
		User:    user,
		Reason:  "reorder",
		Widgets: reconciled,
	}); err != nil {
		return nil, err
	}
	s.record(ctx, "dashgrid.layout.reorder", map[string]any{
		"user":  user.UserID,
		"count": len(orderedVisibleIDs),
	})
	return reconciled, nil
}

// ToggleWidget flips the soft-delete flag of one placement in the cached
// working copy. Positions are reconciled on the next reorder or save.
func (s *Service) ToggleWidget(ctx context.Context, user UserContext, widgetID string) ([]WidgetPlacement, error) {
	current, err := s.LoadLayout(ctx, user)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range current {
		if current[i].WidgetID == widgetID {
			current[i].Deleted = !current[i].Deleted
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("dashgrid: widget %s not in layout", widgetID)
	}
	s.cache.Set(user, current)
	s.record(ctx, "dashgrid.widget.toggle", map[string]any{
		"user":      user.UserID,
		"widget_id": widgetID,
	})
	return current, nil
}

// SaveLayout persists the full collection through the gateway: one upsert
// per widget, issued concurrently, awaited jointly. There is no atomic
// multi-widget transaction on the wire, so a partial failure can leave the
// persisted layout mixed; the joined error surfaces every failed widget.
// The cached layout is invalidated whether or not the batch succeeded.
func (s *Service) SaveLayout(ctx context.Context, user UserContext, placements []WidgetPlacement) error {
	if err := requireUser(user); err != nil {
		return err
	}
	gateway, err := s.gateway()
	if err != nil {
		return err
	}
	defer s.cache.Invalidate(user)

	saveErrs := make([]error, len(placements))
	var wg sync.WaitGroup
	for i, placement := range placements {
		wg.Add(1)
		go func(i int, placement WidgetPlacement) {
			defer wg.Done()
			if err := gateway.SaveWidget(ctx, user, placement); err != nil {
				saveErrs[i] = fmt.Errorf("dashgrid: save widget %s: %w", placement.WidgetID, err)
			}
		}(i, placement)
	}
	wg.Wait()
	if err := errors.Join(saveErrs...); err != nil {
		return err
	}

	if err := s.opts.RefreshHook.LayoutUpdated(ctx, LayoutEvent{
		User:   user,
		Reason: "save",
	}); err != nil {
		return err
	}
	s.record(ctx, "dashgrid.layout.save", map[string]any{
		"user":  user.UserID,
		"count": len(placements),
	})
	return nil
}

// InvalidateLayout drops the user's cached layout so the next read
// re-fetches from the gateway.
func (s *Service) InvalidateLayout(user UserContext) {
	s.cache.Invalidate(user)
}

// ValidateSettings checks widget settings against the catalog entry schema.
func (s *Service) ValidateSettings(code string, settings map[string]any) error {
	entry, ok := s.opts.Catalog.Entry(code)
	if !ok {
		return nil
	}
	return s.opts.Validator.Validate(entry, settings)
}

// NotifyLayoutUpdated exposes refresh hook invocation for commands and
// transports.
func (s *Service) NotifyLayoutUpdated(ctx context.Context, event LayoutEvent) error {
	if err := s.opts.RefreshHook.LayoutUpdated(ctx, event); err != nil {
		return err
	}
	s.record(ctx, "dashgrid.layout.event", map[string]any{
		"user":   event.User.UserID,
		"reason": event.Reason,
	})
	return nil
}

func (s *Service) gateway() (LayoutGateway, error) {
	if s.opts.Gateway == nil {
		return nil, errMissingGateway
	}
	return s.opts.Gateway, nil
}

func (s *Service) record(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func requireUser(user UserContext) error {
	if user.ClientID == "" || user.UserID == "" {
		return errMissingUser
	}
	return nil
}

type noopRefreshHook struct{}

func (noopRefreshHook) LayoutUpdated(context.Context, LayoutEvent) error {
	return nil
}
