package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/fleetops/go-dashgrid/components/dashgrid"
)

type fakeService struct {
	reorderedIDs []string
	toggledID    string
	savedCount   int
	err          error
}

func (s *fakeService) ReorderDashboard(_ context.Context, _ dashgrid.UserContext, orderedVisibleIDs []string) ([]dashgrid.WidgetPlacement, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.reorderedIDs = orderedVisibleIDs
	return nil, nil
}

func (s *fakeService) ToggleWidget(_ context.Context, _ dashgrid.UserContext, widgetID string) ([]dashgrid.WidgetPlacement, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.toggledID = widgetID
	return nil, nil
}

func (s *fakeService) SaveLayout(_ context.Context, _ dashgrid.UserContext, placements []dashgrid.WidgetPlacement) error {
	if s.err != nil {
		return s.err
	}
	s.savedCount = len(placements)
	return nil
}

func commandUser() dashgrid.UserContext {
	return dashgrid.UserContext{ClientID: "client-1", UserID: "user-1"}
}

func TestReorderDashboardCommand(t *testing.T) {
	service := &fakeService{}
	cmd := NewReorderDashboardCommand(service, nil)
	input := ReorderDashboardInput{User: commandUser(), OrderedIDs: []string{"b", "a"}}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.reorderedIDs) != 2 {
		t.Fatalf("service not invoked: %#v", service)
	}
}

func TestReorderDashboardCommandPropagatesError(t *testing.T) {
	service := &fakeService{err: errors.New("boom")}
	cmd := NewReorderDashboardCommand(service, nil)
	if err := cmd.Execute(context.Background(), ReorderDashboardInput{User: commandUser()}); err == nil {
		t.Fatalf("expected service error")
	}
}

func TestReorderDashboardCommandRequiresService(t *testing.T) {
	cmd := NewReorderDashboardCommand(nil, nil)
	if err := cmd.Execute(context.Background(), ReorderDashboardInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestToggleWidgetCommand(t *testing.T) {
	service := &fakeService{}
	cmd := NewToggleWidgetCommand(service, nil)
	input := ToggleWidgetInput{User: commandUser(), WidgetID: "rental.widget.open_agreements"}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.toggledID != input.WidgetID {
		t.Fatalf("service not invoked: %#v", service)
	}
}

func TestToggleWidgetCommandRequiresWidgetID(t *testing.T) {
	cmd := NewToggleWidgetCommand(&fakeService{}, nil)
	if err := cmd.Execute(context.Background(), ToggleWidgetInput{User: commandUser()}); err == nil {
		t.Fatalf("expected error for empty widget id")
	}
}

func TestSaveLayoutCommand(t *testing.T) {
	service := &fakeService{}
	cmd := NewSaveLayoutCommand(service, nil)
	input := SaveLayoutInput{
		User: commandUser(),
		Widgets: []dashgrid.WidgetPlacement{
			{WidgetID: "a", Position: 1},
			{WidgetID: "b", Position: 2},
		},
	}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.savedCount != 2 {
		t.Fatalf("expected 2 widgets saved, got %d", service.savedCount)
	}
}

func TestSaveLayoutCommandRequiresUser(t *testing.T) {
	cmd := NewSaveLayoutCommand(&fakeService{}, nil)
	if err := cmd.Execute(context.Background(), SaveLayoutInput{}); err == nil {
		t.Fatalf("expected error for missing user")
	}
}
