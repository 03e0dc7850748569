package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
	"github.com/fleetops/go-dashgrid/components/dashgrid/commands"
)

// Executor is the surface transports call into; it hides command wiring.
type Executor interface {
	Layout(ctx context.Context, user dashgrid.UserContext) ([]dashgrid.WidgetPlacement, error)
	Reorder(ctx context.Context, input commands.ReorderDashboardInput) error
	Toggle(ctx context.Context, input commands.ToggleWidgetInput) error
	Save(ctx context.Context, input commands.SaveLayoutInput) error
}

// CommandExecutor implements Executor over shared commands and queries.
type CommandExecutor struct {
	LayoutQuerier    gocommand.Querier[dashgrid.UserContext, []dashgrid.WidgetPlacement]
	ReorderCommander gocommand.Commander[commands.ReorderDashboardInput]
	ToggleCommander  gocommand.Commander[commands.ToggleWidgetInput]
	SaveCommander    gocommand.Commander[commands.SaveLayoutInput]
}

func (e *CommandExecutor) Layout(ctx context.Context, user dashgrid.UserContext) ([]dashgrid.WidgetPlacement, error) {
	if e.LayoutQuerier == nil {
		return nil, errors.New("httpapi: layout querier not configured")
	}
	return e.LayoutQuerier.Query(ctx, user)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderDashboardInput) error {
	if e.ReorderCommander == nil {
		return errors.New("httpapi: reorder commander not configured")
	}
	return e.ReorderCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Toggle(ctx context.Context, input commands.ToggleWidgetInput) error {
	if e.ToggleCommander == nil {
		return errors.New("httpapi: toggle commander not configured")
	}
	return e.ToggleCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Save(ctx context.Context, input commands.SaveLayoutInput) error {
	if e.SaveCommander == nil {
		return errors.New("httpapi: save commander not configured")
	}
	return e.SaveCommander.Execute(ctx, input)
}

// UserResolver extracts the user context from an incoming request.
type UserResolver func(*http.Request) dashgrid.UserContext

// EventStream pushes live layout events to connected clients. The
// broadcast hook satisfies it.
type EventStream interface {
	ServeWebSocket(w http.ResponseWriter, r *http.Request)
	ServeSSE(w http.ResponseWriter, r *http.Request)
}

// Handlers exposes plain net/http endpoints backed by the executor.
type Handlers struct {
	API         Executor
	ResolveUser UserResolver
	Events      EventStream
}

func (h *Handlers) user(r *http.Request) dashgrid.UserContext {
	if h.ResolveUser != nil {
		return h.ResolveUser(r)
	}
	return dashgrid.UserContext{}
}

// HandleLayout returns the user's placement collection as JSON.
func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request) {
	placements, err := h.API.Layout(r.Context(), h.user(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"widgets": placements})
}

// HandleReorder applies a new visible ordering.
func (h *Handlers) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderDashboardInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.User = h.user(r)
	if err := h.API.Reorder(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleToggle flips one widget's hidden flag.
func (h *Handlers) HandleToggle(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.User = h.user(r)
	if err := h.API.Toggle(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleSave persists the full collection.
func (h *Handlers) HandleSave(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.User = h.user(r)
	if err := h.API.Save(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleEventsSocket upgrades the request and streams layout events over
// a websocket connection.
func (h *Handlers) HandleEventsSocket(w http.ResponseWriter, r *http.Request) {
	if h.Events == nil {
		http.NotFound(w, r)
		return
	}
	h.Events.ServeWebSocket(w, r)
}

// HandleEventsSSE streams layout events as Server-Sent Events for
// clients that cannot hold a websocket.
func (h *Handlers) HandleEventsSSE(w http.ResponseWriter, r *http.Request) {
	if h.Events == nil {
		http.NotFound(w, r)
		return
	}
	h.Events.ServeSSE(w, r)
}
