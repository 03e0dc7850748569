package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
	"github.com/fleetops/go-dashgrid/components/dashgrid/commands"
	"github.com/fleetops/go-dashgrid/components/dashgrid/httpapi"
)

// UserResolver converts a router.Context into a dashgrid.UserContext.
type UserResolver func(router.Context) dashgrid.UserContext

// Config wires go-router with dashgrid controllers, APIs, and hooks.
type Config[T any] struct {
	Router       router.Router[T]
	Controller   *dashgrid.Controller
	API          httpapi.Executor
	Broadcast    *dashgrid.BroadcastHook
	UserResolver UserResolver
	BasePath     string
	Routes       RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML      string
	Layout    string
	Reorder   string
	Toggle    string
	Save      string
	WebSocket string
}

// Register mounts dashboard routes (HTML, JSON, WebSocket) on a go-router
// router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/backoffice"
	}
	resolveUser := cfg.UserResolver
	if resolveUser == nil {
		resolveUser = defaultUserResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		user := resolveUser(ctx)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderHTML(ctx.Context(), user, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		plan, err := cfg.Controller.Plan(ctx.Context(), resolveUser(ctx))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, plan)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, resolveUser, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolveUser UserResolver, routes RouteConfig) {
	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderDashboardInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.User = resolveUser(ctx)
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Toggle, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ToggleWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.User = resolveUser(ctx)
		if err := api.Toggle(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Save, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveLayoutInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.User = resolveUser(ctx)
		if err := api.Save(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashgrid.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultUserResolver(ctx router.Context) dashgrid.UserContext {
	var user dashgrid.UserContext
	if v, ok := ctx.Locals("client_id").(string); ok {
		user.ClientID = v
	}
	if v, ok := ctx.Locals("user_id").(string); ok {
		user.UserID = v
	}
	if token := ctx.Header("Authorization"); token != "" {
		user.AccessToken = strings.TrimPrefix(token, "Bearer ")
	}
	return user
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Layout == "" {
		routes.Layout = "/dashboard/_layout"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/dashboard/widgets/reorder"
	}
	if routes.Toggle == "" {
		routes.Toggle = "/dashboard/widgets/toggle"
	}
	if routes.Save == "" {
		routes.Save = "/dashboard/widgets/save"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
