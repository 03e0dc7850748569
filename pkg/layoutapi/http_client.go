package layoutapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	dashgrid "github.com/fleetops/go-dashgrid/components/dashgrid"
)

// HTTPConfig configures the HTTP layout gateway client.
type HTTPConfig struct {
	BaseURL    string
	HTTPClient *http.Client
}

// HTTPClient talks to the layout persistence service. It implements
// dashgrid.LayoutGateway: one GET for the full collection, one PUT per
// widget on save. The caller's access token rides on every request.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ dashgrid.LayoutGateway = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the layout REST endpoints.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("layoutapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		client:  httpClient,
	}, nil
}

// FetchLayout returns the canonical collection for the user. A 404 maps to
// an empty collection, meaning "no customization yet".
func (c *HTTPClient) FetchLayout(ctx context.Context, user dashgrid.UserContext) ([]dashgrid.WidgetPlacement, error) {
	var resp layoutResponse
	status, err := c.do(ctx, http.MethodGet, c.layoutPath(user), user.AccessToken, nil, &resp)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Widgets, nil
}

// SaveWidget upserts a single placement. The engine fans this out once per
// widget; there is no batch endpoint.
func (c *HTTPClient) SaveWidget(ctx context.Context, user dashgrid.UserContext, placement dashgrid.WidgetPlacement) error {
	path := c.layoutPath(user) + "/" + url.PathEscape(placement.WidgetID)
	_, err := c.do(ctx, http.MethodPut, path, user.AccessToken, placement, nil)
	return err
}

func (c *HTTPClient) layoutPath(user dashgrid.UserContext) string {
	return fmt.Sprintf("/clients/%s/users/%s/dashboard-widgets",
		url.PathEscape(user.ClientID), url.PathEscape(user.UserID))
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, payload any, target any) (int, error) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("layoutapi: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("layoutapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("layoutapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return resp.StatusCode, fmt.Errorf("layoutapi: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return resp.StatusCode, fmt.Errorf("layoutapi: decode response: %w", err)
	}
	return resp.StatusCode, nil
}

type layoutResponse struct {
	Widgets []dashgrid.WidgetPlacement `json:"widgets"`
}
