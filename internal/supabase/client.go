// Package supabase reads recharge circles through the Supabase REST
// (PostgREST) API using the project's anon key.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/vighnaharta/internal/config"
	"github.com/vighnaharta/internal/domain"
)

const (
	circlesPath  = "/rest/v1/recharge_circles"
	circleSelect = "id,name,code,is_active,sort_order,created_at"
	maxErrorBody = 4 << 10
)

// Client is a CircleRepository backed by the Supabase REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// apiError is the PostgREST error body
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// NewClient creates a client with a pooled cleanhttp transport
func NewClient(cfg config.SupabaseConfig) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

// ListActiveCircles retrieves active circles ordered by sort_order, then name
func (c *Client) ListActiveCircles(ctx context.Context) ([]domain.Circle, error) {
	q := url.Values{}
	q.Set("select", circleSelect)
	q.Set("is_active", "eq.true")
	q.Set("order", "sort_order.asc,name.asc")

	circles := []domain.Circle{}
	if err := c.get(ctx, "list active circles", q, &circles); err != nil {
		return nil, err
	}
	// PostgREST answers an empty result with [], but a literal null body would
	// leave the slice nil
	if circles == nil {
		circles = []domain.Circle{}
	}
	return circles, nil
}

// GetCircleByCode retrieves an active circle by its code
func (c *Client) GetCircleByCode(ctx context.Context, code string) (*domain.Circle, error) {
	q := url.Values{}
	q.Set("select", circleSelect)
	q.Set("code", "eq."+code)
	q.Set("is_active", "eq.true")
	q.Set("limit", "1")

	var circles []domain.Circle
	if err := c.get(ctx, "get circle by code", q, &circles); err != nil {
		return nil, err
	}
	if len(circles) == 0 {
		return nil, domain.WrapCircleNotFound(code, nil)
	}
	return &circles[0], nil
}

// Ping issues a minimal read to check the API and the key
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")

	var rows []json.RawMessage
	return c.get(ctx, "ping supabase", q, &rows)
}

// Close releases idle connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) get(ctx context.Context, operation string, query url.Values, out interface{}) error {
	reqURL := c.baseURL + circlesPath + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.WrapNetworkOperation(operation, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapNetworkOperation(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.WrapDatabaseOperation(operation, decodeError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.WrapDatabaseOperation(operation, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		if apiErr.Code != "" {
			return fmt.Errorf("supabase status %d: %s (%s)", resp.StatusCode, apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("supabase status %d: %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("supabase status %d: %s", resp.StatusCode, string(body))
}
