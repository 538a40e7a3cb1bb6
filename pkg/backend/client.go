package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-food-storefront/internal/models"
)

// Client talks to the externally-owned commerce backend over HTTP/JSON.
// Every call forwards the shopper's session cookie; the backend owns
// authentication, catalog and order persistence.
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
}

type OrderPayload struct {
	RestaurantID string            `json:"restaurant_id"`
	Items        []models.CartLine `json:"items"`
	TotalItems   int               `json:"total_items"`
	TotalAmount  float64           `json:"total_amount"`
}

type OrderResult struct {
	OrderID     string  `json:"order_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

func NewClient(baseURL, cookieName string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		cookieName: cookieName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetMeal fetches a single catalog record. Add-to-cart call sites build the
// cart line descriptor from this response.
func (c *Client) GetMeal(ctx context.Context, sessionCookie, mealID string) (*models.Meal, error) {
	status, body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/meals/%s", mealID), sessionCookie, nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var meal models.Meal
		if err := json.Unmarshal(body, &meal); err != nil {
			return nil, fmt.Errorf("failed to unmarshal meal: %w", err)
		}
		return &meal, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("meal %s not found", mealID)
	default:
		return nil, fmt.Errorf("unexpected status code %d: %s", status, string(body))
	}
}

// CreateOrder submits the assembled order. The backend owns pricing
// authority and the order-status workflow from here on.
func (c *Client) CreateOrder(ctx context.Context, sessionCookie string, payload *OrderPayload) (*OrderResult, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, "/orders", sessionCookie, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		var result OrderResult
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order result: %w", err)
		}
		return &result, nil
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("session rejected by backend")
	default:
		return nil, fmt.Errorf("order creation failed with status %d: %s", status, string(body))
	}
}

// Relay forwards a request verbatim and hands back the backend's status and
// body for pass-through routes.
func (c *Client) Relay(ctx context.Context, method, path, sessionCookie string) (int, []byte, error) {
	return c.do(ctx, method, path, sessionCookie, nil)
}

func (c *Client) do(ctx context.Context, method, path, sessionCookie string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: sessionCookie})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
