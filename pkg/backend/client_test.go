package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-food-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL, "session_token", 5*time.Second)
}

func TestGetMealForwardsSessionCookie(t *testing.T) {
	var gotCookie string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("session_token"); err == nil {
			gotCookie = cookie.Value
		}
		json.NewEncoder(w).Encode(models.Meal{ID: "m1", Name: "Margherita", Price: 9.5, RestaurantID: "r1"})
	})

	meal, err := client.GetMeal(context.Background(), "abc", "m1")
	require.NoError(t, err)
	assert.Equal(t, "abc", gotCookie)
	assert.Equal(t, "Margherita", meal.Name)
	assert.Equal(t, 9.5, meal.Price)
}

func TestGetMealNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetMeal(context.Background(), "", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateOrder(t *testing.T) {
	var gotPayload OrderPayload
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(OrderResult{OrderID: "o1", Status: "pending", TotalAmount: gotPayload.TotalAmount})
	})

	payload := &OrderPayload{
		RestaurantID: "r1",
		Items:        []models.CartLine{{ItemID: "m1", Quantity: 2, UnitPrice: 9.5}},
		TotalItems:   2,
		TotalAmount:  19.0,
	}

	result, err := client.CreateOrder(context.Background(), "abc", payload)
	require.NoError(t, err)
	assert.Equal(t, "o1", result.OrderID)
	assert.Equal(t, 19.0, result.TotalAmount)
	assert.Equal(t, "r1", gotPayload.RestaurantID)
}

func TestCreateOrderRejectedSession(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.CreateOrder(context.Background(), "expired", &OrderPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session rejected")
}

func TestRelayPassesStatusAndBodyThrough(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"relayed": true}`))
	})

	status, body, err := client.Relay(context.Background(), http.MethodGet, "/meals/m1", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, status)
	assert.JSONEq(t, `{"relayed": true}`, string(body))
}
