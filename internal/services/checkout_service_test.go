package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang-food-storefront/pkg/backend"
	"golang-food-storefront/pkg/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderBackend struct {
	mu        sync.Mutex
	payloads  []*backend.OrderPayload
	result    *backend.OrderResult
	createErr error
}

func (f *fakeOrderBackend) CreateOrder(ctx context.Context, sessionCookie string, payload *backend.OrderPayload) (*backend.OrderResult, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.result, nil
}

type fakeEventPublisher struct {
	mu      sync.Mutex
	topics  []string
	keys    []string
	values  []interface{}
	sendErr error
}

func (f *fakeEventPublisher) SendMessage(topic string, brokers []string, key string, value interface{}) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	f.topics = append(f.topics, topic)
	f.keys = append(f.keys, key)
	f.values = append(f.values, value)
	f.mu.Unlock()
	return nil
}

func newCheckoutFixture() (*CartService, *fakeOrderBackend, *fakeEventPublisher, *CheckoutService) {
	publisher := &fakeEventPublisher{}
	carts := NewCartService(newFakeCartRepo(), nil, publisher, []string{"localhost:9092"})
	orderBackend := &fakeOrderBackend{
		result: &backend.OrderResult{OrderID: "o1", Status: "pending", TotalAmount: 19.0},
	}
	checkout := NewCheckoutService(carts, orderBackend, publisher, []string{"localhost:9092"})
	return carts, orderBackend, publisher, checkout
}

func TestGateBlocksUnauthenticated(t *testing.T) {
	ctx := context.Background()
	carts, _, _, checkout := newCheckoutFixture()
	carts.AddItem(ctx, "d1", margherita(), 1)

	gate := checkout.EvaluateGate(ctx, "d1", false)
	assert.Equal(t, GateLoginRequired, gate.Status)

	// No cart mutation on the auth redirect path.
	assert.Equal(t, 1, carts.GetCart(ctx, "d1").TotalItems)
}

func TestGateAbortsSilentlyOnEmptyCart(t *testing.T) {
	ctx := context.Background()
	_, _, _, checkout := newCheckoutFixture()

	gate := checkout.EvaluateGate(ctx, "d1", true)
	assert.Equal(t, GateEmptyCart, gate.Status)
	assert.Empty(t, gate.Message)
}

func TestGateBlocksMultipleRestaurants(t *testing.T) {
	ctx := context.Background()
	carts, _, _, checkout := newCheckoutFixture()
	carts.AddItem(ctx, "d1", margherita(), 1)
	carts.AddItem(ctx, "d1", biryani(), 1)

	gate := checkout.EvaluateGate(ctx, "d1", true)
	assert.Equal(t, GateMultipleRestaurants, gate.Status)
	assert.Equal(t, []string{"r1", "r2"}, gate.RestaurantIDs)
	assert.NotEmpty(t, gate.Message)

	// Entries are never auto-removed; the shopper resolves the conflict.
	assert.Equal(t, 2, carts.GetCart(ctx, "d1").TotalItems)
}

func TestGatePassesSingleRestaurant(t *testing.T) {
	ctx := context.Background()
	carts, _, _, checkout := newCheckoutFixture()
	carts.AddItem(ctx, "d1", margherita(), 2)

	gate := checkout.EvaluateGate(ctx, "d1", true)
	assert.Equal(t, GateOK, gate.Status)
}

func TestCheckoutStopsAtGate(t *testing.T) {
	ctx := context.Background()
	carts, orderBackend, publisher, checkout := newCheckoutFixture()
	carts.AddItem(ctx, "d1", margherita(), 1)
	carts.AddItem(ctx, "d1", biryani(), 1)

	result, err := checkout.Checkout(ctx, "d1", "cookie", "u1", true)
	require.NoError(t, err)
	assert.Equal(t, GateMultipleRestaurants, result.Gate.Status)
	assert.Nil(t, result.Order)
	assert.Empty(t, orderBackend.payloads)
	assert.Empty(t, publisher.values)
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	carts, orderBackend, publisher, checkout := newCheckoutFixture()
	carts.AddItem(ctx, "d1", margherita(), 2)

	result, err := checkout.Checkout(ctx, "d1", "cookie", "u1", true)
	require.NoError(t, err)
	assert.Equal(t, GateOK, result.Gate.Status)
	require.NotNil(t, result.Order)
	assert.Equal(t, "o1", result.Order.OrderID)

	// Payload carries the submit-time snapshot.
	require.Len(t, orderBackend.payloads, 1)
	payload := orderBackend.payloads[0]
	assert.Equal(t, "r1", payload.RestaurantID)
	assert.Equal(t, 2, payload.TotalItems)
	assert.Equal(t, 19.0, payload.TotalAmount)

	// The cart is spent once the order exists upstream.
	assert.Equal(t, 0, carts.GetCart(ctx, "d1").TotalItems)

	// One event for the cleared cart, one for the placed order.
	require.Len(t, publisher.values, 2)
	assert.Equal(t, []string{"cart-events", "order-events"}, publisher.topics)
	assert.Equal(t, []string{"d1", "o1"}, publisher.keys)

	cleared, ok := publisher.values[0].(messaging.CartClearedEvent)
	require.True(t, ok)
	assert.Equal(t, "order_placed", cleared.Reason)
}

func TestCheckoutUpstreamFailureLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	carts, orderBackend, publisher, checkout := newCheckoutFixture()
	orderBackend.createErr = errors.New("backend unavailable")
	carts.AddItem(ctx, "d1", margherita(), 2)

	result, err := checkout.Checkout(ctx, "d1", "cookie", "u1", true)
	require.Error(t, err)
	assert.Nil(t, result)

	assert.Equal(t, 2, carts.GetCart(ctx, "d1").TotalItems)
	assert.Empty(t, publisher.values)
}

func TestGateTreatsMissingRestaurantsAsEmptyCart(t *testing.T) {
	// A snapshot can be emptied by a concurrent clear; the gate must never
	// let such a snapshot reach the order path.
	assert.Equal(t, GateEmptyCart, gateFromSnapshot(0, nil).Status)
	assert.Equal(t, GateEmptyCart, gateFromSnapshot(1, nil).Status)
	assert.Equal(t, GateEmptyCart, gateFromSnapshot(1, []string{}).Status)
}

func TestCheckoutStaysConsistentUnderConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	carts, orderBackend, _, checkout := newCheckoutFixture()

	// Race checkouts against clears and cross-restaurant adds on the same
	// device. Every submitted payload must come from one coherent snapshot:
	// non-empty and confined to a single restaurant.
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		carts.AddItem(ctx, "d1", margherita(), 1)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := checkout.Checkout(ctx, "d1", "cookie", "u1", true)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			carts.AddItem(ctx, "d1", biryani(), 1)
			carts.ClearCart(ctx, "d1")
		}()
		wg.Wait()

		carts.ClearCart(ctx, "d1")
	}

	for _, payload := range orderBackend.payloads {
		require.NotEmpty(t, payload.Items)
		require.NotEmpty(t, payload.RestaurantID)
		for _, line := range payload.Items {
			assert.Equal(t, payload.RestaurantID, line.RestaurantID)
		}
	}
}

func TestCheckoutSucceedsWhenEventPublishFails(t *testing.T) {
	ctx := context.Background()
	carts, _, publisher, checkout := newCheckoutFixture()
	publisher.sendErr = errors.New("broker down")
	carts.AddItem(ctx, "d1", margherita(), 1)

	result, err := checkout.Checkout(ctx, "d1", "cookie", "u1", true)
	require.NoError(t, err)
	require.NotNil(t, result.Order)

	// The order exists upstream, so the cart is still cleared.
	assert.Equal(t, 0, carts.GetCart(ctx, "d1").TotalItems)
}
