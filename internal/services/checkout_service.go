package services

import (
	"context"
	"log"

	"golang-food-storefront/pkg/backend"
	"golang-food-storefront/pkg/messaging"
)

const orderEventsTopic = "order-events"

// GateStatus is the outcome of the checkout gate. The gate is read-time
// policy only: it never mutates the cart and nothing is enforced when
// items are added.
type GateStatus string

const (
	GateOK                  GateStatus = "ok"
	GateLoginRequired       GateStatus = "login_required"
	GateEmptyCart           GateStatus = "empty_cart"
	GateMultipleRestaurants GateStatus = "multiple_restaurants"
)

type GateResult struct {
	Status        GateStatus `json:"status"`
	Message       string     `json:"message,omitempty"`
	RestaurantIDs []string   `json:"restaurant_ids,omitempty"`
}

type CheckoutResult struct {
	Gate  *GateResult          `json:"gate"`
	Order *backend.OrderResult `json:"order,omitempty"`
}

// OrderBackend is the slice of the commerce backend the checkout hand-off
// needs.
type OrderBackend interface {
	CreateOrder(ctx context.Context, sessionCookie string, payload *backend.OrderPayload) (*backend.OrderResult, error)
}

// EventPublisher matches the Kafka producer.
type EventPublisher interface {
	SendMessage(topic string, brokers []string, key string, value interface{}) error
}

type CheckoutService struct {
	carts    *CartService
	backend  OrderBackend
	producer EventPublisher
	brokers  []string
}

func NewCheckoutService(carts *CartService, orderBackend OrderBackend, producer EventPublisher, brokers []string) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		backend:  orderBackend,
		producer: producer,
		brokers:  brokers,
	}
}

// EvaluateGate runs the checkout gate against the current cart:
// no session blocks with a login redirect, an empty cart aborts silently,
// and entries from more than one restaurant block with a user-facing
// message. Entries are never auto-removed; the shopper resolves the
// conflict manually.
func (s *CheckoutService) EvaluateGate(ctx context.Context, deviceID string, authenticated bool) *GateResult {
	if !authenticated {
		return loginRequiredGate()
	}

	_, totalItems, _, restaurantIDs := s.carts.Snapshot(ctx, deviceID)
	return gateFromSnapshot(totalItems, restaurantIDs)
}

func loginRequiredGate() *GateResult {
	return &GateResult{
		Status:  GateLoginRequired,
		Message: "Please sign in to continue to checkout",
	}
}

// gateFromSnapshot applies the cart-shape rules to a single snapshot. A
// snapshot with no restaurants counts as empty, so the order path can never
// index into an empty restaurant list.
func gateFromSnapshot(totalItems int, restaurantIDs []string) *GateResult {
	if totalItems == 0 || len(restaurantIDs) == 0 {
		return &GateResult{Status: GateEmptyCart}
	}

	if len(restaurantIDs) > 1 {
		return &GateResult{
			Status:        GateMultipleRestaurants,
			Message:       "Your cart has items from more than one restaurant. Remove items until a single restaurant remains before checking out.",
			RestaurantIDs: restaurantIDs,
		}
	}

	return &GateResult{Status: GateOK}
}

// Checkout re-evaluates the gate at submit time and, when it passes, hands
// the assembled order to the commerce backend. Gate and payload are built
// from one snapshot, so a mutation racing on the same device cannot slip an
// unchecked cart shape into the submitted order. The cart is cleared only
// after the backend accepts the order; on any failure it is left untouched
// so the shopper can retry.
func (s *CheckoutService) Checkout(ctx context.Context, deviceID, sessionCookie, userID string, authenticated bool) (*CheckoutResult, error) {
	if !authenticated {
		return &CheckoutResult{Gate: loginRequiredGate()}, nil
	}

	lines, totalItems, totalPrice, restaurantIDs := s.carts.Snapshot(ctx, deviceID)

	gate := gateFromSnapshot(totalItems, restaurantIDs)
	if gate.Status != GateOK {
		return &CheckoutResult{Gate: gate}, nil
	}

	payload := &backend.OrderPayload{
		RestaurantID: restaurantIDs[0],
		Items:        lines,
		TotalItems:   totalItems,
		TotalAmount:  totalPrice,
	}

	order, err := s.backend.CreateOrder(ctx, sessionCookie, payload)
	if err != nil {
		return nil, err
	}

	// The order now exists upstream; the cart is spent.
	s.carts.clearCart(ctx, deviceID, "order_placed")

	s.publishOrderPlaced(order, deviceID, userID, payload)

	return &CheckoutResult{
		Gate:  gate,
		Order: order,
	}, nil
}

func (s *CheckoutService) publishOrderPlaced(order *backend.OrderResult, deviceID, userID string, payload *backend.OrderPayload) {
	if s.producer == nil {
		return
	}

	event := messaging.OrderPlacedEvent{
		Type:         "order_placed",
		OrderID:      order.OrderID,
		DeviceID:     deviceID,
		UserID:       userID,
		RestaurantID: payload.RestaurantID,
		TotalAmount:  payload.TotalAmount,
		TotalItems:   payload.TotalItems,
		Items:        payload.Items,
	}
	if err := s.producer.SendMessage(orderEventsTopic, s.brokers, order.OrderID, event); err != nil {
		// The order already exists upstream, so a lost event is log-only.
		log.Printf("Failed to publish order placed event for order %s: %v", order.OrderID, err)
	}
}
