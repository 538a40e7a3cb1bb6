package handlers

import (
	"context"

	"golang-food-storefront/internal/services"
)

// CheckoutServiceInterface defines the contract for checkout service
type CheckoutServiceInterface interface {
	EvaluateGate(ctx context.Context, deviceID string, authenticated bool) *services.GateResult
	Checkout(ctx context.Context, deviceID, sessionCookie, userID string, authenticated bool) (*services.CheckoutResult, error)
}
