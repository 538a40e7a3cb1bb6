package handlers

import (
	"context"

	"golang-food-storefront/internal/models"
	"golang-food-storefront/internal/services"
)

// CartServiceInterface defines the contract for cart service
type CartServiceInterface interface {
	GetCart(ctx context.Context, deviceID string) *services.CartResponse
	AddItem(ctx context.Context, deviceID string, line models.CartLine, quantity int) *services.CartResponse
	UpdateItem(ctx context.Context, deviceID, itemID string, quantity int) *services.CartResponse
	RemoveItem(ctx context.Context, deviceID, itemID string) *services.CartResponse
	ClearCart(ctx context.Context, deviceID string)
}
