package handlers

import (
	"context"

	"golang-food-storefront/internal/services"
)

// CatalogServiceInterface defines the contract for catalog service
type CatalogServiceInterface interface {
	AddMealToCart(ctx context.Context, deviceID, sessionCookie, mealID string, quantity int) (*services.AddToCartResult, error)
	RelayMeal(ctx context.Context, sessionCookie, mealID string) (int, []byte, error)
	RelayRestaurantMeals(ctx context.Context, sessionCookie, restaurantID string) (int, []byte, error)
}
