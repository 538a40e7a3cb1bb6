package services

import (
	"context"
	"fmt"
	"net/http"

	"golang-food-storefront/internal/models"
)

// CatalogBackend is the slice of the commerce backend the catalog surface
// needs: single-record fetches for add-to-cart and verbatim relays for
// listing routes.
type CatalogBackend interface {
	GetMeal(ctx context.Context, sessionCookie, mealID string) (*models.Meal, error)
	Relay(ctx context.Context, method, path, sessionCookie string) (int, []byte, error)
}

// CatalogService owns the add-to-cart call sites: it translates fetched
// catalog records into cart lines and triggers the shopper-visible
// confirmation. Call sites are write-only producers; they never read cart
// state beyond the response they relay back.
type CatalogService struct {
	backend CatalogBackend
	carts   *CartService
}

func NewCatalogService(catalogBackend CatalogBackend, carts *CartService) *CatalogService {
	return &CatalogService{
		backend: catalogBackend,
		carts:   carts,
	}
}

type AddToCartResult struct {
	Cart         *CartResponse `json:"cart"`
	Notification string        `json:"notification"`
}

// AddMealToCart fetches the meal, snapshots its display price into a cart
// line and issues a single quantity-delta add, so a batch costs one
// persistence write and one confirmation whatever the quantity.
func (s *CatalogService) AddMealToCart(ctx context.Context, deviceID, sessionCookie, mealID string, quantity int) (*AddToCartResult, error) {
	meal, err := s.backend.GetMeal(ctx, sessionCookie, mealID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}

	line := models.CartLine{
		ItemID:         meal.ID,
		Name:           meal.Name,
		UnitPrice:      meal.EffectivePrice(),
		ImageRef:       meal.Image,
		RestaurantID:   meal.RestaurantID,
		RestaurantName: meal.RestaurantName,
	}

	cart := s.carts.AddItem(ctx, deviceID, line, quantity)

	notification := fmt.Sprintf("%s added to cart", meal.Name)
	if quantity > 1 {
		notification = fmt.Sprintf("%d x %s added to cart", quantity, meal.Name)
	}

	return &AddToCartResult{
		Cart:         cart,
		Notification: notification,
	}, nil
}

// RelayMeal forwards a single-meal read to the backend verbatim.
func (s *CatalogService) RelayMeal(ctx context.Context, sessionCookie, mealID string) (int, []byte, error) {
	return s.backend.Relay(ctx, http.MethodGet, fmt.Sprintf("/meals/%s", mealID), sessionCookie)
}

// RelayRestaurantMeals forwards a restaurant menu listing to the backend
// verbatim.
func (s *CatalogService) RelayRestaurantMeals(ctx context.Context, sessionCookie, restaurantID string) (int, []byte, error) {
	return s.backend.Relay(ctx, http.MethodGet, fmt.Sprintf("/restaurants/%s/meals", restaurantID), sessionCookie)
}
