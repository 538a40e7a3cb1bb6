package services

import (
	"context"
	"log"
	"sync"
	"time"

	"golang-food-storefront/internal/models"
	"golang-food-storefront/internal/repositories"
	"golang-food-storefront/pkg/cache"
	"golang-food-storefront/pkg/messaging"
)

const cartEventsTopic = "cart-events"

// CartService maps client devices to their cart stores and serializes
// mutations. The original surface ran every cart operation on a single
// event loop; the mutex gives the same guarantee here: each mutation reads
// the latest state, two rapid adds are applied in dispatch order and no
// update is lost.
type CartService struct {
	cartRepo repositories.CartRepository
	cache    *cache.RedisCache
	producer EventPublisher
	brokers  []string

	mu     sync.Mutex
	stores map[string]*CartStore
}

func NewCartService(cartRepo repositories.CartRepository, cache *cache.RedisCache, producer EventPublisher, brokers []string) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		cache:    cache,
		producer: producer,
		brokers:  brokers,
		stores:   make(map[string]*CartStore),
	}
}

type CartLineResponse struct {
	ItemID         string  `json:"item_id"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unit_price"`
	ImageRef       string  `json:"image_ref,omitempty"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name,omitempty"`
	Quantity       int     `json:"quantity"`
	LineTotal      float64 `json:"line_total"`
}

type CartResponse struct {
	Items         []CartLineResponse `json:"items"`
	TotalItems    int                `json:"total_items"`
	TotalPrice    float64            `json:"total_price"`
	RestaurantIDs []string           `json:"restaurant_ids,omitempty"`
}

// GetCart returns the cart with derived totals. Reads go through the Redis
// response cache when one is configured.
func (s *CartService) GetCart(ctx context.Context, deviceID string) *CartResponse {
	cacheKey := "cart:" + deviceID
	if s.cache != nil {
		var cached CartResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached
		}
	}

	s.mu.Lock()
	store := s.store(ctx, deviceID)
	response := buildCartResponse(store)
	s.mu.Unlock()

	if s.cache != nil {
		// Cache for 10 minutes
		s.cache.Set(ctx, cacheKey, response, time.Minute*10)
	}

	return response
}

// AddItem never rejects an add; the single-restaurant rule is a read-time
// gate evaluated at checkout. A batch add is one call with a quantity delta
// and therefore one persistence write.
func (s *CartService) AddItem(ctx context.Context, deviceID string, line models.CartLine, quantity int) *CartResponse {
	s.mu.Lock()
	store := s.store(ctx, deviceID)
	store.AddItem(ctx, line, quantity)
	response := buildCartResponse(store)
	s.mu.Unlock()

	s.clearCartCache(ctx, deviceID)
	return response
}

func (s *CartService) UpdateItem(ctx context.Context, deviceID, itemID string, quantity int) *CartResponse {
	s.mu.Lock()
	store := s.store(ctx, deviceID)
	store.UpdateQuantity(ctx, itemID, quantity)
	response := buildCartResponse(store)
	s.mu.Unlock()

	s.clearCartCache(ctx, deviceID)
	return response
}

func (s *CartService) RemoveItem(ctx context.Context, deviceID, itemID string) *CartResponse {
	s.mu.Lock()
	store := s.store(ctx, deviceID)
	store.RemoveItem(ctx, itemID)
	response := buildCartResponse(store)
	s.mu.Unlock()

	s.clearCartCache(ctx, deviceID)
	return response
}

func (s *CartService) ClearCart(ctx context.Context, deviceID string) {
	s.clearCart(ctx, deviceID, "shopper_cleared")
}

// clearCart carries the reason the cart emptied into the published event;
// the checkout hand-off clears with "order_placed".
func (s *CartService) clearCart(ctx context.Context, deviceID, reason string) {
	s.mu.Lock()
	store := s.store(ctx, deviceID)
	store.Clear(ctx)
	s.mu.Unlock()

	s.clearCartCache(ctx, deviceID)
	s.publishCartCleared(deviceID, reason)
}

func (s *CartService) publishCartCleared(deviceID, reason string) {
	if s.producer == nil {
		return
	}

	event := messaging.CartClearedEvent{
		Type:     "cart_cleared",
		DeviceID: deviceID,
		Reason:   reason,
	}
	if err := s.producer.SendMessage(cartEventsTopic, s.brokers, deviceID, event); err != nil {
		// The cart itself is already cleared; a lost event is log-only.
		log.Printf("Failed to publish cart cleared event for device %s: %v", deviceID, err)
	}
}

// Snapshot exposes the state the checkout hand-off contract reads at submit
// time: the entry list, both totals and the distinct restaurant ids.
func (s *CartService) Snapshot(ctx context.Context, deviceID string) ([]models.CartLine, int, float64, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.store(ctx, deviceID)
	return store.Lines(), store.TotalItems(), store.TotalPrice(), store.RestaurantIDs()
}

// store returns the hydrated store for a device, creating it on first use.
// Callers must hold s.mu.
func (s *CartService) store(ctx context.Context, deviceID string) *CartStore {
	if store, exists := s.stores[deviceID]; exists {
		return store
	}

	store := NewCartStore(ctx, deviceID, s.cartRepo)
	s.stores[deviceID] = store
	return store
}

func buildCartResponse(store *CartStore) *CartResponse {
	lines := store.Lines()
	items := make([]CartLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, CartLineResponse{
			ItemID:         line.ItemID,
			Name:           line.Name,
			UnitPrice:      line.UnitPrice,
			ImageRef:       line.ImageRef,
			RestaurantID:   line.RestaurantID,
			RestaurantName: line.RestaurantName,
			Quantity:       line.Quantity,
			LineTotal:      line.UnitPrice * float64(line.Quantity),
		})
	}

	return &CartResponse{
		Items:         items,
		TotalItems:    store.TotalItems(),
		TotalPrice:    store.TotalPrice(),
		RestaurantIDs: store.RestaurantIDs(),
	}
}

func (s *CartService) clearCartCache(ctx context.Context, deviceID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, "cart:"+deviceID)
}
