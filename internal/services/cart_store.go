package services

import (
	"context"
	"log"

	"golang-food-storefront/internal/models"
	"golang-food-storefront/internal/repositories"
)

// CartStore holds the authoritative entry list for one client device and
// keeps the durable record in sync. Every mutation is a total function over
// the entry list: entries stay unique by item id, quantities never drop
// below one, and a write that would zero a quantity removes the entry.
//
// The store is hydrated once at construction. A failed persistence write is
// logged and never rolls back memory; the in-memory state stays
// authoritative for the session.
type CartStore struct {
	deviceID string
	lines    models.CartLines
	repo     repositories.CartRepository
}

// NewCartStore hydrates a store from the durable record for the device. A
// load failure starts an empty cart rather than failing the caller.
func NewCartStore(ctx context.Context, deviceID string, repo repositories.CartRepository) *CartStore {
	lines, err := repo.Load(ctx, deviceID)
	if err != nil {
		log.Printf("Failed to load cart for device %s, starting empty: %v", deviceID, err)
		lines = models.CartLines{}
	}

	return &CartStore{
		deviceID: deviceID,
		lines:    lines,
		repo:     repo,
	}
}

// AddItem merges quantity into an existing entry or appends a new one. An
// existing entry keeps the name, price and image captured by its first add;
// a later add never refreshes the snapshot. Quantities below one count as
// one. Cross-restaurant adds are always accepted; the single-restaurant
// rule is enforced at checkout, not here.
func (s *CartStore) AddItem(ctx context.Context, line models.CartLine, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range s.lines {
		if s.lines[i].ItemID == line.ItemID {
			s.lines[i].Quantity += quantity
			s.persist(ctx)
			return
		}
	}

	line.Quantity = quantity
	s.lines = append(s.lines, line)
	s.persist(ctx)
}

// RemoveItem deletes the entry with the given item id. Unknown ids are a
// silent no-op.
func (s *CartStore) RemoveItem(ctx context.Context, itemID string) {
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets the entry's quantity exactly. A quantity of zero or
// below removes the entry instead of storing a non-positive value.
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, itemID)
		return
	}

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the entry list unconditionally and drops the durable
// record rather than saving an empty one.
func (s *CartStore) Clear(ctx context.Context) {
	s.lines = models.CartLines{}
	if err := s.repo.Delete(ctx, s.deviceID); err != nil {
		// Non-fatal, same as a failed save.
		log.Printf("Failed to delete cart record for device %s: %v", s.deviceID, err)
	}
}

// Lines returns a copy of the current entry list.
func (s *CartStore) Lines() []models.CartLine {
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// TotalItems is recomputed over the live list on every call; totals are
// never cached.
func (s *CartStore) TotalItems() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity. Rounding and currency
// formatting are display concerns left to callers.
func (s *CartStore) TotalPrice() float64 {
	var total float64
	for _, line := range s.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// RestaurantIDs returns the distinct restaurant ids across entries in order
// of first appearance.
func (s *CartStore) RestaurantIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, line := range s.lines {
		if !seen[line.RestaurantID] {
			seen[line.RestaurantID] = true
			ids = append(ids, line.RestaurantID)
		}
	}
	return ids
}

func (s *CartStore) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.deviceID, s.lines); err != nil {
		// Non-fatal: memory stays authoritative for the session.
		log.Printf("Failed to persist cart for device %s: %v", s.deviceID, err)
	}
}
