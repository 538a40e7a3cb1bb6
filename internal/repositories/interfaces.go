package repositories

import (
	"context"

	"golang-food-storefront/internal/models"
)

// CartRepository is the durable store behind the in-memory cart. Load is
// called once per store hydration; Save writes the full entry list after
// every mutation.
type CartRepository interface {
	Load(ctx context.Context, deviceID string) (models.CartLines, error)
	Save(ctx context.Context, deviceID string, lines models.CartLines) error
	Delete(ctx context.Context, deviceID string) error
}
