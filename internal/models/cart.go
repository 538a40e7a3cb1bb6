package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// CartLine is one distinct orderable item the shopper has selected. Name,
// price and image are snapshotted from the catalog at add time and never
// refreshed by later adds.
type CartLine struct {
	ItemID         string  `json:"item_id"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unit_price"`
	ImageRef       string  `json:"image_ref,omitempty"`
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name,omitempty"`
	Quantity       int     `json:"quantity"`
}

// CartLines is the JSONB column type for the persisted entry list.
type CartLines []CartLine

func (l CartLines) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(CartLines{})
	}
	return json.Marshal(l)
}

// Scan treats a payload that does not decode as an empty cart rather than a
// load failure. There is no versioning or migration for stored carts.
func (l *CartLines) Scan(value interface{}) error {
	if value == nil {
		*l = CartLines{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	var lines CartLines
	if err := json.Unmarshal(bytes, &lines); err != nil {
		log.Printf("Malformed cart payload, loading empty cart: %v", err)
		*l = CartLines{}
		return nil
	}

	*l = lines
	return nil
}

// CartRecord model - PostgreSQL (one durable record per client device)
type CartRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeviceID  string    `gorm:"uniqueIndex;not null" json:"device_id"`
	Items     CartLines `gorm:"type:jsonb" json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
