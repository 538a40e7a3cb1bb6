package models

// Meal is the catalog record shape returned by the commerce backend. The
// backend owns catalog data; the storefront only reads it to build cart
// lines and to relay listings.
type Meal struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Price          float64  `json:"price"`
	DiscountPrice  *float64 `json:"discount_price,omitempty"`
	Image          string   `json:"image,omitempty"`
	RestaurantID   string   `json:"restaurant_id"`
	RestaurantName string   `json:"restaurant_name,omitempty"`
	IsAvailable    bool     `json:"is_available"`
}

// EffectivePrice is the price the storefront displays and therefore the
// value snapshotted into a cart line.
func (m *Meal) EffectivePrice() float64 {
	if m.DiscountPrice != nil && *m.DiscountPrice > 0 {
		return *m.DiscountPrice
	}
	return m.Price
}
