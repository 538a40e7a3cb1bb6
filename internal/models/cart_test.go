package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLinesRoundTrip(t *testing.T) {
	lines := CartLines{
		{ItemID: "m1", Name: "Margherita", UnitPrice: 9.5, RestaurantID: "r1", Quantity: 2},
		{ItemID: "m2", Name: "Biryani", UnitPrice: 12, RestaurantID: "r2", Quantity: 1},
	}

	value, err := lines.Value()
	require.NoError(t, err)

	var decoded CartLines
	require.NoError(t, decoded.Scan(value.([]byte)))
	assert.Equal(t, lines, decoded)
}

func TestCartLinesScanMalformedPayloadLoadsEmpty(t *testing.T) {
	var decoded CartLines
	// No versioning or migration: an unreadable payload is "no prior cart",
	// not a load failure.
	require.NoError(t, decoded.Scan([]byte(`{"not": "a list"`)))
	assert.Empty(t, decoded)
}

func TestCartLinesScanNil(t *testing.T) {
	var decoded CartLines
	require.NoError(t, decoded.Scan(nil))
	assert.Empty(t, decoded)
}

func TestMealEffectivePrice(t *testing.T) {
	meal := Meal{Price: 9.5}
	assert.Equal(t, 9.5, meal.EffectivePrice())

	discount := 7.0
	meal.DiscountPrice = &discount
	assert.Equal(t, 7.0, meal.EffectivePrice())

	zero := 0.0
	meal.DiscountPrice = &zero
	assert.Equal(t, 9.5, meal.EffectivePrice())
}
