package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLineItemID_IndependentOfAddonOrder(t *testing.T) {
	a := []Addon{{Name: "Custom laces", Price: 500}, {Name: "Gift wrap", Price: 300}}
	b := []Addon{{Name: "Gift wrap", Price: 300}, {Name: "Custom laces", Price: 500}}

	assert.Equal(t, LineItemID(1, "42", a), LineItemID(1, "42", b))
}

func TestLineItemID_DistinguishesCombinations(t *testing.T) {
	addons := []Addon{{Name: "Gift wrap", Price: 300}}

	base := LineItemID(1, "42", addons)

	assert.NotEqual(t, base, LineItemID(2, "42", addons), "different product")
	assert.NotEqual(t, base, LineItemID(1, "43", addons), "different size")
	assert.NotEqual(t, base, LineItemID(1, "42", nil), "different addons")
}

func TestNormalizeAddons(t *testing.T) {
	original := []Addon{{Name: "Gift wrap", Price: 300}, {Name: "Custom laces", Price: 500}}

	normalized := NormalizeAddons(original)

	assert.Equal(t, "Custom laces", normalized[0].Name)
	assert.Equal(t, "Gift wrap", normalized[1].Name)
	// Input slice is left untouched
	assert.Equal(t, "Gift wrap", original[0].Name)

	assert.Nil(t, NormalizeAddons(nil))
}

func TestLineItemPricing(t *testing.T) {
	item := LineItem{
		Quantity: 3,
		Price:    8900,
		Addons:   []Addon{{Name: "Custom laces", Price: 500}},
		AddedAt:  time.Now(),
	}

	assert.Equal(t, int64(9400), item.UnitPrice())
	assert.Equal(t, int64(28200), item.LineTotal())
}
