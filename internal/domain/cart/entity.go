// internal/domain/cart/entity.go
package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/product"
)

// Addon is an add-on attached to a line item, with its price captured at
// the time the item was added.
type Addon struct {
	Name  string `json:"name"`
	Price int64  `json:"price"` // Price in cents
}

// LineItem is one cart entry. Its ID is derived from the product, size and
// sorted addon names, so repeated additions of the same combination collapse
// into a single entry.
type LineItem struct {
	ID        string    `json:"id"`
	ProductID uint      `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"` // Product price at time of adding, in cents
	Addons    []Addon   `json:"addons,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// UnitPrice returns the per-unit price including addons
func (li *LineItem) UnitPrice() int64 {
	total := li.Price
	for _, a := range li.Addons {
		total += a.Price
	}
	return total
}

// LineTotal returns the line price for the current quantity
func (li *LineItem) LineTotal() int64 {
	return li.UnitPrice() * int64(li.Quantity)
}

// Snapshot is the full persisted cart state. Every mutation rewrites the
// whole snapshot under a single key; item order is insertion order.
type Snapshot struct {
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ItemResponse is a line item enriched with current product details
type ItemResponse struct {
	LineItem
	Product   *product.Product `json:"product,omitempty"`
	LineTotal int64            `json:"line_total"`
}

// Response represents a shopping cart with items and totals
type Response struct {
	Items     []ItemResponse `json:"items"`
	Totals    Totals         `json:"totals"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Totals represents calculated cart totals
type Totals struct {
	UniqueItems int   `json:"unique_items"` // Number of distinct line items
	ItemCount   int   `json:"item_count"`   // Sum of all quantities
	TotalPrice  int64 `json:"total_price"`  // Sum of line totals, in cents
}

// NormalizeAddons returns a copy sorted by name, so that line item identity
// does not depend on the order addons were selected in.
func NormalizeAddons(addons []Addon) []Addon {
	if len(addons) == 0 {
		return nil
	}
	normalized := make([]Addon, len(addons))
	copy(normalized, addons)
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Name < normalized[j].Name
	})
	return normalized
}

// LineItemID derives the composite identity for a product/size/addon
// combination. Addon names are sorted first, so identity is independent of
// selection order.
func LineItemID(productID uint, size string, addons []Addon) string {
	names := make([]string, len(addons))
	for i, a := range addons {
		names[i] = a.Name
	}
	sort.Strings(names)

	key := fmt.Sprintf("%d|%s|%s", productID, size, strings.Join(names, ","))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
