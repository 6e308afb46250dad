// internal/domain/product/entity.go
package product

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product represents the product entity
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SKU         string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // Price in cents
	Image       string         `gorm:"size:500" json:"image"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	Sizes       string         `gorm:"size:255" json:"sizes"` // Comma-separated offered sizes
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsFeatured  bool           `gorm:"default:false" json:"is_featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Addons   []Addon  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addons,omitempty"`
}

// Category represents product categories
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Addon represents an optional product extra (e.g. gift wrap, custom laces)
// that can be attached to a cart line item for an additional price.
type Addon struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Price     int64     `gorm:"not null" json:"price"` // Price in cents
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }
func (Addon) TableName() string    { return "product_addons" }

// SizeList returns the offered sizes as a slice
func (p *Product) SizeList() []string {
	if p.Sizes == "" {
		return nil
	}
	parts := strings.Split(p.Sizes, ",")
	sizes := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// HasSize reports whether the product is offered in the given size
func (p *Product) HasSize(size string) bool {
	for _, s := range p.SizeList() {
		if s == size {
			return true
		}
	}
	return false
}

// FindAddon returns the addon with the given name, or nil
func (p *Product) FindAddon(name string) *Addon {
	for i := range p.Addons {
		if p.Addons[i].Name == name {
			return &p.Addons[i]
		}
	}
	return nil
}

// GetFormattedPrice returns the price in major currency units
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}
