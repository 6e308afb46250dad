// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},
		&product.Category{},
		&product.Product{},
		&product.Addon{},
		&settings.SiteSettings{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",
		"CREATE INDEX IF NOT EXISTS idx_product_addons_product ON product_addons(product_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedInitialData seeds an admin account and sample catalog data for
// development environments.
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	var userCount int64
	m.db.Model(&user.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("Admin1234"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := user.User{
			Email:     "admin@example.com",
			Password:  string(hashed),
			FirstName: "Store",
			LastName:  "Admin",
			IsActive:  true,
			IsAdmin:   true,
		}
		if err := m.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Println("Seeded admin user admin@example.com")
	}

	var categoryCount int64
	m.db.Model(&product.Category{}).Count(&categoryCount)
	if categoryCount == 0 {
		categories := []product.Category{
			{Name: "Sneakers", Slug: "sneakers", SortOrder: 1, IsActive: true},
			{Name: "Running", Slug: "running", SortOrder: 2, IsActive: true},
			{Name: "Accessories", Slug: "accessories", SortOrder: 3, IsActive: true},
		}
		if err := m.db.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		products := []product.Product{
			{
				SKU:         "SNK-001",
				Name:        "Court Classic",
				Slug:        "court-classic",
				Description: "Low-top everyday sneaker.",
				Price:       8900,
				CategoryID:  categories[0].ID,
				Sizes:       "38,39,40,41,42,43",
				IsActive:    true,
				IsFeatured:  true,
				Addons: []product.Addon{
					{Name: "Custom laces", Price: 500},
					{Name: "Gift wrap", Price: 300},
				},
			},
			{
				SKU:         "RUN-001",
				Name:        "Road Racer",
				Slug:        "road-racer",
				Description: "Lightweight road running shoe.",
				Price:       12900,
				CategoryID:  categories[1].ID,
				Sizes:       "39,40,41,42,43,44",
				IsActive:    true,
			},
		}
		if err := m.db.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		log.Printf("Seeded %d sample products", len(products))
	}

	log.Println("✅ Data seeding completed")
	return nil
}
