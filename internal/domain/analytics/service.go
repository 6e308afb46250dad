// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Service computes the admin dashboard summary
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// DashboardSummary represents the counts shown on the admin dashboard
type DashboardSummary struct {
	TotalProducts   int64 `json:"total_products"`
	ActiveProducts  int64 `json:"active_products"`
	TotalCategories int64 `json:"total_categories"`
	TotalUsers      int64 `json:"total_users"`
	OpenGuestCarts  int64 `json:"open_guest_carts"`
}

// Dashboard returns the admin dashboard summary
func (s *Service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	var summary DashboardSummary

	if err := s.db.Model(&product.Product{}).Count(&summary.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&product.Product{}).Where("is_active = ?", true).
		Count(&summary.ActiveProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}
	if err := s.db.Model(&product.Category{}).Where("is_active = ?", true).
		Count(&summary.TotalCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if err := s.db.Model(&user.User{}).Count(&summary.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	// Open guest carts are counted from their snapshot keys; a Redis hiccup
	// degrades the count to zero rather than failing the dashboard.
	var cursor uint64
	for {
		keys, next, err := s.redisClient.Scan(ctx, cursor, "cart:session:*", 100).Result()
		if err != nil {
			break
		}
		summary.OpenGuestCarts += int64(len(keys))
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return &summary, nil
}
