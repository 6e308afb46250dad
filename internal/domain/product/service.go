// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListRequest represents product list query parameters
type ListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	SortBy     string `form:"sort_by,default=created_at"`
	SortOrder  string `form:"sort_order,default=desc"`
	IsFeatured *bool  `form:"is_featured"`
}

// ListResponse represents a paginated product list
type ListResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// CreateRequest represents product creation data
type CreateRequest struct {
	SKU         string       `json:"sku" binding:"required"`
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Price       int64        `json:"price" binding:"required,min=1"`
	Image       string       `json:"image"`
	CategoryID  uint         `json:"category_id" binding:"required"`
	Sizes       string       `json:"sizes"`
	IsActive    bool         `json:"is_active"`
	IsFeatured  bool         `json:"is_featured"`
	Addons      []AddonInput `json:"addons"`
}

// AddonInput represents an addon in create/update payloads
type AddonInput struct {
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"min=0"`
}

// UpdateRequest represents product update data; nil fields are left unchanged
type UpdateRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Price       *int64        `json:"price"`
	Image       *string       `json:"image"`
	CategoryID  *uint         `json:"category_id"`
	Sizes       *string       `json:"sizes"`
	IsActive    *bool         `json:"is_active"`
	IsFeatured  *bool         `json:"is_featured"`
	Addons      *[]AddonInput `json:"addons"`
}

// List returns active products matching the request filters
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	return s.list(req, false)
}

// AdminList returns all products, inactive included
func (s *Service) AdminList(req *ListRequest) (*ListResponse, error) {
	return s.list(req, true)
}

func (s *Service) list(req *ListRequest, includeInactive bool) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Product{}).Preload("Category").Preload("Addons")

	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if req.CategoryID != 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.Search != "" {
		term := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	if req.IsFeatured != nil {
		query = query.Where("is_featured = ?", *req.IsFeatured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	sortBy := req.SortBy
	switch sortBy {
	case "name", "price", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(req.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	var products []Product
	offset := (req.Page - 1) * req.Limit
	err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).Limit(req.Limit).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ListResponse{
		Products:   products,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single active product by ID, or nil if not found
func (s *Service) Get(id uint) (*Product, error) {
	var prod Product
	err := s.db.Preload("Category").Preload("Addons").
		Where("id = ? AND is_active = ?", id, true).First(&prod).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// GetBySlug returns a single active product by slug, or nil if not found
func (s *Service) GetBySlug(slug string) (*Product, error) {
	var prod Product
	err := s.db.Preload("Category").Preload("Addons").
		Where("slug = ? AND is_active = ?", slug, true).First(&prod).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// ListCategories returns all active categories ordered for display
func (s *Service) ListCategories() ([]Category, error) {
	var categories []Category
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create creates a new product with its addons
func (s *Service) Create(req *CreateRequest) (*Product, error) {
	var existing Product
	if err := s.db.Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("product with SKU %s already exists", req.SKU)
	}

	prod := Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		Sizes:       req.Sizes,
		IsActive:    req.IsActive,
		IsFeatured:  req.IsFeatured,
	}
	for _, a := range req.Addons {
		prod.Addons = append(prod.Addons, Addon{Name: a.Name, Price: a.Price})
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return s.adminGet(prod.ID)
}

// Update applies a partial update to a product
func (s *Service) Update(id uint, req *UpdateRequest) (*Product, error) {
	prod, err := s.adminGet(id)
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, nil
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = Slugify(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive")
		}
		updates["price"] = *req.Price
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Sizes != nil {
		updates["sizes"] = *req.Sizes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if len(updates) > 0 {
		if err := s.db.Model(prod).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	// Addons are replaced wholesale when provided
	if req.Addons != nil {
		if err := s.db.Where("product_id = ?", id).Delete(&Addon{}).Error; err != nil {
			return nil, fmt.Errorf("failed to replace addons: %w", err)
		}
		for _, a := range *req.Addons {
			addon := Addon{ProductID: id, Name: a.Name, Price: a.Price}
			if err := s.db.Create(&addon).Error; err != nil {
				return nil, fmt.Errorf("failed to replace addons: %w", err)
			}
		}
	}

	return s.adminGet(id)
}

// Delete soft-deletes a product; returns false if it does not exist
func (s *Service) Delete(id uint) (bool, error) {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete product: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// adminGet loads a product regardless of its active flag
func (s *Service) adminGet(id uint) (*Product, error) {
	var prod Product
	err := s.db.Preload("Category").Preload("Addons").
		Where("id = ?", id).First(&prod).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// Slugify converts a name into a URL-safe slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
