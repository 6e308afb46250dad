// internal/domain/settings/service.go
package settings

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles site settings business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new settings service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UpdateRequest represents a settings update; nil fields are left unchanged
type UpdateRequest struct {
	StoreName      *string `json:"store_name"`
	WhatsAppNumber *string `json:"whatsapp_number"`
	Currency       *string `json:"currency"`
	Announcement   *string `json:"announcement"`
	ContactEmail   *string `json:"contact_email"`
}

// FieldErrors maps field names to validation messages, surfaced inline next
// to the offending field rather than as a single opaque error.
type FieldErrors map[string]string

// Get returns the site settings, creating the row from config defaults on
// first access.
func (s *Service) Get() (*SiteSettings, error) {
	var settings SiteSettings
	err := s.db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = SiteSettings{
			StoreName:      s.config.Store.Name,
			WhatsAppNumber: s.config.Store.WhatsAppNumber,
			Currency:       s.config.Store.Currency,
			ContactEmail:   s.config.Email.FromEmail,
		}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve settings: %w", err)
	}
	return &settings, nil
}

// Update validates and applies a partial settings update. Validation
// failures are returned per field; nothing is persisted unless all provided
// fields pass.
func (s *Service) Update(req *UpdateRequest) (*SiteSettings, FieldErrors, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, nil, err
	}

	fieldErrors := s.validate(req)
	if len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	updates := map[string]interface{}{}
	if req.StoreName != nil {
		updates["store_name"] = strings.TrimSpace(*req.StoreName)
	}
	if req.WhatsAppNumber != nil {
		updates["whats_app_number"] = normalizePhone(*req.WhatsAppNumber)
	}
	if req.Currency != nil {
		updates["currency"] = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Announcement != nil {
		updates["announcement"] = strings.TrimSpace(*req.Announcement)
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = strings.ToLower(strings.TrimSpace(*req.ContactEmail))
	}

	if len(updates) > 0 {
		if err := s.db.Model(settings).Updates(updates).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}

	updated, err := s.Get()
	return updated, nil, err
}

func (s *Service) validate(req *UpdateRequest) FieldErrors {
	fieldErrors := FieldErrors{}

	if req.StoreName != nil && strings.TrimSpace(*req.StoreName) == "" {
		fieldErrors["store_name"] = "store name cannot be empty"
	}
	if req.WhatsAppNumber != nil {
		if phone := normalizePhone(*req.WhatsAppNumber); phone != "" && !validPhone(phone) {
			fieldErrors["whatsapp_number"] = "must be an international number with digits only"
		}
	}
	if req.Currency != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(code) != 3 {
			fieldErrors["currency"] = "must be a 3-letter currency code"
		}
	}
	if req.Announcement != nil && len(*req.Announcement) > 500 {
		fieldErrors["announcement"] = "must be at most 500 characters"
	}
	if req.ContactEmail != nil {
		email := strings.TrimSpace(*req.ContactEmail)
		if email != "" && !strings.Contains(email, "@") {
			fieldErrors["contact_email"] = "must be a valid email address"
		}
	}

	return fieldErrors
}

// normalizePhone strips spaces, dashes and a leading plus sign
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}

func validPhone(phone string) bool {
	if len(phone) < 7 || len(phone) > 15 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
