// internal/domain/settings/entity.go
package settings

import "time"

// SiteSettings is the single-row store configuration edited from the admin
// panel. Defaults come from config; the row overrides them once created.
type SiteSettings struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StoreName      string    `gorm:"not null;size:255" json:"store_name"`
	WhatsAppNumber string    `gorm:"size:20" json:"whatsapp_number"`
	Currency       string    `gorm:"not null;size:3" json:"currency"`
	Announcement   string    `gorm:"size:500" json:"announcement"`
	ContactEmail   string    `gorm:"size:255" json:"contact_email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (SiteSettings) TableName() string {
	return "site_settings"
}
