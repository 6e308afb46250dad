package settings

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupSettings(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&SiteSettings{}))

	cfg := &config.Config{
		Store: config.StoreConfig{
			Name:           "Default Store",
			WhatsAppNumber: "+15551234567",
			Currency:       "USD",
		},
		Email: config.EmailConfig{FromEmail: "shop@example.com"},
	}

	return NewService(db, cfg)
}

func strPtr(s string) *string { return &s }

func TestGet_CreatesDefaultsOnFirstAccess(t *testing.T) {
	service := setupSettings(t)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "Default Store", settings.StoreName)
	assert.Equal(t, "+15551234567", settings.WhatsAppNumber)
	assert.Equal(t, "USD", settings.Currency)
	assert.Equal(t, "shop@example.com", settings.ContactEmail)

	// Second read returns the same row, not a new one
	again, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestUpdate_AppliesPartialChanges(t *testing.T) {
	service := setupSettings(t)

	updated, fieldErrors, err := service.Update(&UpdateRequest{
		StoreName:      strPtr("  Sneaker Corner  "),
		WhatsAppNumber: strPtr("+49 170 123-4567"),
		Currency:       strPtr("eur"),
		Announcement:   strPtr("Summer sale"),
	})
	require.NoError(t, err)
	require.Empty(t, fieldErrors)

	assert.Equal(t, "Sneaker Corner", updated.StoreName)
	assert.Equal(t, "491701234567", updated.WhatsAppNumber, "phone is normalized to digits")
	assert.Equal(t, "EUR", updated.Currency)
	assert.Equal(t, "Summer sale", updated.Announcement)
	// Untouched fields keep their values
	assert.Equal(t, "shop@example.com", updated.ContactEmail)
}

func TestUpdate_FieldErrorsBlockPersistence(t *testing.T) {
	service := setupSettings(t)

	_, fieldErrors, err := service.Update(&UpdateRequest{
		StoreName:      strPtr("   "),
		WhatsAppNumber: strPtr("not-a-number"),
		Currency:       strPtr("EURO"),
		Announcement:   strPtr(strings.Repeat("x", 501)),
		ContactEmail:   strPtr("nope"),
	})
	require.NoError(t, err)

	assert.Len(t, fieldErrors, 5)
	assert.Contains(t, fieldErrors, "store_name")
	assert.Contains(t, fieldErrors, "whatsapp_number")
	assert.Contains(t, fieldErrors, "currency")
	assert.Contains(t, fieldErrors, "announcement")
	assert.Contains(t, fieldErrors, "contact_email")

	// Nothing was persisted, even though store_name alone would have failed
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "Default Store", settings.StoreName)
	assert.Equal(t, "USD", settings.Currency)
}

func TestUpdate_PhoneLengthBounds(t *testing.T) {
	service := setupSettings(t)

	_, fieldErrors, err := service.Update(&UpdateRequest{WhatsAppNumber: strPtr("123456")})
	require.NoError(t, err)
	assert.Contains(t, fieldErrors, "whatsapp_number", "too short")

	_, fieldErrors, err = service.Update(&UpdateRequest{WhatsAppNumber: strPtr("1234567890123456")})
	require.NoError(t, err)
	assert.Contains(t, fieldErrors, "whatsapp_number", "too long")

	_, fieldErrors, err = service.Update(&UpdateRequest{WhatsAppNumber: strPtr("+1 555 123 4567")})
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
}
