package contact

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeSender struct {
	sent []*email.Message
	err  error
}

func (f *fakeSender) Send(msg *email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func setupContact(t *testing.T, sender email.Sender) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&settings.SiteSettings{}))

	cfg := &config.Config{
		Store: config.StoreConfig{Name: "Test Store"},
		Email: config.EmailConfig{FromEmail: "shop@example.com"},
	}

	return NewService(cfg, sender, settings.NewService(db, cfg)), db
}

func TestSubmit(t *testing.T) {
	sender := &fakeSender{}
	service, _ := setupContact(t, sender)

	fieldErrors, err := service.Submit(&SubmitRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Do you ship to Portugal?",
	})
	require.NoError(t, err)
	require.Empty(t, fieldErrors)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"shop@example.com"}, msg.To)
	assert.Equal(t, "Contact form: Ada", msg.Subject)
	assert.Contains(t, msg.Body, "Do you ship to Portugal?")
	assert.Equal(t, "ada@example.com", msg.ReplyTo, "replies go to the visitor")
}

func TestSubmit_UsesSettingsRecipient(t *testing.T) {
	sender := &fakeSender{}
	service, db := setupContact(t, sender)

	require.NoError(t, db.Create(&settings.SiteSettings{
		StoreName:    "Test Store",
		ContactEmail: "owner@example.com",
	}).Error)

	_, err := service.Submit(&SubmitRequest{
		Name: "Ada", Email: "ada@example.com", Message: "Hi",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"owner@example.com"}, sender.sent[0].To)
}

func TestSubmit_FieldValidation(t *testing.T) {
	sender := &fakeSender{}
	service, _ := setupContact(t, sender)

	fieldErrors, err := service.Submit(&SubmitRequest{
		Name:    "  ",
		Email:   "not-an-email",
		Message: " ",
	})
	require.NoError(t, err)
	assert.Contains(t, fieldErrors, "name")
	assert.Contains(t, fieldErrors, "email")
	assert.Contains(t, fieldErrors, "message")
	assert.Empty(t, sender.sent, "invalid submissions are never delivered")

	fieldErrors, err = service.Submit(&SubmitRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: strings.Repeat("x", 5001),
	})
	require.NoError(t, err)
	assert.Contains(t, fieldErrors, "message")
}

func TestSubmit_DeliveryFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp: connection refused")}
	service, _ := setupContact(t, sender)

	fieldErrors, err := service.Submit(&SubmitRequest{
		Name: "Ada", Email: "ada@example.com", Message: "Hi",
	})
	require.Error(t, err)
	assert.Empty(t, fieldErrors)
}
