package user

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupUsers(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	cfg := &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4}, // Minimum cost; tests only
	}

	return NewService(db, cfg), db
}

func seedAdmin(t *testing.T, service *Service, db *gorm.DB) *User {
	t.Helper()

	hash, err := auth.NewPasswordManager(service.config).HashPassword("Admin1234")
	require.NoError(t, err)

	admin := User{
		Email:     "Admin@Example.com",
		Password:  hash,
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
		IsAdmin:   true,
	}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func TestLogin(t *testing.T) {
	service, db := setupUsers(t)
	seedAdmin(t, service, db)

	resp, err := service.Login(&LoginRequest{Email: "admin@example.com", Password: "Admin1234"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.True(t, resp.User.IsAdmin)
	assert.NotNil(t, resp.User.LastLoginAt)
	// Emails are stored and matched lowercase
	assert.Equal(t, "admin@example.com", resp.User.Email)
}

func TestLogin_Failures(t *testing.T) {
	service, db := setupUsers(t)
	admin := seedAdmin(t, service, db)

	_, err := service.Login(&LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Error(t, err)

	_, err = service.Login(&LoginRequest{Email: "nobody@example.com", Password: "Admin1234"})
	assert.Error(t, err)

	// Deactivated accounts cannot sign in even with the right password
	require.NoError(t, db.Model(admin).Update("is_active", false).Error)
	_, err = service.Login(&LoginRequest{Email: "admin@example.com", Password: "Admin1234"})
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	service, db := setupUsers(t)
	admin := seedAdmin(t, service, db)

	resp, err := service.Login(&LoginRequest{Email: "admin@example.com", Password: "Admin1234"})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, admin.ID, refreshed.User.ID)

	// Access tokens are not accepted as refresh tokens
	_, err = service.RefreshToken(resp.AccessToken)
	assert.Error(t, err)

	// A deactivated user cannot refresh
	require.NoError(t, db.Model(admin).Update("is_active", false).Error)
	_, err = service.RefreshToken(resp.RefreshToken)
	assert.Error(t, err)
}

func TestGetByID(t *testing.T) {
	service, db := setupUsers(t)
	admin := seedAdmin(t, service, db)

	found, err := service.GetByID(admin.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Store Admin", found.GetFullName())

	missing, err := service.GetByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
