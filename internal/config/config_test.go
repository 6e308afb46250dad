package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t, 2*time.Second, cfg.Security.SessionCheckWait)
	assert.Equal(t, "USD", cfg.Store.Currency)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_CHECK_WAIT", "5s")
	t.Setenv("STORE_WHATSAPP_NUMBER", "+15551234567")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com,https://admin.example.com")
	t.Setenv("APP_DEBUG", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Security.SessionCheckWait)
	assert.Equal(t, "+15551234567", cfg.Store.WhatsAppNumber)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"},
		cfg.Security.CORSAllowedOrigins)
	assert.False(t, cfg.App.Debug)
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-perfectly-reasonable-32-char-secret")
	t.Setenv("SESSION_CHECK_WAIT", "0s")
	_, err = Load()
	assert.Error(t, err)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "app", Password: "pw", Name: "store", SSLMode: "disable",
	}}

	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=store sslmode=disable",
		cfg.GetDatabaseDSN())
}
