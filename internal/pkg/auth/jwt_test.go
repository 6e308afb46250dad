package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func testJWTConfig(secret string, accessExpiry time.Duration) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             secret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("test-secret-key-that-is-long-enough", time.Hour))

	token, err := manager.GenerateAccessToken(42, "admin@example.com", true)
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "user:42", claims.Subject)
}

func TestTokenTypeEnforcement(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("test-secret-key-that-is-long-enough", time.Hour))

	access, err := manager.GenerateAccessToken(1, "a@example.com", false)
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken(1, "a@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(access)
	assert.Error(t, err, "access token must not pass as refresh")

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err, "refresh token must not pass as access")

	claims, err := manager.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin, "refresh tokens never carry admin status")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("test-secret-key-that-is-long-enough", time.Hour))
	other := NewJWTManager(testJWTConfig("a-completely-different-secret-key!!", time.Hour))

	token, err := manager.GenerateAccessToken(1, "a@example.com", false)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager(testJWTConfig("test-secret-key-that-is-long-enough", -time.Minute))

	token, err := manager.GenerateAccessToken(1, "a@example.com", false)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
