package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

func newTokenTestManager() *auth.JWTManager {
	return auth.NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	})
}

func TestTokenProvider_ValidToken(t *testing.T) {
	manager := newTokenTestManager()
	token, err := manager.GenerateAccessToken(7, "admin@example.com", true)
	require.NoError(t, err)

	provider := NewTokenProvider(manager, NewBroker(), token)

	sess, err := provider.CurrentSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, uint(7), sess.UserID)
	assert.Equal(t, "admin@example.com", sess.Email)
	assert.True(t, sess.IsAdmin)
}

func TestTokenProvider_NoSessionCases(t *testing.T) {
	manager := newTokenTestManager()

	// Missing, garbage and wrong-type tokens all mean "no session", never
	// an error. Errors are reserved for the check itself failing.
	refresh, err := manager.GenerateRefreshToken(7, "admin@example.com")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":         "",
		"garbage":       "not.a.token",
		"refresh token": refresh,
	} {
		t.Run(name, func(t *testing.T) {
			provider := NewTokenProvider(manager, NewBroker(), token)
			sess, err := provider.CurrentSession(context.Background())
			assert.NoError(t, err)
			assert.Nil(t, sess)
		})
	}
}

func TestTokenProvider_CancelledContextIsAnError(t *testing.T) {
	manager := newTokenTestManager()
	provider := NewTokenProvider(manager, NewBroker(), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.CurrentSession(ctx)
	assert.Error(t, err)
}
