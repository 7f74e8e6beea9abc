package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleetrent-backend/internal/security"
)

const testSecret = "test-secret-that-is-long-enough-123456"

func TestTokenManager_RoundTrip(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, 60, 60*24)

	t.Run("Access token", func(t *testing.T) {
		token, err := mgr.GenerateAccessToken(42, "buyer@test.com", "BUYER")
		assert.NoError(t, err)

		claims, err := mgr.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), claims.UserID)
		assert.Equal(t, "buyer@test.com", claims.Email)
		assert.Equal(t, "BUYER", claims.Role)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("Refresh token carries no role", func(t *testing.T) {
		token, err := mgr.GenerateRefreshToken(42, "buyer@test.com")
		assert.NoError(t, err)

		claims, err := mgr.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
		assert.Empty(t, claims.Role)
	})

	t.Run("Tampered token rejected", func(t *testing.T) {
		token, err := mgr.GenerateAccessToken(42, "buyer@test.com", "BUYER")
		assert.NoError(t, err)

		_, err = mgr.ValidateToken(token + "x")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Wrong secret rejected", func(t *testing.T) {
		other := security.NewTokenManager("another-secret-that-is-long-enough-xyz", 60, 60)
		token, err := other.GenerateAccessToken(42, "buyer@test.com", "BUYER")
		assert.NoError(t, err)

		_, err = mgr.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
