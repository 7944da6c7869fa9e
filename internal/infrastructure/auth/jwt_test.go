package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balmstore/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters-long",
		AccessTokenExpiration: expiration,
		Issuer:                "balmstore-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.GenerateToken(TokenInput{
		UserID:  42,
		Email:   "admin@example.com",
		Name:    "Admin",
		IsAdmin: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "Admin", claims.Name)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "balmstore-test", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	service := newTestService(time.Hour)

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-also-32-characters-xx",
			AccessTokenExpiration: time.Hour,
			Issuer:                "balmstore-test",
		})
		token, err := other.GenerateToken(TokenInput{UserID: 1, Email: "a@b.co"})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		token, err := expired.GenerateToken(TokenInput{UserID: 1, Email: "a@b.co"})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects zero user id", func(t *testing.T) {
		token, err := service.GenerateToken(TokenInput{UserID: 0, Email: "a@b.co"})
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}
