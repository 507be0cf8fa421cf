package auth

import (
	"testing"
	"time"

	"github.com/busstore/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "busstore-backend",
		MaxRefreshCount:        3,
	})
}

func TestGenerateTokenPair(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "ana@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateToken(t *testing.T) {
	service := newTestJWTService()
	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "ana@example.com",
	})
	require.NoError(t, err)

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("access token is not a valid refresh token", func(t *testing.T) {
		_, err := service.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("refresh token is not a valid access token", func(t *testing.T) {
		_, err := service.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "completely-different-secret-value!!",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "busstore-backend",
		})
		otherPair, err := other.GenerateTokenPair(GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "ana@example.com",
		})
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(otherPair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token maps to ErrExpiredToken", func(t *testing.T) {
		shortLived := NewJWTService(config.JWTConfig{
			Secret:                 "test-access-secret-test-access-secret",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "busstore-backend",
		})
		expiredPair, err := shortLived.GenerateTokenPair(GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "ana@example.com",
		})
		require.NoError(t, err)

		_, err = shortLived.ValidateAccessToken(expiredPair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "ana@example.com",
	})
	require.NoError(t, err)

	t.Run("rotation preserves identity and bumps the count", func(t *testing.T) {
		rotated, err := service.RefreshTokenPair(pair.RefreshToken)
		require.NoError(t, err)

		claims, err := service.ValidateRefreshToken(rotated.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, 1, claims.RefreshCount)
	})

	t.Run("rotation stops at the configured limit", func(t *testing.T) {
		current := pair.RefreshToken
		for i := 0; i < 3; i++ {
			rotated, err := service.RefreshTokenPair(current)
			require.NoError(t, err)
			current = rotated.RefreshToken
		}

		_, err := service.RefreshTokenPair(current)
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("access token cannot be used to refresh", func(t *testing.T) {
		_, err := service.RefreshTokenPair(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestClaimsGetRemainingTTL(t *testing.T) {
	service := newTestJWTService()
	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "ana@example.com",
	})
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
