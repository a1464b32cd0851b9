package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/shared/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "fiwe", AccessExpMinutes: 15})
}

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := newTestService()

	token, err := svc.Generate(42, "user")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, int64(15*60), token.ExpiresIn)

	claims, err := svc.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "fiwe", claims.Issuer)
}

func TestJWTService_GenerateValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Generate(0, "user")
	assert.Error(t, err)

	_, err = svc.Generate(1, "")
	assert.Error(t, err)
}

func TestJWTService_VerifyRejects(t *testing.T) {
	svc := newTestService()
	token, err := svc.Generate(7, "admin")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "other", Issuer: "fiwe", AccessExpMinutes: 15})
		_, err := other.Verify(token.Token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else", AccessExpMinutes: 15})
		_, err := other.Verify(token.Token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		claims := &Claims{
			UserID: 7,
			Role:   "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "fiwe",
				ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(past),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(signed)
		assert.Error(t, err)
	})

	t.Run("missing user id", func(t *testing.T) {
		claims := &Claims{
			Role: "user",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "fiwe",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTService_DefaultTTL(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s"})
	assert.Equal(t, time.Hour, svc.AccessTTL())
}
