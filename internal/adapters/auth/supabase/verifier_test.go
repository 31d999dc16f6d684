package supabase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, key string, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func validClaims() tokenClaims {
	return tokenClaims{
		Email: "ana@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewVerifier(secret, WithAudience("authenticated"))

	claims, err := v.Verify(context.Background(), sign(t, secret, jwt.SigningMethodHS256, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestVerify_WrongSecret(t *testing.T) {
	v := NewVerifier(secret)

	_, err := v.Verify(context.Background(), sign(t, "another-secret-another-secret-another", jwt.SigningMethodHS256, validClaims()))
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	v := NewVerifier(secret)
	c := validClaims()
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	_, err := v.Verify(context.Background(), sign(t, secret, jwt.SigningMethodHS256, c))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	v := NewVerifier(secret)

	_, err := v.Verify(context.Background(), sign(t, secret, jwt.SigningMethodHS512, validClaims()))
	assert.Error(t, err)
}

func TestVerify_MissingSubject(t *testing.T) {
	v := NewVerifier(secret)
	c := validClaims()
	c.Subject = ""

	_, err := v.Verify(context.Background(), sign(t, secret, jwt.SigningMethodHS256, c))
	assert.Error(t, err)
}

func TestVerify_NotConfigured(t *testing.T) {
	_, err := NewVerifier("").Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewVerifier(secret).Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
