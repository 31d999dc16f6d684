package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-grooming-manager/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("supabase jwt secret not configured")
	ErrTokenEmpty    = errors.New("token is empty")
)

// tokenClaims son los claims que emite Supabase Auth: sub = id del usuario.
type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier validando localmente el JWT (HS256)
// con el secreto del proyecto.
type Verifier struct {
	secret   []byte
	audience string
}

type Option func(*Verifier)

// WithAudience exige el claim aud (Supabase usa "authenticated").
func WithAudience(aud string) Option {
	return func(v *Verifier) { v.audience = strings.TrimSpace(aud) }
}

func NewVerifier(secret string, opts ...Option) *Verifier {
	v := &Verifier{secret: []byte(strings.TrimSpace(secret))}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	var c tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("supabase verify failed: %w", err)
	}
	if !parsed.Valid {
		return auth.Claims{}, errors.New("supabase token invalid")
	}

	uid := strings.TrimSpace(c.Subject)
	if uid == "" {
		return auth.Claims{}, errors.New("supabase claims missing subject")
	}

	return auth.Claims{UserID: uid, Email: c.Email}, nil
}
