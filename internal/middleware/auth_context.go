package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-grooming-manager/internal/domain/shop"
	"pet-grooming-manager/internal/ports/auth"
)

// DebugUserHeader inyecta el usuario cuando no hay verifier (modo dev).
const DebugUserHeader = "X-Debug-User-ID"

type ctxKey struct{}

// AuthContext resuelve los claims del request y los deja en el contexto:
// con verifier desde el Bearer token, sin verifier desde DebugUserHeader.
// Un token inválido o ausente no corta el request; RequireUser decide.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolveClaims(r, verifier)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
		return auth.Claims{UserID: uid}, uid != ""
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil || strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, false
	}
	return claims, true
}

// RequireUser corta con 401 si no hay usuario y, si lo hay, lo deja como
// dueño de los datos (shop.WithUser) para servicios y repositorios.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(shop.WithUser(r.Context(), claims.UserID)))
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
