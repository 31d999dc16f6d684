package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-grooming-manager/internal/domain/shop"
	"pet-grooming-manager/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	token string
}

func (v stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != v.token {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{UserID: "u-jwt", Email: "ana@example.com"}, nil
}

// ownerEcho responde con el usuario dueño que llega al handler.
var ownerEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(shop.UserFrom(r.Context())))
})

func serve(verifier auth.AuthVerifier, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	AuthContext(verifier)(RequireUser(ownerEcho)).ServeHTTP(rec, req)
	return rec
}

func TestRequireUser_DevHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set(DebugUserHeader, " groomer-1 ")

	rec := serve(nil, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "groomer-1", rec.Body.String())
}

func TestRequireUser_NoUserIsUnauthorized(t *testing.T) {
	rec := serve(nil, httptest.NewRequest(http.MethodGet, "/clients", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUser_BearerToken(t *testing.T) {
	v := stubVerifier{token: "good"}

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set("Authorization", "bearer good")
	rec := serve(v, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-jwt", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set("Authorization", "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, serve(v, req).Code)
}

func TestRequireUser_DebugHeaderIgnoredWithVerifier(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.Header.Set(DebugUserHeader, "intruder")

	rec := serve(stubVerifier{token: "good"}, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}
