package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"todo_api/internal/common/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedServer(tm *security.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(tm.JWTAuth()))
	r.Use(Authenticator)
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetUserIDFromContext(r.Context())
		w.Write([]byte(id))
	})
	return r
}

func TestAuthenticator_NoToken(t *testing.T) {
	tm := security.NewTokenManager([]byte("test-secret"), time.Hour)
	srv := newProtectedServer(tm)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization token required")
}

func TestAuthenticator_ValidToken(t *testing.T) {
	tm := security.NewTokenManager([]byte("test-secret"), time.Hour)
	srv := newProtectedServer(tm)

	token, err := tm.GenerateToken("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "user-42", resp.Body.String())
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	tm := security.NewTokenManager([]byte("test-secret"), time.Hour)
	expired := security.NewTokenManager([]byte("test-secret"), -time.Minute)
	srv := newProtectedServer(tm)

	token, err := expired.GenerateToken("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Token expired")
}

func TestAuthenticator_GarbageToken(t *testing.T) {
	tm := security.NewTokenManager([]byte("test-secret"), time.Hour)
	srv := newProtectedServer(tm)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid token")
}

func TestAuthenticator_WrongKeyToken(t *testing.T) {
	tm := security.NewTokenManager([]byte("test-secret"), time.Hour)
	other := security.NewTokenManager([]byte("other-secret"), time.Hour)
	srv := newProtectedServer(tm)

	token, err := other.GenerateToken("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
