package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"student-groups/auth"
	"student-groups/middleware"
	"student-groups/models"
	"student-groups/persistence/memstore"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *mux.Router {
	t.Helper()

	jwtService := auth.NewJWTService("test-secret", 1)
	authHandler, err := NewAuthHandler("admin", "admin123", jwtService)
	require.NoError(t, err)

	r := mux.NewRouter()
	NewRouter(memstore.New(), authHandler, "memory").
		Register(r, middleware.NewAuthMiddleware(jwtService).AuthMiddleware)
	return r
}

func TestTokenIssuedForAdmin(t *testing.T) {
	h := newAuthRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/api/auth/token", models.TokenRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	out := httptest.NewRecorder()
	h.ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestTokenRejectsBadCredentials(t *testing.T) {
	h := newAuthRouter(t)

	tests := []models.TokenRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "admin123"},
	}
	for _, req := range tests {
		rec := doRequest(t, h, http.MethodPost, "/api/auth/token", req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid username or password", errorMessage(t, rec))
	}

	rec := doRequest(t, h, http.MethodPost, "/api/auth/token", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newAuthRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/students", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	out := httptest.NewRecorder()
	h.ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)

	// health остается публичным
	rec = doRequest(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
