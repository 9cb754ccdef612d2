package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"student-groups/auth"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, wantClaims bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantClaims {
			claims := GetUserClaims(r.Context())
			require.NotNil(t, claims)
			assert.Equal(t, "admin", claims.Username)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIsPublicRoute(t *testing.T) {
	assert.True(t, IsPublicRoute("/"))
	assert.True(t, IsPublicRoute("/health"))
	assert.True(t, IsPublicRoute("/api/auth/token"))
	assert.False(t, IsPublicRoute("/api/v1/groups"))
	assert.False(t, IsPublicRoute("/healthz"))
}

func TestAuthMiddleware(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)
	mw := NewAuthMiddleware(svc)

	token, err := svc.GenerateToken("admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, serve(mw.AuthMiddleware(okHandler(t, false)), "GET", "/api/v1/groups", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(mw.AuthMiddleware(okHandler(t, false)), "GET", "/api/v1/groups", "Token "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(mw.AuthMiddleware(okHandler(t, false)), "GET", "/api/v1/groups", "Bearer garbage").Code)
	assert.Equal(t, http.StatusOK, serve(mw.AuthMiddleware(okHandler(t, true)), "GET", "/api/v1/groups", "Bearer "+token).Code)
	assert.Equal(t, http.StatusOK, serve(mw.AuthMiddleware(okHandler(t, false)), "GET", "/health", "").Code)
}

func TestAuthMiddlewareRejectsNonAdmin(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 1)

	claims := auth.JWTClaims{Username: "guest", Role: "viewer"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	rec := serve(NewAuthMiddleware(svc).AuthMiddleware(okHandler(t, false)), "GET", "/api/v1/groups", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error": "Insufficient permissions"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := serve(h, http.MethodOptions, "/api/v1/groups", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	rec = serve(h, http.MethodGet, "/api/v1/groups", "")
	assert.True(t, called)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestLoggingRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := serve(h, http.MethodGet, "/api/v1/students", "")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), "GET /api/v1/students - 418")
}
