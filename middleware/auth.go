package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"student-groups/auth"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
}

func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// AuthMiddleware проверяет JWT токен
func (am *AuthMiddleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicRoute(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Printf("❌ No authorization header for %s %s", r.Method, r.URL.Path)
			writeError(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			log.Printf("❌ Invalid authorization format for %s %s", r.Method, r.URL.Path)
			writeError(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := am.jwtService.ValidateToken(bearerToken[1])
		if err != nil {
			log.Printf("❌ Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
			writeError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		if claims.Role != auth.RoleAdmin {
			log.Printf("❌ User %s (role: %s) tried to access %s %s without permission",
				claims.Username, claims.Role, r.Method, r.URL.Path)
			writeError(w, "Insufficient permissions", http.StatusForbidden)
			return
		}

		r = r.WithContext(SetUserClaims(r.Context(), claims))
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, message string, status int) {
	http.Error(w, `{"error": "`+message+`"}`, status)
}

type contextKey string

const (
	userClaimsKey contextKey = "userClaims"
)

// SetUserClaims добавляет claims пользователя в контекст
func SetUserClaims(ctx context.Context, claims *auth.JWTClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// GetUserClaims извлекает claims пользователя из контекста
func GetUserClaims(ctx context.Context) *auth.JWTClaims {
	if claims, ok := ctx.Value(userClaimsKey).(*auth.JWTClaims); ok {
		return claims
	}
	return nil
}
