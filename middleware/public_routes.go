package middleware

import (
	"strings"
)

var publicRoutes = []string{
	"/",
	"/health",
	"/api/auth/token",
}

// IsPublicRoute проверяет, является ли маршрут публичным
func IsPublicRoute(path string) bool {
	for _, route := range publicRoutes {
		if path == route {
			return true
		}
	}

	// Все подпути аутентификации открыты
	return strings.HasPrefix(path, "/api/auth/")
}
