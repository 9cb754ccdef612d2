package handlers

import (
	"fmt"
	"log"
	"net/http"

	"student-groups/auth"
	"student-groups/models"
)

// AuthHandler выдает токены единственному администратору из конфигурации
type AuthHandler struct {
	username     string
	passwordHash string
	jwtService   *auth.JWTService
}

func NewAuthHandler(username, password string, jwtService *auth.JWTService) (*AuthHandler, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &AuthHandler{
		username:     username,
		passwordHash: hash,
		jwtService:   jwtService,
	}, nil
}

// Token проверяет логин и пароль и возвращает JWT
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ Error decoding token request: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username != h.username || !auth.CheckPassword(req.Password, h.passwordHash) {
		log.Printf("❌ Invalid credentials for user: %s", req.Username)
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		log.Printf("❌ Error generating token for user %s: %v", req.Username, err)
		respondInternalError(w)
		return
	}

	log.Printf("✅ Token issued for user: %s", req.Username)
	respondJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}
