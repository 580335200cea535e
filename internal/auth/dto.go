package auth

import (
	"time"

	"github.com/smoralesdev/cartaqr-backend/internal/users"
)

// LoginRequest carries panel credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the bearer token and the authenticated account.
type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   time.Time         `json:"expires_at"`
	User        *users.UsuarioDTO `json:"user"`
}
