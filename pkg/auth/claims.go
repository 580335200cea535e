package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	LocalID *uuid.UUID
	Rol     enums.Rol
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to panel clients.
type AccessTokenClaims struct {
	UserID  uuid.UUID  `json:"user_id"`
	LocalID *uuid.UUID `json:"local_id,omitempty"`
	Rol     enums.Rol  `json:"rol"`
	jwt.RegisteredClaims
}
