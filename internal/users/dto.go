package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// UsuarioDTO is the transport shape that omits sensitive credentials.
type UsuarioDTO struct {
	ID          uuid.UUID  `json:"id"`
	LocalID     *uuid.UUID `json:"local_id,omitempty"`
	Nombre      string     `json:"nombre"`
	Email       string     `json:"email"`
	Rol         enums.Rol  `json:"rol"`
	Activo      bool       `json:"activo"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateUsuarioDTO holds the data required by the repo to persist a new user.
type CreateUsuarioDTO struct {
	LocalID      *uuid.UUID
	Nombre       string
	Email        string
	PasswordHash string
	Rol          enums.Rol
	Activo       *bool
}

func FromModel(u *models.Usuario) *UsuarioDTO {
	if u == nil {
		return nil
	}

	return &UsuarioDTO{
		ID:          u.ID,
		LocalID:     u.LocalID,
		Nombre:      u.Nombre,
		Email:       u.Email,
		Rol:         u.Rol,
		Activo:      u.Activo,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUsuarioDTO) ToModel() *models.Usuario {
	activo := true
	if c.Activo != nil {
		activo = *c.Activo
	}

	rol := c.Rol
	if rol == "" {
		rol = enums.RolStaff
	}

	return &models.Usuario{
		ID:           uuid.New(),
		LocalID:      c.LocalID,
		Nombre:       c.Nombre,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Rol:          rol,
		Activo:       activo,
	}
}
