package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// Usuario is a staff identity. Superadmins have no local attached; tenant
// users are unique per (email, local) so one email may own several locales.
type Usuario struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LocalID      *uuid.UUID `gorm:"column:local_id;type:uuid;uniqueIndex:idx_usuarios_email_local"`
	Nombre       string     `gorm:"column:nombre;not null"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex:idx_usuarios_email_local"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Rol          enums.Rol  `gorm:"column:rol;type:text;not null;default:'staff'"`
	Activo       bool       `gorm:"column:activo;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
