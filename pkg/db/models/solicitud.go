package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// Solicitud is a public business signup request awaiting superadmin review.
type Solicitud struct {
	ID            uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	NombreNegocio string                `gorm:"column:nombre_negocio;not null"`
	Email         string                `gorm:"column:email;not null"`
	Telefono      *string               `gorm:"column:telefono"`
	Mensaje       *string               `gorm:"column:mensaje"`
	Estado        enums.EstadoSolicitud `gorm:"column:estado;type:text;not null;default:'pendiente'"`
	ReviewedAt    *time.Time            `gorm:"column:reviewed_at"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the Spanish plural used by the schema.
func (Solicitud) TableName() string {
	return "solicitudes"
}
