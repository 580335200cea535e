package models

import (
	"time"

	"github.com/google/uuid"
)

// Local represents the canonical tenant model: one restaurant with its own
// menu, staff, and order sequence.
type Local struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Nombre             string    `gorm:"column:nombre;not null"`
	Slug               string    `gorm:"column:slug;type:text;not null;uniqueIndex"`
	Descripcion        *string   `gorm:"column:descripcion"`
	Direccion          *string   `gorm:"column:direccion"`
	Telefono           *string   `gorm:"column:telefono"`
	LogoURL            *string   `gorm:"column:logo_url"`
	UltimoNumeroPedido int64     `gorm:"column:ultimo_numero_pedido;not null;default:0"`
	Activo             bool      `gorm:"column:activo;not null;default:true"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the Spanish plural used by the schema.
func (Local) TableName() string {
	return "locales"
}
