package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Producto is a menu item offered by a tenant.
type Producto struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LocalID     uuid.UUID       `gorm:"column:local_id;type:uuid;not null;index"`
	CategoriaID uuid.UUID       `gorm:"column:categoria_id;type:uuid;not null;index"`
	Nombre      string          `gorm:"column:nombre;not null"`
	Descripcion *string         `gorm:"column:descripcion"`
	Precio      decimal.Decimal `gorm:"column:precio;type:numeric(12,2);not null"`
	ImagenURL   *string         `gorm:"column:imagen_url"`
	Etiquetas   pq.StringArray  `gorm:"column:etiquetas;type:text[]"`
	Disponible  bool            `gorm:"column:disponible;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
