package models

import (
	"time"

	"github.com/google/uuid"
)

// Categoria groups products within a tenant's menu.
type Categoria struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LocalID   uuid.UUID  `gorm:"column:local_id;type:uuid;not null;index"`
	Nombre    string     `gorm:"column:nombre;not null"`
	Orden     int        `gorm:"column:orden;not null;default:0"`
	Activa    bool       `gorm:"column:activa;not null;default:true"`
	Productos []Producto `gorm:"foreignKey:CategoriaID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
