package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smoralesdev/cartaqr-backend/pkg/types"
)

// PedidoItem captures the snapshot of each line within a pedido. Nombre and
// PrecioUnitario are copied from the product at order time so later menu
// edits never rewrite history.
type PedidoItem struct {
	ID                uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PedidoID          uuid.UUID               `gorm:"column:pedido_id;type:uuid;not null;index"`
	ProductoID        *uuid.UUID              `gorm:"column:producto_id;type:uuid"`
	Nombre            string                  `gorm:"column:nombre;not null"`
	Cantidad          int                     `gorm:"column:cantidad;not null"`
	PrecioUnitario    decimal.Decimal         `gorm:"column:precio_unitario;type:numeric(12,2);not null"`
	Subtotal          decimal.Decimal         `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Personalizaciones types.Personalizaciones `gorm:"column:personalizaciones;type:jsonb;serializer:json"`
	Notas             *string                 `gorm:"column:notas"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
