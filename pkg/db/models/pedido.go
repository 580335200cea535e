package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// Pedido is a customer order placed against a tenant's menu. NumeroPedido is
// sequential per local and unique within it.
type Pedido struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LocalID        uuid.UUID          `gorm:"column:local_id;type:uuid;not null;uniqueIndex:idx_pedidos_local_numero"`
	NumeroPedido   int64              `gorm:"column:numero_pedido;not null;uniqueIndex:idx_pedidos_local_numero"`
	NombreCliente  string             `gorm:"column:nombre_cliente;not null"`
	Telefono       string             `gorm:"column:telefono;not null"`
	TipoEntrega    enums.TipoEntrega  `gorm:"column:tipo_entrega;type:text;not null;default:'takeaway'"`
	Direccion      *string            `gorm:"column:direccion"`
	Notas          *string            `gorm:"column:notas"`
	MetodoPago     enums.MetodoPago   `gorm:"column:metodo_pago;type:text;not null;default:'efectivo'"`
	ComprobanteURL *string            `gorm:"column:comprobante_url"`
	EstadoPago     enums.EstadoPago   `gorm:"column:estado_pago;type:text;not null;default:'pendiente'"`
	Estado         enums.EstadoPedido `gorm:"column:estado;type:text;not null;default:'pendiente'"`
	Total          decimal.Decimal    `gorm:"column:total;type:numeric(12,2);not null"`
	Items          []PedidoItem       `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
