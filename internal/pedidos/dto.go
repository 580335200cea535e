package pedidos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	"github.com/smoralesdev/cartaqr-backend/pkg/types"
)

// CreateItemInput is one order line as submitted by the customer.
type CreateItemInput struct {
	ProductoID        uuid.UUID
	Cantidad          int
	Personalizaciones types.Personalizaciones
	Notas             *string
}

// CreatePedidoInput carries the public order submission.
type CreatePedidoInput struct {
	LocalID        uuid.UUID
	NombreCliente  string
	Telefono       string
	TipoEntrega    enums.TipoEntrega
	Direccion      *string
	Notas          *string
	MetodoPago     enums.MetodoPago
	ComprobanteURL *string
	Items          []CreateItemInput
}

// PedidoFilters describe the inputs supported by the order list.
type PedidoFilters struct {
	Estado     *enums.EstadoPedido
	EstadoPago *enums.EstadoPago
	DateFrom   *time.Time
	DateTo     *time.Time
}

// PedidoItemDTO is the line-item transport shape.
type PedidoItemDTO struct {
	ID                uuid.UUID               `json:"id"`
	ProductoID        *uuid.UUID              `json:"producto_id,omitempty"`
	Nombre            string                  `json:"nombre"`
	Cantidad          int                     `json:"cantidad"`
	PrecioUnitario    decimal.Decimal         `json:"precio_unitario"`
	Subtotal          decimal.Decimal         `json:"subtotal"`
	Personalizaciones types.Personalizaciones `json:"personalizaciones,omitempty"`
	Notas             *string                 `json:"notas,omitempty"`
}

// PedidoDTO is the order transport shape.
type PedidoDTO struct {
	ID             uuid.UUID          `json:"id"`
	LocalID        uuid.UUID          `json:"local_id"`
	NumeroPedido   int64              `json:"numero_pedido"`
	NombreCliente  string             `json:"nombre_cliente"`
	Telefono       string             `json:"telefono"`
	TipoEntrega    enums.TipoEntrega  `json:"tipo_entrega"`
	Direccion      *string            `json:"direccion,omitempty"`
	Notas          *string            `json:"notas,omitempty"`
	MetodoPago     enums.MetodoPago   `json:"metodo_pago"`
	ComprobanteURL *string            `json:"comprobante_url,omitempty"`
	EstadoPago     enums.EstadoPago   `json:"estado_pago"`
	Estado         enums.EstadoPedido `json:"estado"`
	Total          decimal.Decimal    `json:"total"`
	Items          []PedidoItemDTO    `json:"items"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// PedidoList wraps the paginated orders plus the next page cursor.
type PedidoList struct {
	Pedidos    []PedidoDTO `json:"pedidos"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted order to its transport shape.
func FromModel(p *models.Pedido) *PedidoDTO {
	if p == nil {
		return nil
	}

	items := make([]PedidoItemDTO, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PedidoItemDTO{
			ID:                item.ID,
			ProductoID:        item.ProductoID,
			Nombre:            item.Nombre,
			Cantidad:          item.Cantidad,
			PrecioUnitario:    item.PrecioUnitario,
			Subtotal:          item.Subtotal,
			Personalizaciones: item.Personalizaciones,
			Notas:             item.Notas,
		})
	}

	return &PedidoDTO{
		ID:             p.ID,
		LocalID:        p.LocalID,
		NumeroPedido:   p.NumeroPedido,
		NombreCliente:  p.NombreCliente,
		Telefono:       p.Telefono,
		TipoEntrega:    p.TipoEntrega,
		Direccion:      p.Direccion,
		Notas:          p.Notas,
		MetodoPago:     p.MetodoPago,
		ComprobanteURL: p.ComprobanteURL,
		EstadoPago:     p.EstadoPago,
		Estado:         p.Estado,
		Total:          p.Total,
		Items:          items,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
