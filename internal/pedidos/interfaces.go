package pedidos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	"github.com/smoralesdev/cartaqr-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, pedido *models.Pedido) (*models.Pedido, error)
	FindByID(ctx context.Context, localID, pedidoID uuid.UUID) (*models.Pedido, error)
	List(ctx context.Context, localID uuid.UUID, params pagination.Params, filters PedidoFilters) ([]models.Pedido, error)
	UpdateEstado(ctx context.Context, pedidoID uuid.UUID, estado enums.EstadoPedido) error
	UpdatePago(ctx context.Context, pedidoID uuid.UUID, updates map[string]any) error
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreatePedidoInput) (*PedidoDTO, error)
	UpdateStatus(ctx context.Context, localID, pedidoID uuid.UUID, estadoRaw string) (*PedidoDTO, error)
	ConfirmPayment(ctx context.Context, localID, pedidoID uuid.UUID, estadoPagoRaw string) (*PedidoDTO, error)
	Get(ctx context.Context, localID, pedidoID uuid.UUID) (*PedidoDTO, error)
	List(ctx context.Context, localID uuid.UUID, params pagination.Params, filters PedidoFilters) (*PedidoList, error)
}
