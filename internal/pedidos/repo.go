package pedidos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	"github.com/smoralesdev/cartaqr-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pedidos repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, pedido *models.Pedido) (*models.Pedido, error) {
	if err := r.db.WithContext(ctx).Create(pedido).Error; err != nil {
		return nil, err
	}
	return pedido, nil
}

func (r *repository) FindByID(ctx context.Context, localID, pedidoID uuid.UUID) (*models.Pedido, error) {
	var pedido models.Pedido
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND local_id = ?", pedidoID, localID).
		First(&pedido).Error
	if err != nil {
		return nil, err
	}
	return &pedido, nil
}

func (r *repository) List(ctx context.Context, localID uuid.UUID, params pagination.Params, filters PedidoFilters) ([]models.Pedido, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("local_id = ?", localID)

	if filters.Estado != nil {
		query = query.Where("estado = ?", *filters.Estado)
	}
	if filters.EstadoPago != nil {
		query = query.Where("estado_pago = ?", *filters.EstadoPago)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Pedido
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateEstado(ctx context.Context, pedidoID uuid.UUID, estado enums.EstadoPedido) error {
	return r.db.WithContext(ctx).
		Model(&models.Pedido{}).
		Where("id = ?", pedidoID).
		Update("estado", estado).Error
}

func (r *repository) UpdatePago(ctx context.Context, pedidoID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Pedido{}).
		Where("id = ?", pedidoID).
		Updates(updates).Error
}
