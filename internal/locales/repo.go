package locales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a locales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, local *models.Local) (*models.Local, error) {
	if err := r.db.WithContext(ctx).Create(local).Error; err != nil {
		return nil, err
	}
	return local, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Local, error) {
	var local models.Local
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&local).Error
	if err != nil {
		return nil, err
	}
	return &local, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Local, error) {
	var local models.Local
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&local).Error
	if err != nil {
		return nil, err
	}
	return &local, nil
}

// NextNumeroPedido increments the tenant's order counter and returns the new
// value. The single UPDATE keeps concurrent orders from ever sharing a
// number; callers run it inside the order create transaction.
func (r *repository) NextNumeroPedido(ctx context.Context, localID uuid.UUID) (int64, error) {
	var numero int64
	res := r.db.WithContext(ctx).Raw(
		`UPDATE locales
		    SET ultimo_numero_pedido = ultimo_numero_pedido + 1, updated_at = ?
		  WHERE id = ?
		RETURNING ultimo_numero_pedido`,
		time.Now().UTC(), localID,
	).Scan(&numero)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return numero, nil
}
