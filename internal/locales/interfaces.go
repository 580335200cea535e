package locales

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
)

// Repository defines persistence operations for tenant rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, local *models.Local) (*models.Local, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Local, error)
	FindBySlug(ctx context.Context, slug string) (*models.Local, error)
	NextNumeroPedido(ctx context.Context, localID uuid.UUID) (int64, error)
}
