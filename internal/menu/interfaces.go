package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
)

// Repository defines persistence operations for categories and products.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateCategorias(ctx context.Context, categorias []models.Categoria) error
	ListCategorias(ctx context.Context, localID uuid.UUID) ([]models.Categoria, error)
	ListProductosDisponibles(ctx context.Context, localID uuid.UUID) ([]models.Producto, error)
	FindProductosByIDs(ctx context.Context, localID uuid.UUID, ids []uuid.UUID) ([]models.Producto, error)
}

// Service serves the public QR menu.
type Service interface {
	GetBySlug(ctx context.Context, slug string) (*MenuResponse, error)
}
