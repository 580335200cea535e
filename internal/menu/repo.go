package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a menu repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCategorias(ctx context.Context, categorias []models.Categoria) error {
	if len(categorias) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&categorias).Error
}

func (r *repository) ListCategorias(ctx context.Context, localID uuid.UUID) ([]models.Categoria, error) {
	var categorias []models.Categoria
	err := r.db.WithContext(ctx).
		Where("local_id = ? AND activa = ?", localID, true).
		Order("orden ASC, nombre ASC").
		Find(&categorias).Error
	if err != nil {
		return nil, err
	}
	return categorias, nil
}

func (r *repository) ListProductosDisponibles(ctx context.Context, localID uuid.UUID) ([]models.Producto, error) {
	var productos []models.Producto
	err := r.db.WithContext(ctx).
		Where("local_id = ? AND disponible = ?", localID, true).
		Order("nombre ASC").
		Find(&productos).Error
	if err != nil {
		return nil, err
	}
	return productos, nil
}

func (r *repository) FindProductosByIDs(ctx context.Context, localID uuid.UUID, ids []uuid.UUID) ([]models.Producto, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var productos []models.Producto
	err := r.db.WithContext(ctx).
		Where("local_id = ? AND id IN ?", localID, ids).
		Find(&productos).Error
	if err != nil {
		return nil, err
	}
	return productos, nil
}

// DefaultCategorias returns the starter categories seeded for every new
// local during onboarding.
func DefaultCategorias(localID uuid.UUID) []models.Categoria {
	nombres := []string{"Entradas", "Platos principales", "Bebidas", "Postres"}
	categorias := make([]models.Categoria, 0, len(nombres))
	for i, nombre := range nombres {
		categorias = append(categorias, models.Categoria{
			ID:      uuid.New(),
			LocalID: localID,
			Nombre:  nombre,
			Orden:   i,
			Activa:  true,
		})
	}
	return categorias
}
