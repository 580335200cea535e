package solicitudes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a solicitudes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, solicitud *models.Solicitud) (*models.Solicitud, error) {
	if err := r.db.WithContext(ctx).Create(solicitud).Error; err != nil {
		return nil, err
	}
	return solicitud, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Solicitud, error) {
	var solicitud models.Solicitud
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&solicitud).Error
	if err != nil {
		return nil, err
	}
	return &solicitud, nil
}

func (r *repository) List(ctx context.Context, filters SolicitudFilters) ([]models.Solicitud, error) {
	query := r.db.WithContext(ctx).Model(&models.Solicitud{})
	if filters.Estado != nil {
		query = query.Where("estado = ?", *filters.Estado)
	}

	var out []models.Solicitud
	if err := query.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdateEstado(ctx context.Context, id uuid.UUID, estado enums.EstadoSolicitud, reviewedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Solicitud{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"estado":      estado,
			"reviewed_at": reviewedAt,
			"updated_at":  reviewedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
