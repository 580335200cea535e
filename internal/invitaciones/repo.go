package invitaciones

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

// NewRepository builds an invitaciones repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, invitacion *models.Invitacion) (*models.Invitacion, error) {
	if err := r.db.WithContext(ctx).Create(invitacion).Error; err != nil {
		return nil, err
	}
	return invitacion, nil
}

func (r *repository) FindByToken(ctx context.Context, token string) (*models.Invitacion, error) {
	var invitacion models.Invitacion
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&invitacion).Error
	if err != nil {
		return nil, err
	}
	return &invitacion, nil
}

func (r *repository) FindLatestBySolicitud(ctx context.Context, solicitudID uuid.UUID) (*models.Invitacion, error) {
	var invitacion models.Invitacion
	err := r.db.WithContext(ctx).
		Where("solicitud_id = ?", solicitudID).
		Order("created_at DESC").
		First(&invitacion).Error
	if err != nil {
		return nil, err
	}
	return &invitacion, nil
}

func (r *repository) MarkUsed(ctx context.Context, id uuid.UUID, localID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Invitacion{}).
		Where("id = ?", id).
		Updates(map[string]any{"usado": true, "local_id": localID}).Error
}

func (r *repository) ExpireNow(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Invitacion{}).
		Where("id = ?", id).
		Update("expira_en", at).Error
}
