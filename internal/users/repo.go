package users

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

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Create inserts a new user and returns the persisted model.
func (r *repository) Create(ctx context.Context, dto CreateUsuarioDTO) (*models.Usuario, error) {
	usuario := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(usuario).Error; err != nil {
		return nil, err
	}
	return usuario, nil
}

// FindByEmail retrieves the newest active user matching the provided email.
// An email may exist in several locales; login resolves to the most recently
// created account.
func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).
		Where("email = ? AND activo = ?", email, true).
		Order("created_at DESC").
		First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// FindByID loads a user by their UUID.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := r.db.WithContext(ctx).First(&usuario, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

// UpdateLastLogin refreshes the user's last_login_at timestamp.
func (r *repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Usuario{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}
