package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
)

// Repository exposes user-related persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dto CreateUsuarioDTO) (*models.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*models.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Usuario, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
