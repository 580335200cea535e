package invitaciones

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
)

// Repository defines persistence operations for invitation tokens.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invitacion *models.Invitacion) (*models.Invitacion, error)
	FindByToken(ctx context.Context, token string) (*models.Invitacion, error)
	FindLatestBySolicitud(ctx context.Context, solicitudID uuid.UUID) (*models.Invitacion, error)
	MarkUsed(ctx context.Context, id uuid.UUID, localID uuid.UUID) error
	ExpireNow(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Service issues, validates, and consumes single-use onboarding tokens.
type Service interface {
	Issue(ctx context.Context, input IssueInput) (*models.Invitacion, error)
	Validate(ctx context.Context, token string) (*ValidationResult, error)
	Consume(ctx context.Context, input ConsumeInput) (*ConsumeResult, error)
	Regenerate(ctx context.Context, prevToken string) (*models.Invitacion, error)
	RegenerateForSolicitud(ctx context.Context, solicitudID uuid.UUID) (*models.Invitacion, error)
}
