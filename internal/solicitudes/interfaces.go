package solicitudes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// Repository defines persistence operations for signup requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, solicitud *models.Solicitud) (*models.Solicitud, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Solicitud, error)
	List(ctx context.Context, filters SolicitudFilters) ([]models.Solicitud, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado enums.EstadoSolicitud, reviewedAt time.Time) error
}

// Service handles the signup request lifecycle from public submission to
// superadmin review.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SolicitudDTO, error)
	List(ctx context.Context, filters SolicitudFilters) ([]SolicitudDTO, error)
	Accept(ctx context.Context, id uuid.UUID) (*AcceptResult, error)
	Reject(ctx context.Context, id uuid.UUID) (*SolicitudDTO, error)
	RegenerateInvitation(ctx context.Context, id uuid.UUID) (*models.Invitacion, error)
}
