package solicitudes

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/internal/invitaciones"
	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/mailer"
)

type service struct {
	repo Repository
	inv  invitaciones.Service
	mail mailer.Mailer
}

// NewService builds the signup request service.
func NewService(repo Repository, inv invitaciones.Service, mail mailer.Mailer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("solicitudes repository required")
	}
	if inv == nil {
		return nil, fmt.Errorf("invitaciones service required")
	}
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{repo: repo, inv: inv, mail: mail}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*SolicitudDTO, error) {
	input.NombreNegocio = strings.TrimSpace(input.NombreNegocio)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.NombreNegocio == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nombre de negocio required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	created, err := s.repo.Create(ctx, &models.Solicitud{
		ID:            uuid.New(),
		NombreNegocio: input.NombreNegocio,
		Email:         input.Email,
		Telefono:      input.Telefono,
		Mensaje:       input.Mensaje,
		Estado:        enums.EstadoSolicitudPendiente,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist solicitud")
	}
	return fromModel(created), nil
}

func (s *service) List(ctx context.Context, filters SolicitudFilters) ([]SolicitudDTO, error) {
	if filters.Estado != nil && !filters.Estado.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid estado filter")
	}
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list solicitudes")
	}
	out := make([]SolicitudDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModel(&rows[i]))
	}
	return out, nil
}

// Accept marks the request reviewed and mints the onboarding invitation. The
// invitation mail goes out as part of issuance.
func (s *service) Accept(ctx context.Context, id uuid.UUID) (*AcceptResult, error) {
	solicitud, err := s.pendingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invitacion, err := s.inv.Issue(ctx, invitaciones.IssueInput{
		Email:         solicitud.Email,
		Rol:           enums.RolAdmin,
		SolicitudID:   &solicitud.ID,
		NombreNegocio: solicitud.NombreNegocio,
	})
	if err != nil {
		return nil, err
	}

	if err := s.review(ctx, solicitud, enums.EstadoSolicitudAceptada); err != nil {
		return nil, err
	}

	return &AcceptResult{
		Solicitud: fromModel(solicitud),
		Invitacion: &InvitacionSummary{
			Token:    invitacion.Token,
			Email:    invitacion.Email,
			ExpiraEn: invitacion.ExpiraEn,
		},
	}, nil
}

func (s *service) Reject(ctx context.Context, id uuid.UUID) (*SolicitudDTO, error) {
	solicitud, err := s.pendingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.review(ctx, solicitud, enums.EstadoSolicitudRechazada); err != nil {
		return nil, err
	}

	subject, body := mailer.SolicitudRechazadaBody(solicitud.NombreNegocio)
	s.mail.Send(ctx, solicitud.Email, subject, body)

	return fromModel(solicitud), nil
}

func (s *service) RegenerateInvitation(ctx context.Context, id uuid.UUID) (*models.Invitacion, error) {
	solicitud, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if solicitud.Estado != enums.EstadoSolicitudAceptada {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "solicitud is not aceptada")
	}
	return s.inv.RegenerateForSolicitud(ctx, solicitud.ID)
}

func (s *service) byID(ctx context.Context, id uuid.UUID) (*models.Solicitud, error) {
	solicitud, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "solicitud not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load solicitud")
	}
	return solicitud, nil
}

func (s *service) pendingByID(ctx context.Context, id uuid.UUID) (*models.Solicitud, error) {
	solicitud, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if solicitud.Estado != enums.EstadoSolicitudPendiente {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "solicitud already reviewed")
	}
	return solicitud, nil
}

func (s *service) review(ctx context.Context, solicitud *models.Solicitud, estado enums.EstadoSolicitud) error {
	now := time.Now().UTC()
	if err := s.repo.UpdateEstado(ctx, solicitud.ID, estado, now); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update solicitud")
	}
	solicitud.Estado = estado
	solicitud.ReviewedAt = &now
	return nil
}
