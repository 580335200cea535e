package solicitudes

import (
	"time"

	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
)

// SubmitInput is the public signup form.
type SubmitInput struct {
	NombreNegocio string  `json:"nombre_negocio"`
	Email         string  `json:"email"`
	Telefono      *string `json:"telefono,omitempty"`
	Mensaje       *string `json:"mensaje,omitempty"`
}

// SolicitudFilters narrows the admin listing.
type SolicitudFilters struct {
	Estado *enums.EstadoSolicitud
}

// SolicitudDTO is the transport shape of a signup request.
type SolicitudDTO struct {
	ID            uuid.UUID             `json:"id"`
	NombreNegocio string                `json:"nombre_negocio"`
	Email         string                `json:"email"`
	Telefono      *string               `json:"telefono,omitempty"`
	Mensaje       *string               `json:"mensaje,omitempty"`
	Estado        enums.EstadoSolicitud `json:"estado"`
	ReviewedAt    *time.Time            `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// AcceptResult pairs the accepted request with the invitation it produced.
type AcceptResult struct {
	Solicitud  *SolicitudDTO      `json:"solicitud"`
	Invitacion *InvitacionSummary `json:"invitacion"`
}

// InvitacionSummary is the subset of an invitation safe to return to the
// superadmin panel.
type InvitacionSummary struct {
	Token    string    `json:"token"`
	Email    string    `json:"email"`
	ExpiraEn time.Time `json:"expira_en"`
}

func fromModel(s *models.Solicitud) *SolicitudDTO {
	if s == nil {
		return nil
	}
	return &SolicitudDTO{
		ID:            s.ID,
		NombreNegocio: s.NombreNegocio,
		Email:         s.Email,
		Telefono:      s.Telefono,
		Mensaje:       s.Mensaje,
		Estado:        s.Estado,
		ReviewedAt:    s.ReviewedAt,
		CreatedAt:     s.CreatedAt,
	}
}
