package controllers

import (
	"net/http"
	"strings"

	"github.com/smoralesdev/cartaqr-backend/api/responses"
	"github.com/smoralesdev/cartaqr-backend/api/validators"
	"github.com/smoralesdev/cartaqr-backend/internal/solicitudes"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
)

type submitSolicitudRequest struct {
	NombreNegocio string  `json:"nombre_negocio" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Telefono      *string `json:"telefono,omitempty"`
	Mensaje       *string `json:"mensaje,omitempty"`
}

// SolicitudSubmit accepts public business signup requests.
func SolicitudSubmit(svc solicitudes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "solicitudes service unavailable"))
			return
		}

		var body submitSolicitudRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Submit(r.Context(), solicitudes.SubmitInput{
			NombreNegocio: body.NombreNegocio,
			Email:         body.Email,
			Telefono:      body.Telefono,
			Mensaje:       body.Mensaje,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// SolicitudList returns signup requests for superadmin review.
func SolicitudList(svc solicitudes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "solicitudes service unavailable"))
			return
		}

		var filters solicitudes.SolicitudFilters
		if raw := strings.TrimSpace(r.URL.Query().Get("estado")); raw != "" {
			estado, err := enums.ParseEstadoSolicitud(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid estado filter"))
				return
			}
			filters.Estado = &estado
		}

		list, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// SolicitudAccept approves a request and mints its onboarding invitation.
func SolicitudAccept(svc solicitudes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "solicitudes service unavailable"))
			return
		}

		id, err := uuidURLParam(r, "solicitudID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Accept(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SolicitudReject declines a request and notifies the applicant.
func SolicitudReject(svc solicitudes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "solicitudes service unavailable"))
			return
		}

		id, err := uuidURLParam(r, "solicitudID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Reject(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SolicitudRegenerateInvitation reissues the invitation for an accepted
// request whose token was lost or expired.
func SolicitudRegenerateInvitation(svc solicitudes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "solicitudes service unavailable"))
			return
		}

		id, err := uuidURLParam(r, "solicitudID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invitacion, err := svc.RegenerateInvitation(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"token":     invitacion.Token,
			"email":     invitacion.Email,
			"expira_en": invitacion.ExpiraEn,
		})
	}
}
