package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/smoralesdev/cartaqr-backend/api/responses"
	"github.com/smoralesdev/cartaqr-backend/api/validators"
	"github.com/smoralesdev/cartaqr-backend/internal/invitaciones"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
)

type completarRegistroLocal struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Descripcion *string `json:"descripcion,omitempty"`
	Direccion   *string `json:"direccion,omitempty"`
	Telefono    *string `json:"telefono,omitempty"`
}

type completarRegistroUsuario struct {
	Nombre   string `json:"nombre" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type completarRegistroRequest struct {
	Token   string                   `json:"token" validate:"required"`
	Local   completarRegistroLocal   `json:"local" validate:"required"`
	Usuario completarRegistroUsuario `json:"usuario" validate:"required"`
}

// InvitacionValidate lets the registration page check a token before showing
// the form.
func InvitacionValidate(svc invitaciones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invitaciones service unavailable"))
			return
		}

		token := strings.TrimSpace(chi.URLParam(r, "token"))
		result, err := svc.Validate(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RegistroCompletar redeems an invitation into a tenant plus its first admin.
func RegistroCompletar(svc invitaciones.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invitaciones service unavailable"))
			return
		}

		var body completarRegistroRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Consume(r.Context(), invitaciones.ConsumeInput{
			Token: body.Token,
			Local: invitaciones.LocalInput{
				Nombre:      body.Local.Nombre,
				Slug:        body.Local.Slug,
				Descripcion: body.Local.Descripcion,
				Direccion:   body.Local.Direccion,
				Telefono:    body.Local.Telefono,
			},
			Usuario: invitaciones.UsuarioInput{
				Nombre:   body.Usuario.Nombre,
				Password: body.Usuario.Password,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
