package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/smoralesdev/cartaqr-backend/api/responses"
	"github.com/smoralesdev/cartaqr-backend/internal/menu"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
)

// MenuBySlug serves the public QR menu for a tenant.
func MenuBySlug(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug required"))
			return
		}

		result, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
