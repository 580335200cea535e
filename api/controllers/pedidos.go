package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/smoralesdev/cartaqr-backend/api/middleware"
	"github.com/smoralesdev/cartaqr-backend/api/responses"
	"github.com/smoralesdev/cartaqr-backend/api/validators"
	"github.com/smoralesdev/cartaqr-backend/internal/pedidos"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/logger"
	"github.com/smoralesdev/cartaqr-backend/pkg/pagination"
	"github.com/smoralesdev/cartaqr-backend/pkg/types"
)

type createPedidoItemRequest struct {
	ProductoID        uuid.UUID               `json:"producto_id" validate:"required"`
	Cantidad          int                     `json:"cantidad" validate:"required,min=1"`
	Personalizaciones types.Personalizaciones `json:"personalizaciones,omitempty"`
	Notas             *string                 `json:"notas,omitempty"`
}

type createPedidoRequest struct {
	LocalID        uuid.UUID                 `json:"local_id" validate:"required"`
	NombreCliente  string                    `json:"nombre_cliente" validate:"required"`
	Telefono       string                    `json:"telefono" validate:"required"`
	TipoEntrega    string                    `json:"tipo_entrega,omitempty"`
	Direccion      *string                   `json:"direccion,omitempty"`
	Notas          *string                   `json:"notas,omitempty"`
	MetodoPago     string                    `json:"metodo_pago,omitempty"`
	ComprobanteURL *string                   `json:"comprobante_url,omitempty"`
	Items          []createPedidoItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

type confirmarPagoRequest struct {
	EstadoPago string `json:"estado_pago" validate:"required"`
}

// PedidoCreate accepts public order submissions from the QR menu.
func PedidoCreate(svc pedidos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pedidos service unavailable"))
			return
		}

		var body createPedidoRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]pedidos.CreateItemInput, 0, len(body.Items))
		for _, item := range body.Items {
			items = append(items, pedidos.CreateItemInput{
				ProductoID:        item.ProductoID,
				Cantidad:          item.Cantidad,
				Personalizaciones: item.Personalizaciones,
				Notas:             item.Notas,
			})
		}

		created, err := svc.Create(r.Context(), pedidos.CreatePedidoInput{
			LocalID:        body.LocalID,
			NombreCliente:  body.NombreCliente,
			Telefono:       body.Telefono,
			TipoEntrega:    enums.TipoEntrega(body.TipoEntrega),
			Direccion:      body.Direccion,
			Notas:          body.Notas,
			MetodoPago:     enums.MetodoPago(body.MetodoPago),
			ComprobanteURL: body.ComprobanteURL,
			Items:          items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// PedidoList returns the tenant's orders newest first.
func PedidoList(svc pedidos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pedidos service unavailable"))
			return
		}

		localID, err := localIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		filters, err := buildPedidoFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), localID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PedidoGet fetches one order scoped to the tenant.
func PedidoGet(svc pedidos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pedidos service unavailable"))
			return
		}

		localID, err := localIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pedidoID, err := uuidURLParam(r, "pedidoID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pedido, err := svc.Get(r.Context(), localID, pedidoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pedido)
	}
}

// PedidoUpdateEstado moves an order through its lifecycle.
func PedidoUpdateEstado(svc pedidos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pedidos service unavailable"))
			return
		}

		localID, err := localIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pedidoID, err := uuidURLParam(r, "pedidoID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateEstadoRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), localID, pedidoID, body.Estado)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// PedidoConfirmarPago records a payment review outcome.
func PedidoConfirmarPago(svc pedidos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pedidos service unavailable"))
			return
		}

		localID, err := localIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pedidoID, err := uuidURLParam(r, "pedidoID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body confirmarPagoRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.ConfirmPayment(r.Context(), localID, pedidoID, body.EstadoPago)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func localIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.LocalIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "local context missing")
	}
	localID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid local id")
	}
	return localID, nil
}

func uuidURLParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").
			WithDetails(map[string]string{"param": name})
	}
	return id, nil
}

func buildPedidoFilters(r *http.Request) (pedidos.PedidoFilters, error) {
	var filters pedidos.PedidoFilters

	if raw := strings.TrimSpace(r.URL.Query().Get("estado")); raw != "" {
		estado, err := enums.ParseEstadoPedido(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid estado filter")
		}
		filters.Estado = &estado
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("estado_pago")); raw != "" {
		estadoPago, err := enums.ParseEstadoPago(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid estado_pago filter")
		}
		filters.EstadoPago = &estadoPago
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("desde")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid desde filter")
		}
		filters.DateFrom = &from
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("hasta")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid hasta filter")
		}
		filters.DateTo = &to
	}

	return filters, nil
}
