package pedidos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/internal/locales"
	"github.com/smoralesdev/cartaqr-backend/internal/menu"
	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
	"github.com/smoralesdev/cartaqr-backend/pkg/pagination"
	"github.com/smoralesdev/cartaqr-backend/pkg/realtime"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        Repository
	localesRepo locales.Repository
	menuRepo    menu.Repository
	tx          txRunner
	notifier    realtime.Notifier
}

// NewService builds the order lifecycle service with the required dependencies.
func NewService(repo Repository, localesRepo locales.Repository, menuRepo menu.Repository, tx txRunner, notifier realtime.Notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pedidos repository required")
	}
	if localesRepo == nil {
		return nil, fmt.Errorf("locales repository required")
	}
	if menuRepo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{
		repo:        repo,
		localesRepo: localesRepo,
		menuRepo:    menuRepo,
		tx:          tx,
		notifier:    notifier,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreatePedidoInput) (*PedidoDTO, error) {
	if err := validateCreate(&input); err != nil {
		return nil, err
	}

	local, err := s.localesRepo.FindByID(ctx, input.LocalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "local not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load local")
	}
	if !local.Activo {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "local not found")
	}

	estadoPago := enums.EstadoPagoConfirmado
	if input.MetodoPago.RequiresProofReview() {
		estadoPago = enums.EstadoPagoPendiente
	}

	var created *models.Pedido
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		numero, err := s.localesRepo.WithTx(tx).NextNumeroPedido(ctx, local.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign numero pedido")
		}

		items, total, err := s.buildItems(ctx, tx, local.ID, input.Items)
		if err != nil {
			return err
		}

		pedido := &models.Pedido{
			ID:             uuid.New(),
			LocalID:        local.ID,
			NumeroPedido:   numero,
			NombreCliente:  input.NombreCliente,
			Telefono:       input.Telefono,
			TipoEntrega:    input.TipoEntrega,
			Direccion:      input.Direccion,
			Notas:          input.Notas,
			MetodoPago:     input.MetodoPago,
			ComprobanteURL: input.ComprobanteURL,
			EstadoPago:     estadoPago,
			Estado:         enums.EstadoPedidoPendiente,
			Total:          total,
			Items:          items,
		}
		created, err = s.repo.WithTx(tx).Create(ctx, pedido)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist pedido")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := FromModel(created)
	s.notifier.Notify(ctx, realtime.NewEvent(realtime.EventNuevoPedido, created.LocalID, created.ID, dto))
	return dto, nil
}

// buildItems snapshots each product into a line item and totals the order.
func (s *service) buildItems(ctx context.Context, tx *gorm.DB, localID uuid.UUID, inputs []CreateItemInput) ([]models.PedidoItem, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, item := range inputs {
		ids = append(ids, item.ProductoID)
	}

	productos, err := s.menuRepo.WithTx(tx).FindProductosByIDs(ctx, localID, ids)
	if err != nil {
		return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load productos")
	}
	byID := make(map[uuid.UUID]models.Producto, len(productos))
	for _, p := range productos {
		byID[p.ID] = p
	}

	items := make([]models.PedidoItem, 0, len(inputs))
	total := decimal.Zero
	for _, input := range inputs {
		producto, ok := byID[input.ProductoID]
		if !ok {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "producto not found").
				WithDetails(map[string]string{"producto_id": input.ProductoID.String()})
		}
		if !producto.Disponible {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "producto not available").
				WithDetails(map[string]string{"producto_id": input.ProductoID.String()})
		}

		subtotal := producto.Precio.Mul(decimal.NewFromInt(int64(input.Cantidad)))
		productoID := producto.ID
		items = append(items, models.PedidoItem{
			ID:                uuid.New(),
			ProductoID:        &productoID,
			Nombre:            producto.Nombre,
			Cantidad:          input.Cantidad,
			PrecioUnitario:    producto.Precio,
			Subtotal:          subtotal,
			Personalizaciones: input.Personalizaciones,
			Notas:             input.Notas,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

func (s *service) UpdateStatus(ctx context.Context, localID, pedidoID uuid.UUID, estadoRaw string) (*PedidoDTO, error) {
	if localID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "local context missing")
	}
	estado, err := enums.ParseEstadoPedido(estadoRaw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid estado").
			WithDetails(map[string]string{"estado": estadoRaw})
	}

	pedido, err := s.load(ctx, localID, pedidoID)
	if err != nil {
		return nil, err
	}

	if pedido.Estado != estado {
		if err := s.repo.UpdateEstado(ctx, pedido.ID, estado); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update estado")
		}
		pedido.Estado = estado
	}

	dto := FromModel(pedido)
	s.notifier.Notify(ctx, realtime.NewEvent(realtime.EventEstadoActualizado, pedido.LocalID, pedido.ID, dto))
	return dto, nil
}

func (s *service) ConfirmPayment(ctx context.Context, localID, pedidoID uuid.UUID, estadoPagoRaw string) (*PedidoDTO, error) {
	if localID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "local context missing")
	}
	estadoPago, err := enums.ParseEstadoPago(estadoPagoRaw)
	if err != nil || !estadoPago.IsPaymentOutcome() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid estado de pago").
			WithDetails(map[string]string{"estado_pago": estadoPagoRaw})
	}

	pedido, err := s.load(ctx, localID, pedidoID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"estado_pago": estadoPago}
	// A confirmed payment moves a waiting order into the kitchen.
	if estadoPago == enums.EstadoPagoConfirmado && pedido.Estado == enums.EstadoPedidoPendiente {
		updates["estado"] = enums.EstadoPedidoPreparando
		pedido.Estado = enums.EstadoPedidoPreparando
	}
	if err := s.repo.UpdatePago(ctx, pedido.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update estado pago")
	}
	pedido.EstadoPago = estadoPago

	dto := FromModel(pedido)
	s.notifier.Notify(ctx, realtime.NewEvent(realtime.EventPedidoActualizado, pedido.LocalID, pedido.ID, dto))
	return dto, nil
}

func (s *service) Get(ctx context.Context, localID, pedidoID uuid.UUID) (*PedidoDTO, error) {
	if localID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "local context missing")
	}
	pedido, err := s.load(ctx, localID, pedidoID)
	if err != nil {
		return nil, err
	}
	return FromModel(pedido), nil
}

func (s *service) List(ctx context.Context, localID uuid.UUID, params pagination.Params, filters PedidoFilters) (*PedidoList, error) {
	if localID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "local context missing")
	}

	rows, err := s.repo.List(ctx, localID, params, filters)
	if err != nil {
		if strings.Contains(err.Error(), "cursor") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pedidos")
	}

	page, hasMore := pagination.TrimPage(rows, params.Limit)
	out := &PedidoList{Pedidos: make([]PedidoDTO, 0, len(page))}
	for i := range page {
		out.Pedidos = append(out.Pedidos, *FromModel(&page[i]))
	}
	if hasMore && len(page) > 0 {
		last := page[len(page)-1]
		out.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return out, nil
}

func (s *service) load(ctx context.Context, localID, pedidoID uuid.UUID) (*models.Pedido, error) {
	if pedidoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pedido id required")
	}
	pedido, err := s.repo.FindByID(ctx, localID, pedidoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pedido not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pedido")
	}
	return pedido, nil
}

func validateCreate(input *CreatePedidoInput) error {
	if input.LocalID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "local id required")
	}
	input.NombreCliente = strings.TrimSpace(input.NombreCliente)
	input.Telefono = strings.TrimSpace(input.Telefono)
	if input.NombreCliente == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "nombre de cliente required")
	}
	if input.Telefono == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "telefono required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "pedido requires at least one item")
	}

	if input.TipoEntrega == "" {
		input.TipoEntrega = enums.TipoEntregaTakeaway
	}
	if !input.TipoEntrega.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid tipo de entrega")
	}
	if input.TipoEntrega.RequiresAddress() && (input.Direccion == nil || strings.TrimSpace(*input.Direccion) == "") {
		return pkgerrors.New(pkgerrors.CodeValidation, "direccion required for delivery")
	}

	if input.MetodoPago == "" {
		input.MetodoPago = enums.MetodoPagoEfectivo
	}
	if !input.MetodoPago.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid metodo de pago")
	}

	for _, item := range input.Items {
		if item.ProductoID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "producto id required")
		}
		if item.Cantidad <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cantidad must be positive")
		}
	}
	return nil
}
