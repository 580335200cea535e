package pedidos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	"github.com/smoralesdev/cartaqr-backend/pkg/enums"
	"github.com/smoralesdev/cartaqr-backend/pkg/pagination"
	"github.com/smoralesdev/cartaqr-backend/pkg/types"
)

func setupPedidosTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	pedidos := `
CREATE TABLE IF NOT EXISTS pedidos (
  id TEXT PRIMARY KEY,
  local_id TEXT NOT NULL,
  numero_pedido INTEGER NOT NULL,
  nombre_cliente TEXT NOT NULL,
  telefono TEXT NOT NULL,
  tipo_entrega TEXT NOT NULL DEFAULT 'takeaway',
  direccion TEXT,
  notas TEXT,
  metodo_pago TEXT NOT NULL DEFAULT 'efectivo',
  comprobante_url TEXT,
  estado_pago TEXT NOT NULL DEFAULT 'pendiente',
  estado TEXT NOT NULL DEFAULT 'pendiente',
  total NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (local_id, numero_pedido)
);`
	items := `
CREATE TABLE IF NOT EXISTS pedido_items (
  id TEXT PRIMARY KEY,
  pedido_id TEXT NOT NULL,
  producto_id TEXT,
  nombre TEXT NOT NULL,
  cantidad INTEGER NOT NULL,
  precio_unitario NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL,
  personalizaciones TEXT,
  notas TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(pedidos).Error)
	require.NoError(t, db.Exec(items).Error)
	return db
}

func newPedido(localID uuid.UUID, numero int64, createdAt time.Time) *models.Pedido {
	return &models.Pedido{
		ID:            uuid.New(),
		LocalID:       localID,
		NumeroPedido:  numero,
		NombreCliente: "Ana",
		Telefono:      "1155550000",
		TipoEntrega:   enums.TipoEntregaTakeaway,
		MetodoPago:    enums.MetodoPagoEfectivo,
		EstadoPago:    enums.EstadoPagoConfirmado,
		Estado:        enums.EstadoPedidoPendiente,
		Total:         decimal.RequireFromString("5400.00"),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestCreatePersistsItemsAndTotal(t *testing.T) {
	db := setupPedidosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	localID := uuid.New()

	productoID := uuid.New()
	pedido := newPedido(localID, 1, time.Now().UTC())
	pedido.Items = []models.PedidoItem{
		{
			ID:             uuid.New(),
			ProductoID:     &productoID,
			Nombre:         "Milanesa",
			Cantidad:       1,
			PrecioUnitario: decimal.RequireFromString("4500.00"),
			Subtotal:       decimal.RequireFromString("4500.00"),
			Personalizaciones: types.Personalizaciones{
				{Grupo: "Guarnición", Opcion: "Puré"},
			},
		},
		{
			ID:             uuid.New(),
			ProductoID:     &productoID,
			Nombre:         "Limonada",
			Cantidad:       1,
			PrecioUnitario: decimal.RequireFromString("900.00"),
			Subtotal:       decimal.RequireFromString("900.00"),
		},
	}

	_, err := repo.Create(ctx, pedido)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, localID, pedido.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)

	sum := decimal.Zero
	for _, item := range found.Items {
		sum = sum.Add(item.Subtotal)
	}
	assert.True(t, found.Total.Equal(sum), "total %s must equal item sum %s", found.Total, sum)
	require.Len(t, found.Items[0].Personalizaciones, 1)
	assert.Equal(t, "Guarnición", found.Items[0].Personalizaciones[0].Grupo)
}

func TestCreateRejectsDuplicateNumeroPerLocal(t *testing.T) {
	db := setupPedidosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	localID := uuid.New()

	_, err := repo.Create(ctx, newPedido(localID, 7, time.Now().UTC()))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newPedido(localID, 7, time.Now().UTC()))
	require.Error(t, err)

	// Same numero in another local is fine.
	_, err = repo.Create(ctx, newPedido(uuid.New(), 7, time.Now().UTC()))
	require.NoError(t, err)
}

func TestFindByIDScopedToLocal(t *testing.T) {
	db := setupPedidosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	pedido := newPedido(uuid.New(), 1, time.Now().UTC())
	_, err := repo.Create(ctx, pedido)
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, uuid.New(), pedido.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListPaginatesNewestFirst(t *testing.T) {
	db := setupPedidosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	localID := uuid.New()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := int64(1); i <= 5; i++ {
		_, err := repo.Create(ctx, newPedido(localID, i, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, localID, pagination.Params{Limit: 2}, PedidoFilters{})
	require.NoError(t, err)
	require.Len(t, page, 3) // limit + buffer row
	assert.EqualValues(t, 5, page[0].NumeroPedido)
	assert.EqualValues(t, 4, page[1].NumeroPedido)

	cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: page[1].CreatedAt, ID: page[1].ID})
	next, err := repo.List(ctx, localID, pagination.Params{Limit: 2, Cursor: cursor}, PedidoFilters{})
	require.NoError(t, err)
	require.NotEmpty(t, next)
	assert.EqualValues(t, 3, next[0].NumeroPedido)
}

func TestListFiltersByEstado(t *testing.T) {
	db := setupPedidosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	localID := uuid.New()

	listo := newPedido(localID, 1, time.Now().UTC())
	listo.Estado = enums.EstadoPedidoListo
	_, err := repo.Create(ctx, listo)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPedido(localID, 2, time.Now().UTC()))
	require.NoError(t, err)

	estado := enums.EstadoPedidoListo
	rows, err := repo.List(ctx, localID, pagination.Params{}, PedidoFilters{Estado: &estado})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.EstadoPedidoListo, rows[0].Estado)
}

func TestUpdateEstadoAndPago(t *testing.T) {
	db := setupPedidosTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	localID := uuid.New()

	pedido := newPedido(localID, 1, time.Now().UTC())
	pedido.MetodoPago = enums.MetodoPagoTransferencia
	pedido.EstadoPago = enums.EstadoPagoPendiente
	_, err := repo.Create(ctx, pedido)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateEstado(ctx, pedido.ID, enums.EstadoPedidoListo))
	require.NoError(t, repo.UpdatePago(ctx, pedido.ID, map[string]any{
		"estado_pago": enums.EstadoPagoConfirmado,
	}))

	found, err := repo.FindByID(ctx, localID, pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.EstadoPedidoListo, found.Estado)
	assert.Equal(t, enums.EstadoPagoConfirmado, found.EstadoPago)
}
