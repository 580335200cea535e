package locales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgdb "github.com/smoralesdev/cartaqr-backend/pkg/db"
	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
)

func setupLocalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS locales (
  id TEXT PRIMARY KEY,
  nombre TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  descripcion TEXT,
  direccion TEXT,
  telefono TEXT,
  logo_url TEXT,
  ultimo_numero_pedido INTEGER NOT NULL DEFAULT 0,
  activo INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newLocal(nombre, slug string) *models.Local {
	return &models.Local{
		ID:     uuid.New(),
		Nombre: nombre,
		Slug:   slug,
		Activo: true,
	}
}

func TestCreateAndFindBySlug(t *testing.T) {
	db := setupLocalesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newLocal("La Esquina", "la-esquina"))
	require.NoError(t, err)

	found, err := repo.FindBySlug(ctx, "la-esquina")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "La Esquina", found.Nombre)
	assert.EqualValues(t, 0, found.UltimoNumeroPedido)

	_, err = repo.FindBySlug(ctx, "no-existe")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	db := setupLocalesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, newLocal("Primero", "mismo-slug"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newLocal("Segundo", "mismo-slug"))
	require.Error(t, err)
	assert.True(t, pkgdb.IsUniqueViolation(err, "idx_locales_slug"))
}

func TestNextNumeroPedidoIsSequential(t *testing.T) {
	db := setupLocalesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	local, err := repo.Create(ctx, newLocal("La Esquina", "la-esquina"))
	require.NoError(t, err)

	for want := int64(1); want <= 3; want++ {
		got, err := repo.NextNumeroPedido(ctx, local.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	refreshed, err := repo.FindByID(ctx, local.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, refreshed.UltimoNumeroPedido)
}

func TestNextNumeroPedidoMissingLocal(t *testing.T) {
	db := setupLocalesTestDB(t)
	repo := NewRepository(db)

	_, err := repo.NextNumeroPedido(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
