package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smoralesdev/cartaqr-backend/internal/locales"
	"github.com/smoralesdev/cartaqr-backend/pkg/db/models"
	pkgerrors "github.com/smoralesdev/cartaqr-backend/pkg/errors"
)

type service struct {
	localesRepo locales.Repository
	repo        Repository
}

// NewService builds the public menu service.
func NewService(localesRepo locales.Repository, repo Repository) (Service, error) {
	if localesRepo == nil {
		return nil, fmt.Errorf("locales repository required")
	}
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	return &service{localesRepo: localesRepo, repo: repo}, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*MenuResponse, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug required")
	}

	local, err := s.localesRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "local not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load local")
	}
	if !local.Activo {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "local not found")
	}

	categorias, err := s.repo.ListCategorias(ctx, local.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categorias")
	}
	productos, err := s.repo.ListProductosDisponibles(ctx, local.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list productos")
	}

	return buildMenu(local, categorias, productos), nil
}

func buildMenu(local *models.Local, categorias []models.Categoria, productos []models.Producto) *MenuResponse {
	byCategoria := make(map[uuid.UUID][]ProductoDTO, len(categorias))
	for _, p := range productos {
		byCategoria[p.CategoriaID] = append(byCategoria[p.CategoriaID], ProductoDTO{
			ID:          p.ID,
			Nombre:      p.Nombre,
			Descripcion: p.Descripcion,
			Precio:      p.Precio,
			ImagenURL:   p.ImagenURL,
			Etiquetas:   p.Etiquetas,
		})
	}

	out := &MenuResponse{
		Local: LocalSummary{
			ID:          local.ID,
			Nombre:      local.Nombre,
			Slug:        local.Slug,
			Descripcion: local.Descripcion,
			Direccion:   local.Direccion,
			Telefono:    local.Telefono,
			LogoURL:     local.LogoURL,
		},
		Categorias: make([]CategoriaDTO, 0, len(categorias)),
	}
	for _, c := range categorias {
		items := byCategoria[c.ID]
		if items == nil {
			items = []ProductoDTO{}
		}
		out.Categorias = append(out.Categorias, CategoriaDTO{
			ID:        c.ID,
			Nombre:    c.Nombre,
			Orden:     c.Orden,
			Productos: items,
		})
	}
	return out
}
