package menu

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuResponse is the public QR menu payload for one local.
type MenuResponse struct {
	Local      LocalSummary   `json:"local"`
	Categorias []CategoriaDTO `json:"categorias"`
}

// LocalSummary exposes the public fields of a tenant.
type LocalSummary struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Slug        string    `json:"slug"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Direccion   *string   `json:"direccion,omitempty"`
	Telefono    *string   `json:"telefono,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
}

// CategoriaDTO groups the available products under one category.
type CategoriaDTO struct {
	ID        uuid.UUID     `json:"id"`
	Nombre    string        `json:"nombre"`
	Orden     int           `json:"orden"`
	Productos []ProductoDTO `json:"productos"`
}

// ProductoDTO exposes the public fields of a menu item.
type ProductoDTO struct {
	ID          uuid.UUID       `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	ImagenURL   *string         `json:"imagen_url,omitempty"`
	Etiquetas   []string        `json:"etiquetas,omitempty"`
}
