package dto

import "github.com/shopspring/decimal"

// ProductRequest entrada para crear o actualizar un producto (Update sobrescribe todos los campos editables).
type ProductRequest struct {
	Name             string           `json:"name"`
	ActiveIngredient string           `json:"active_ingredient"`
	Category         string           `json:"category"`
	HazardLevel      string           `json:"hazard_level"`
	Unit             string           `json:"unit"`
	Supplier         *string          `json:"supplier,omitempty"`
	MinStock         *decimal.Decimal `json:"min_stock,omitempty"`
}

// ProductFilterRequest filtros del catálogo; listas vacías no filtran.
type ProductFilterRequest struct {
	HazardLevels []string
	Categories   []string
	Search       string
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	ActiveIngredient string          `json:"active_ingredient"`
	Category         string          `json:"category"`
	HazardLevel      string          `json:"hazard_level"`
	HazardLabel      string          `json:"hazard_label"`
	Unit             string          `json:"unit"`
	Supplier         *string         `json:"supplier"`
	MinStock         decimal.Decimal `json:"min_stock"`
	Stock            decimal.Decimal `json:"stock"`
	BelowMinimum     bool            `json:"below_minimum"`
}

// ProductListResponse lista de productos ordenada por nombre.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
