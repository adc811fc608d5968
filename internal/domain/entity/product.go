package entity

import "github.com/shopspring/decimal"

// Product representa un producto fitosanitario del catálogo del almacén.
// Stock es un valor derivado del libro de movimientos; nunca se edita directamente.
type Product struct {
	ID               int64
	Name             string // nombre comercial
	ActiveIngredient string
	Category         string // texto libre: Fungicida, Insecticida, Herbicida…
	HazardLevel      HazardLevel
	Unit             string
	Supplier         *string // proveedor habitual (opcional)
	MinStock         decimal.Decimal
	Stock            decimal.Decimal
}

// BelowMinimum indica si el stock actual está por debajo del umbral de alerta.
func (p *Product) BelowMinimum() bool {
	return p.Stock.LessThan(p.MinStock)
}

// SupplierName devuelve el proveedor o vacío.
func (p *Product) SupplierName() string {
	if p.Supplier == nil {
		return ""
	}
	return *p.Supplier
}
