package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement representa un registro inmutable del libro de almacén (ingreso, consumo o ajuste).
// Quantity siempre es positiva; el tipo decide cómo se aplica al stock.
type Movement struct {
	ID            int64
	ProductID     int64
	OccurredAt    time.Time
	Kind          MovementKind
	Quantity      decimal.Decimal
	User          *string
	Notes         *string
	Supplier      *string
	PaymentStatus *PaymentStatus   // solo ingresos
	UnitCost      *decimal.Decimal // costo unitario opcional
	Destination   *string          // solo consumos: parcela, lote, cultivo
}

// Amount devuelve cantidad × costo unitario (costo ausente cuenta como 0).
func (m *Movement) Amount() decimal.Decimal {
	if m.UnitCost == nil {
		return decimal.Zero
	}
	return m.Quantity.Mul(*m.UnitCost)
}

// SupplierName devuelve el proveedor del movimiento o vacío.
func (m *Movement) SupplierName() string {
	if m.Supplier == nil {
		return ""
	}
	return *m.Supplier
}

// MovementView movimiento unido a los atributos de presentación de su producto.
type MovementView struct {
	Movement
	ProductName      string
	ActiveIngredient string
	Category         string
	HazardLevel      HazardLevel
	Unit             string
}
