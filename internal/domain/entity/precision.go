package entity

import "github.com/shopspring/decimal"

// Escalas de almacenamiento: NUMERIC(14,3) para cantidades y stock, NUMERIC(14,2) para costos.
const (
	QuantityScale = 3
	CostScale     = 2
)

// maxQuantity límite exclusivo de la parte entera de NUMERIC(14,3).
var maxQuantity = decimal.New(1, 11)

// FitsScale indica si d se representa sin redondeo con scale decimales.
// Los ceros a la derecha no cuentan: 1.5000 cabe en escala 3.
func FitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Truncate(scale))
}

// ValidQuantity indica si q cabe en la columna de cantidades sin redondeo ni desborde.
func ValidQuantity(q decimal.Decimal) bool {
	return FitsScale(q, QuantityScale) && q.Abs().LessThan(maxQuantity)
}
