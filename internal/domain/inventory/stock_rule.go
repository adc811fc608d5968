package inventory

import (
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// NextStock aplica la regla de stock del libro de almacén (servicio de dominio).
//
//	receipt     → S' = S + q
//	consumption → S' = S - q  (InsufficientStockError si S' < 0)
//	adjustment  → S' = q      (q es el stock final contado, no un delta)
//
// q debe ser estrictamente positiva; la validación ocurre antes de llamar aquí,
// pero se repite para que la regla sea segura por sí sola.
func NextStock(productID int64, kind entity.MovementKind, current, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return current, domain.NewValidationError("quantity", "quantity must be positive")
	}
	switch kind {
	case entity.MovementReceipt:
		return current.Add(quantity), nil
	case entity.MovementConsumption:
		next := current.Sub(quantity)
		if next.IsNegative() {
			return current, &domain.InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: current,
			}
		}
		return next, nil
	case entity.MovementAdjustment:
		return quantity, nil
	}
	return current, domain.NewValidationError("kind", "tipo de movimiento inválido")
}

// Replay recalcula el stock aplicando la regla a los movimientos en orden de inserción.
// Sirve para verificar que el stock cacheado en el producto coincide con el libro.
func Replay(productID int64, movements []*entity.Movement) (decimal.Decimal, error) {
	stock := decimal.Zero
	for _, m := range movements {
		next, err := NextStock(productID, m.Kind, stock, m.Quantity)
		if err != nil {
			return stock, err
		}
		stock = next
	}
	return stock, nil
}
