package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// RecordMovementUseCase registra movimientos del libro de almacén de forma transaccional:
// bloqueo de la fila del producto (SELECT FOR UPDATE), regla de stock, insert + update y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	now          func() time.Time
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		now:          time.Now,
	}
}

// MovementInput entrada ya separada del transporte. DefaultUser se usa si el request no trae usuario
// (sujeto del token del operador).
type MovementInput struct {
	dto.RecordMovementRequest
	DefaultUser string
}

// RecordMovement valida la entrada y aplica el movimiento.
//
// Orden de evaluación:
//  1. cantidad > 0 y demás campos válidos (ValidationError)
//  2. el producto existe (ErrNotFound)
//  3. lectura del stock actual con bloqueo de fila
//  4. regla de stock (InsufficientStockError en consumos que dejarían stock negativo)
//  5. insert del movimiento + update del stock en la misma transacción
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in MovementInput) (*dto.RecordMovementResponse, error) {
	mov, err := uc.movementFromInput(in)
	if err != nil {
		metrics.MovementsRejectedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	start := time.Now()
	var stockAfter decimal.Decimal
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %d: %w", mov.ProductID, domain.ErrNotFound)
		}
		next, err := inventory.NextStock(product.ID, mov.Kind, product.Stock, mov.Quantity)
		if err != nil {
			return err
		}
		if !entity.ValidQuantity(next) {
			return domain.NewValidationError("quantity", "el stock resultante excede la capacidad de la columna")
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, next); err != nil {
			return err
		}
		stockAfter = next
		return nil
	})
	metrics.MovementLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MovementsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}
	metrics.MovementsRecordedTotal.WithLabelValues(string(mov.Kind)).Inc()

	return &dto.RecordMovementResponse{
		Movement:     dto.FromMovement(mov),
		ProductStock: stockAfter,
	}, nil
}

// ListMovements devuelve el historial filtrado, del más reciente al más antiguo.
func (uc *RecordMovementUseCase) ListMovements(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	filter, err := MovementFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, v := range list {
		items = append(items, dto.FromMovementView(v))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}

func (uc *RecordMovementUseCase) movementFromInput(in MovementInput) (*entity.Movement, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.NewValidationError("quantity", "quantity must be positive")
	}
	if !entity.ValidQuantity(in.Quantity) {
		return nil, domain.NewValidationError("quantity", "la cantidad admite hasta 3 decimales y 11 dígitos enteros")
	}
	kind, ok := entity.ParseMovementKind(in.Kind)
	if !ok {
		return nil, domain.NewValidationError("kind", "tipo debe ser receipt, consumption o adjustment")
	}
	occurredAt, err := ParseTimestamp(in.Date)
	if err != nil {
		return nil, err
	}
	if occurredAt.IsZero() {
		occurredAt = uc.now()
	}

	mov := &entity.Movement{
		ProductID:  in.ProductID,
		OccurredAt: occurredAt,
		Kind:       kind,
		Quantity:   in.Quantity.Truncate(entity.QuantityScale),
		User:       entity.OptionalText(in.User),
		Notes:      entity.OptionalText(in.Notes),
		Supplier:   entity.OptionalText(in.Supplier),
	}
	if mov.User == nil && strings.TrimSpace(in.DefaultUser) != "" {
		mov.User = entity.OptionalText(&in.DefaultUser)
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.NewValidationError("unit_cost", "el costo unitario no puede ser negativo")
		}
		if !entity.FitsScale(*in.UnitCost, entity.CostScale) {
			return nil, domain.NewValidationError("unit_cost", "el costo unitario admite hasta 2 decimales")
		}
		cost := in.UnitCost.Truncate(entity.CostScale)
		mov.UnitCost = &cost
	}
	if ps := entity.OptionalText(in.PaymentStatus); ps != nil {
		status, ok := entity.ParsePaymentStatus(*ps)
		if !ok {
			return nil, domain.NewValidationError("payment_status", "estado de pago debe ser paid u owed")
		}
		// el estado de pago solo tiene sentido en ingresos
		if kind == entity.MovementReceipt {
			mov.PaymentStatus = &status
		}
	}
	if kind == entity.MovementConsumption {
		mov.Destination = entity.OptionalText(in.Destination)
	}
	return mov, nil
}

// MovementFilter valida y convierte los filtros del historial.
func MovementFilter(in dto.MovementFilterRequest) (repository.MovementFilter, error) {
	var f repository.MovementFilter
	if in.From != "" {
		t, err := parseDate("from", in.From)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if in.To != "" {
		t, err := parseDate("to", in.To)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	if in.ProductID > 0 {
		id := in.ProductID
		f.ProductID = &id
	}
	if strings.TrimSpace(in.Kind) != "" {
		k, ok := entity.ParseMovementKind(in.Kind)
		if !ok {
			return f, domain.NewValidationError("kind", fmt.Sprintf("tipo desconocido %q", in.Kind))
		}
		f.Kind = &k
	}
	if strings.TrimSpace(in.PaymentStatus) != "" {
		s, ok := entity.ParsePaymentStatus(in.PaymentStatus)
		if !ok {
			return f, domain.NewValidationError("payment_status", fmt.Sprintf("estado de pago desconocido %q", in.PaymentStatus))
		}
		f.PaymentStatus = &s
	}
	f.Supplier = strings.TrimSpace(in.Supplier)
	return f, nil
}

// ParseTimestamp acepta "YYYY-MM-DD" (medianoche local) o RFC 3339. Vacío devuelve tiempo cero.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return parseDate("date", s)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "fecha inválida, use YYYY-MM-DD")
	}
	return t, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	}
	return "storage"
}
