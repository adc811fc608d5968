package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter filtros opcionales e independientes del historial (semántica AND).
// From y To son fechas inclusivas: solo cuenta la parte de fecha.
type MovementFilter struct {
	From          *time.Time
	To            *time.Time
	ProductID     *int64
	Kind          *entity.MovementKind
	PaymentStatus *entity.PaymentStatus
	Supplier      string // subcadena sin distinguir mayúsculas
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
// No expone Update ni Delete: los movimientos son inmutables.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve los movimientos unidos a su producto, del más reciente al más antiguo
	// (fecha descendente, luego id descendente).
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementView, error)
}
