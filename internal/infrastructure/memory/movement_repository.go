package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct {
	db *Store
	tx *state
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.view(r.tx, func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return fmt.Errorf("producto %d: %w", m.ProductID, domain.ErrNotFound)
		}
		st.nextMovementID++
		m.ID = st.nextMovementID
		cp := *m
		st.movements = append(st.movements, &cp)
		return nil
	})
}

func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start, end := inventory.DayBounds(filter.From, filter.To)
	list := []*entity.MovementView{}
	err := r.db.view(r.tx, func(st *state) error {
		for _, m := range st.movements {
			if start != nil && m.OccurredAt.Before(*start) {
				continue
			}
			if end != nil && !m.OccurredAt.Before(*end) {
				continue
			}
			if !matchMovement(m, filter) {
				continue
			}
			p := st.products[m.ProductID]
			list = append(list, &entity.MovementView{
				Movement:         *m,
				ProductName:      p.Name,
				ActiveIngredient: p.ActiveIngredient,
				Category:         p.Category,
				HazardLevel:      p.HazardLevel,
				Unit:             p.Unit,
			})
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].OccurredAt.Equal(list[j].OccurredAt) {
			return list[i].OccurredAt.After(list[j].OccurredAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, err
}

func matchMovement(m *entity.Movement, f repository.MovementFilter) bool {
	if f.ProductID != nil && m.ProductID != *f.ProductID {
		return false
	}
	if f.Kind != nil && m.Kind != *f.Kind {
		return false
	}
	if f.PaymentStatus != nil && (m.PaymentStatus == nil || *m.PaymentStatus != *f.PaymentStatus) {
		return false
	}
	if f.Supplier != "" && !containsFold(m.SupplierName(), f.Supplier) {
		return false
	}
	return true
}
