package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos (pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna su ID. Producto inexistente → domain.ErrNotFound.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, "timestamp", kind, quantity, "user", notes, supplier, payment_status, unit_cost, destination)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	var status *string
	if m.PaymentStatus != nil {
		s := string(*m.PaymentStatus)
		status = &s
	}
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.OccurredAt, string(m.Kind), m.Quantity, m.User, m.Notes,
		m.Supplier, status, m.UnitCost, m.Destination,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %d: %w", m.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve los movimientos unidos a su producto, del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementView, error) {
	query, params := buildMovementListQuery(filter)
	rows, err := r.q.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list := []*entity.MovementView{}
	for rows.Next() {
		var v entity.MovementView
		var kind, hazard string
		var status *string
		var unitCost decimal.NullDecimal
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.OccurredAt, &kind, &v.Quantity, &v.User, &v.Notes,
			&v.Supplier, &status, &unitCost, &v.Destination,
			&v.ProductName, &v.ActiveIngredient, &v.Category, &hazard, &v.Unit,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		v.Kind = entity.MovementKind(kind)
		v.HazardLevel = entity.HazardLevel(hazard)
		if status != nil {
			ps := entity.PaymentStatus(*status)
			v.PaymentStatus = &ps
		}
		if unitCost.Valid {
			c := unitCost.Decimal
			v.UnitCost = &c
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// buildMovementListQuery arma el SELECT del historial. Las fechas son inclusivas por día:
// [from 00:00, to+1 00:00) en la zona horaria de los valores recibidos.
func buildMovementListQuery(filter repository.MovementFilter) (string, []any) {
	var a args
	var where []string
	start, end := inventory.DayBounds(filter.From, filter.To)
	if start != nil {
		where = append(where, `m."timestamp" >= `+a.add(*start))
	}
	if end != nil {
		where = append(where, `m."timestamp" < `+a.add(*end))
	}
	if filter.ProductID != nil {
		where = append(where, "m.product_id = "+a.add(*filter.ProductID))
	}
	if filter.Kind != nil {
		where = append(where, "m.kind = "+a.add(string(*filter.Kind)))
	}
	if filter.PaymentStatus != nil {
		where = append(where, "m.payment_status = "+a.add(string(*filter.PaymentStatus)))
	}
	if filter.Supplier != "" {
		where = append(where, "m.supplier ILIKE "+a.add(containsPattern(filter.Supplier)))
	}

	query := `
		SELECT m.id, m.product_id, m."timestamp", m.kind, m.quantity, m."user", m.notes,
		       m.supplier, m.payment_status, m.unit_cost, m.destination,
		       p.name, p.active_ingredient, p.category, p.hazard_level, p.unit
		FROM movements m
		JOIN products p ON p.id = m.product_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY m.\"timestamp\" DESC, m.id DESC"
	return query, a.values
}
