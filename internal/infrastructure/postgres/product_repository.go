package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, active_ingredient, category, hazard_level, unit, supplier, min_stock, stock`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, active_ingredient, category, hazard_level, unit, supplier, min_stock, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.ActiveIngredient, product.Category, string(product.HazardLevel),
		product.Unit, product.Supplier, product.MinStock, product.Stock,
	).Scan(&product.ID)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("insert product: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate como GetByID pero bloquea la fila (SELECT … FOR UPDATE) hasta el fin de la tx.
// Solo tiene efecto si el repo se construyó sobre una pgx.Tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update sobrescribe los campos editables. No toca el stock (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, active_ingredient = $3, category = $4, hazard_level = $5, unit = $6, supplier = $7, min_stock = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.ActiveIngredient, product.Category,
		string(product.HazardLevel), product.Unit, product.Supplier, product.MinStock,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", product.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateStock fija el stock derivado (usado solo por el registro de movimientos).
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List lista productos por nombre (orden de bytes, empates por id) aplicando el filtro.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query, params := buildProductListQuery(filter)
	rows, err := r.q.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListCategories devuelve las categorías distintas, ordenadas.
func (r *ProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete elimina un producto; sus movimientos se borran por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// buildProductListQuery arma el SELECT del catálogo con los predicados activos del filtro.
func buildProductListQuery(filter repository.ProductFilter) (string, []any) {
	var a args
	var where []string
	if len(filter.HazardLevels) > 0 {
		levels := make([]string, 0, len(filter.HazardLevels))
		for _, h := range filter.HazardLevels {
			levels = append(levels, string(h))
		}
		where = append(where, "hazard_level = ANY("+a.add(levels)+")")
	}
	if len(filter.Categories) > 0 {
		where = append(where, "category = ANY("+a.add(filter.Categories)+")")
	}
	if filter.Search != "" {
		p := a.add(containsPattern(filter.Search))
		where = append(where, fmt.Sprintf("(name ILIKE %[1]s OR active_ingredient ILIKE %[1]s OR supplier ILIKE %[1]s)", p))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name COLLATE "C", id`
	return query, a.values
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var hazard string
	if err := row.Scan(&p.ID, &p.Name, &p.ActiveIngredient, &p.Category, &hazard,
		&p.Unit, &p.Supplier, &p.MinStock, &p.Stock); err != nil {
		return nil, err
	}
	p.HazardLevel = entity.HazardLevel(hazard)
	return &p, nil
}
