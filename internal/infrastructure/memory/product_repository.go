package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria. Devuelve copias: el llamador no puede alterar el estado.
type ProductRepo struct {
	db *Store
	tx *state
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.view(r.tx, func(st *state) error {
		st.nextProductID++
		product.ID = st.nextProductID
		cp := *product
		st.products[cp.ID] = &cp
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Product
	err := r.db.view(r.tx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el mutex ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.view(r.tx, func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return fmt.Errorf("producto %d: %w", product.ID, domain.ErrNotFound)
		}
		cp := *product
		cp.Stock = cur.Stock
		st.products[cp.ID] = &cp
		return nil
	})
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.view(r.tx, func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		cp := *cur
		cp.Stock = stock
		st.products[id] = &cp
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list := []*entity.Product{}
	err := r.db.view(r.tx, func(st *state) error {
		for _, p := range st.products {
			if matchProduct(p, filter) {
				cp := *p
				list = append(list, &cp)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func (r *ProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	err := r.db.view(r.tx, func(st *state) error {
		for _, p := range st.products {
			if !seen[p.Category] {
				seen[p.Category] = true
				out = append(out, p.Category)
			}
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

// Delete elimina el producto y sus movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.view(r.tx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
		}
		delete(st.products, id)
		kept := st.movements[:0:0]
		for _, m := range st.movements {
			if m.ProductID != id {
				kept = append(kept, m)
			}
		}
		st.movements = kept
		return nil
	})
}

func matchProduct(p *entity.Product, f repository.ProductFilter) bool {
	if len(f.HazardLevels) > 0 {
		found := false
		for _, h := range f.HazardLevels {
			if p.HazardLevel == h {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if p.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		return containsFold(p.Name, f.Search) ||
			containsFold(p.ActiveIngredient, f.Search) ||
			containsFold(p.SupplierName(), f.Search)
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
