// Package catalog contiene los casos de uso del catálogo de productos.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos.
type UseCase struct {
	repo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create valida y crea un producto con stock 0.
func (uc *UseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	product.Stock = decimal.Zero
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto; domain.ErrNotFound si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Update sobrescribe todos los campos editables. No toca el stock.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	// releer para devolver el stock vigente
	return uc.GetByID(ctx, id)
}

// List lista productos ordenados por nombre con los filtros indicados.
func (uc *UseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	filter, err := ProductFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Categories devuelve las categorías distintas en uso, ordenadas.
func (uc *UseCase) Categories(ctx context.Context) ([]string, error) {
	cats, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// Delete elimina el producto y, en cascada, sus movimientos.
// Un id inexistente devuelve domain.ErrNotFound.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// ProductFilter valida y convierte los filtros del catálogo.
func ProductFilter(in dto.ProductFilterRequest) (repository.ProductFilter, error) {
	var f repository.ProductFilter
	for _, raw := range in.HazardLevels {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		h, ok := entity.ParseHazardLevel(raw)
		if !ok {
			return f, domain.NewValidationError("hazard_level", fmt.Sprintf("peligrosidad desconocida %q", raw))
		}
		f.HazardLevels = append(f.HazardLevels, h)
	}
	for _, c := range in.Categories {
		if c = strings.TrimSpace(c); c != "" {
			f.Categories = append(f.Categories, c)
		}
	}
	f.Search = strings.TrimSpace(in.Search)
	return f, nil
}

func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre comercial es obligatorio")
	}
	ingredient := strings.TrimSpace(in.ActiveIngredient)
	if ingredient == "" {
		return nil, domain.NewValidationError("active_ingredient", "el ingrediente activo es obligatorio")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, domain.NewValidationError("category", "la categoría es obligatoria")
	}
	hazard, ok := entity.ParseHazardLevel(in.HazardLevel)
	if !ok {
		return nil, domain.NewValidationError("hazard_level", "peligrosidad debe ser red, yellow, blue o green")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}
	if !entity.ValidUnit(unit) {
		return nil, domain.NewValidationError("unit", "unidad debe ser una de "+strings.Join(entity.Units, ", "))
	}
	minStock := decimal.Zero
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.NewValidationError("min_stock", "el stock mínimo no puede ser negativo")
		}
		if !entity.ValidQuantity(*in.MinStock) {
			return nil, domain.NewValidationError("min_stock", "el stock mínimo admite hasta 3 decimales")
		}
		minStock = in.MinStock.Truncate(entity.QuantityScale)
	}
	return &entity.Product{
		Name:             name,
		ActiveIngredient: ingredient,
		Category:         category,
		HazardLevel:      hazard,
		Unit:             unit,
		Supplier:         entity.OptionalText(in.Supplier),
		MinStock:         minStock,
	}, nil
}
