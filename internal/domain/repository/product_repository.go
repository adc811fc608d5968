package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter predicados opcionales para listar el catálogo (se combinan con AND).
type ProductFilter struct {
	HazardLevels []entity.HazardLevel // pertenencia a un conjunto de peligrosidades
	Categories   []string             // pertenencia a un conjunto de categorías (coincidencia exacta)
	Search       string               // subcadena sin distinguir mayúsculas en nombre, ingrediente activo o proveedor
}

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// GetByID devuelve (nil, nil) si el producto no existe; Update y Delete devuelven domain.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id int64, stock decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id int64) error
}
