// Package memory implementa los puertos de persistencia en memoria del proceso.
//
// Se usa como driver de desarrollo (STORAGE_DRIVER=memory) y como doble de pruebas.
// Todas las operaciones se serializan con un único mutex; una transacción trabaja sobre
// una copia del estado que solo reemplaza al original si fn termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado compartido del catálogo y del libro.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	products       map[int64]*entity.Product
	movements      []*entity.Movement // orden de inserción
	nextProductID  int64
	nextMovementID int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: &state{products: map[int64]*entity.Product{}}}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{db: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{db: s} }

// Run ejecuta fn con repos atados a una copia del estado; la copia se publica solo si fn no falla.
// fn no debe usar los repos de Products()/Movements(): el mutex ya está tomado.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&ProductRepo{db: s, tx: work}, &MovementRepo{db: s, tx: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// view ejecuta fn sobre el estado: el de la tx si existe, si no el publicado bajo el mutex.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (st *state) clone() *state {
	out := &state{
		products:       make(map[int64]*entity.Product, len(st.products)),
		movements:      make([]*entity.Movement, len(st.movements)),
		nextProductID:  st.nextProductID,
		nextMovementID: st.nextMovementID,
	}
	for id, p := range st.products {
		cp := *p
		out.products[id] = &cp
	}
	// los movimientos son inmutables: se comparten los punteros
	copy(out.movements, st.movements)
	return out
}
