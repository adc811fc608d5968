package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*inventory.RecordMovementUseCase, *memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	p := &entity.Product{
		Name: "Mancozeb 80 WP", ActiveIngredient: "Mancozeb", Category: "Fungicida",
		HazardLevel: entity.HazardYellow, Unit: entity.UnitKilogram, MinStock: dec("10"),
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return inventory.NewRecordMovementUseCase(store, store.Movements()), store, p.ID
}

func input(productID int64, kind, qty string) inventory.MovementInput {
	return inventory.MovementInput{RecordMovementRequest: dto.RecordMovementRequest{
		ProductID: productID, Kind: kind, Quantity: dec(qty),
	}}
}

func stockOf(t *testing.T, store *memory.Store, id int64) decimal.Decimal {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestRecordMovement_Escenarios(t *testing.T) {
	uc, store, id := setup(t)
	ctx := context.Background()

	out, err := uc.RecordMovement(ctx, input(id, "receipt", "50"))
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(out.ProductStock))

	_, err = uc.RecordMovement(ctx, input(id, "consumption", "45"))
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(stockOf(t, store, id)))

	_, err = uc.RecordMovement(ctx, input(id, "consumption", "100"))
	var insuf *domain.InsufficientStockError
	require.True(t, errors.As(err, &insuf))
	assert.True(t, dec("5").Equal(insuf.Available))
	assert.True(t, dec("5").Equal(stockOf(t, store, id)))

	list, err := uc.ListMovements(ctx, dto.MovementFilterRequest{ProductID: id})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	out, err = uc.RecordMovement(ctx, input(id, "adjustment", "7"))
	require.NoError(t, err)
	assert.True(t, dec("7").Equal(out.ProductStock))
}

func TestRecordMovement_CantidadNoPositivaNoMuta(t *testing.T) {
	uc, store, id := setup(t)
	for _, q := range []string{"0", "-1"} {
		_, err := uc.RecordMovement(context.Background(), input(id, "receipt", q))
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "quantity", verr.Field)
		assert.Equal(t, "quantity: quantity must be positive", verr.Error())
	}
	assert.True(t, stockOf(t, store, id).IsZero())
}

func TestRecordMovement_ValidaAntesQueExistencia(t *testing.T) {
	uc, _, _ := setup(t)
	// cantidad inválida y producto inexistente: gana la validación
	_, err := uc.RecordMovement(context.Background(), input(999, "receipt", "0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordMovement(context.Background(), input(999, "receipt", "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_CamposInvalidos(t *testing.T) {
	uc, _, id := setup(t)
	neg := dec("-1")
	bad := "quizas"

	cases := map[string]inventory.MovementInput{
		"kind":           input(id, "transfer", "1"),
		"unit_cost":      {RecordMovementRequest: dto.RecordMovementRequest{ProductID: id, Kind: "receipt", Quantity: dec("1"), UnitCost: &neg}},
		"payment_status": {RecordMovementRequest: dto.RecordMovementRequest{ProductID: id, Kind: "receipt", Quantity: dec("1"), PaymentStatus: &bad}},
		"date":           {RecordMovementRequest: dto.RecordMovementRequest{ProductID: id, Kind: "receipt", Quantity: dec("1"), Date: "31/12/2025"}},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := uc.RecordMovement(context.Background(), in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestRecordMovement_DescartaCamposQueNoAplican(t *testing.T) {
	uc, _, id := setup(t)
	paid := "paid"
	dest := "Lote 3"

	in := input(id, "receipt", "10")
	in.Destination = &dest
	out, err := uc.RecordMovement(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, out.Movement.Destination)

	in = input(id, "consumption", "1")
	in.PaymentStatus = &paid
	in.Destination = &dest
	out, err = uc.RecordMovement(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, out.Movement.PaymentStatus)
	require.NotNil(t, out.Movement.Destination)
	assert.Equal(t, "Lote 3", *out.Movement.Destination)
}

func TestRecordMovement_FechaVaciaEsAhora(t *testing.T) {
	uc, _, id := setup(t)
	before := time.Now()
	out, err := uc.RecordMovement(context.Background(), input(id, "receipt", "1"))
	require.NoError(t, err)
	assert.False(t, out.Movement.Timestamp.Before(before))
}

// El stock cacheado siempre coincide con reaplicar la regla sobre el libro.
func TestRecordMovement_StockCoincideConElLibro(t *testing.T) {
	uc, store, id := setup(t)
	ctx := context.Background()
	steps := []struct{ kind, qty string }{
		{"receipt", "20"}, {"consumption", "3.5"}, {"consumption", "50"},
		{"adjustment", "12"}, {"receipt", "0.25"}, {"consumption", "12.25"},
	}
	for _, s := range steps {
		_, _ = uc.RecordMovement(ctx, input(id, s.kind, s.qty))
	}

	views, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: &id})
	require.NoError(t, err)
	movs := make([]*entity.Movement, 0, len(views))
	for i := len(views) - 1; i >= 0; i-- { // List devuelve del más reciente al más antiguo
		m := views[i].Movement
		movs = append(movs, &m)
	}
	replayed, err := domaininv.Replay(id, movs)
	require.NoError(t, err)
	assert.True(t, replayed.Equal(stockOf(t, store, id)), "replay %s, stock %s", replayed, stockOf(t, store, id))
	assert.True(t, stockOf(t, store, id).IsZero())
}

// Consumos concurrentes nunca dejan el stock en negativo.
func TestRecordMovement_ConsumosConcurrentes(t *testing.T) {
	uc, store, id := setup(t)
	ctx := context.Background()
	_, err := uc.RecordMovement(ctx, input(id, "receipt", "10"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordMovement(ctx, input(id, "consumption", "1"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 15, rejected)
	assert.True(t, stockOf(t, store, id).IsZero())
}

func TestMovementFilter(t *testing.T) {
	f, err := inventory.MovementFilter(dto.MovementFilterRequest{
		From: "2025-01-01", To: "2025-01-31", ProductID: 3, Kind: "consumo", PaymentStatus: "", Supplier: " agro ",
	})
	require.NoError(t, err)
	require.NotNil(t, f.From)
	require.NotNil(t, f.Kind)
	assert.Equal(t, entity.MovementConsumption, *f.Kind)
	assert.Equal(t, int64(3), *f.ProductID)
	assert.Nil(t, f.PaymentStatus)
	assert.Equal(t, "agro", f.Supplier)

	_, err = inventory.MovementFilter(dto.MovementFilterRequest{Kind: "robo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = inventory.MovementFilter(dto.MovementFilterRequest{To: "2025-13-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Precisión de almacenamiento ───────────────────────────────────────────────

// numericRunner redondea al escribir, igual que las columnas NUMERIC(14,3) de Postgres.
type numericRunner struct{ store *memory.Store }

type numericProducts struct{ repository.ProductRepository }

func (r numericProducts) UpdateStock(ctx context.Context, id int64, stock decimal.Decimal) error {
	return r.ProductRepository.UpdateStock(ctx, id, stock.Round(entity.QuantityScale))
}

type numericMovements struct{ repository.MovementRepository }

func (r numericMovements) Create(ctx context.Context, m *entity.Movement) error {
	cp := *m
	cp.Quantity = m.Quantity.Round(entity.QuantityScale)
	if err := r.MovementRepository.Create(ctx, &cp); err != nil {
		return err
	}
	m.ID = cp.ID
	return nil
}

func (n numericRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	return n.store.Run(ctx, func(p repository.ProductRepository, m repository.MovementRepository) error {
		return fn(numericProducts{p}, numericMovements{m})
	})
}

func TestRecordMovement_PrecisionFueraDeEscala(t *testing.T) {
	uc, store, id := setup(t)
	ctx := context.Background()
	cost := dec("1.005")

	cases := map[string]inventory.MovementInput{
		"cuarto decimal":  input(id, "receipt", "1.0005"),
		"redondea a cero": input(id, "receipt", "0.0004"),
		"desborde":        input(id, "receipt", "100000000000"),
		"costo":           {RecordMovementRequest: dto.RecordMovementRequest{ProductID: id, Kind: "receipt", Quantity: dec("1"), UnitCost: &cost}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.RecordMovement(ctx, in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "err = %v", err)
		})
	}
	assert.True(t, stockOf(t, store, id).IsZero())

	// ceros a la derecha no cuentan como decimales
	out, err := uc.RecordMovement(ctx, input(id, "receipt", "1.5000"))
	require.NoError(t, err)
	assert.Equal(t, "1.5", out.ProductStock.String())
}

// Con columnas de escala fija, el stock guardado sigue coincidiendo con el libro.
func TestRecordMovement_StockCoincideConColumnasNumeric(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	p := &entity.Product{
		Name: "Cobre", ActiveIngredient: "Oxicloruro de cobre", Category: "Fungicida",
		HazardLevel: entity.HazardBlue, Unit: entity.UnitKilogram,
	}
	require.NoError(t, store.Products().Create(ctx, p))
	uc := inventory.NewRecordMovementUseCase(numericRunner{store}, store.Movements())

	for _, in := range []inventory.MovementInput{
		input(p.ID, "receipt", "1.0005"),
		input(p.ID, "receipt", "2.125"),
		input(p.ID, "consumption", "1.0005"),
		input(p.ID, "consumption", "0.001"),
	} {
		_, _ = uc.RecordMovement(ctx, in)
	}

	views, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: &p.ID})
	require.NoError(t, err)
	ledger := make([]*entity.Movement, 0, len(views))
	for i := len(views) - 1; i >= 0; i-- {
		ledger = append(ledger, &views[i].Movement)
	}
	replayed, err := domaininv.Replay(p.ID, ledger)
	require.NoError(t, err)
	assert.True(t, replayed.Equal(stockOf(t, store, p.ID)), "libro %s, stock %s", replayed, stockOf(t, store, p.ID))
	assert.Equal(t, "2.124", stockOf(t, store, p.ID).String())
}

func TestRecordMovement_ProductoSinIDEsNoEncontrado(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.RecordMovement(context.Background(), input(0, "receipt", "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
