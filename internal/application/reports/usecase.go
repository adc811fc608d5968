// Package reports contiene los reportes derivados del catálogo y del libro de movimientos.
//
// Nada de esto se persiste: cada consulta recalcula a partir de List/ListMovements,
// de modo que las alertas y sumas reflejan siempre el último movimiento registrado.
package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase reportes de solo lectura.
type UseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *UseCase {
	return &UseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// Inventory resumen del inventario filtrado: conteos, stock total, alertas y desgloses.
func (uc *UseCase) Inventory(ctx context.Context, in dto.ProductFilterRequest) (*dto.InventorySummaryDTO, error) {
	products, err := uc.products(ctx, in)
	if err != nil {
		return nil, err
	}
	byCategory := CategoryStock(products)
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Stock)
	}
	return &dto.InventorySummaryDTO{
		Products:   len(products),
		StockTotal: total,
		Categories: len(byCategory),
		Alerts:     Alerts(products),
		ByCategory: byCategory,
		ByHazard:   HazardStock(products),
	}, nil
}

// Categories stock por categoría del catálogo filtrado.
func (uc *UseCase) Categories(ctx context.Context, in dto.ProductFilterRequest) ([]dto.CategoryStockDTO, error) {
	products, err := uc.products(ctx, in)
	if err != nil {
		return nil, err
	}
	return CategoryStock(products), nil
}

// Hazards stock por nivel de peligrosidad del catálogo filtrado.
func (uc *UseCase) Hazards(ctx context.Context, in dto.ProductFilterRequest) ([]dto.HazardStockDTO, error) {
	products, err := uc.products(ctx, in)
	if err != nil {
		return nil, err
	}
	return HazardStock(products), nil
}

// Alerts productos por debajo de su stock mínimo.
func (uc *UseCase) Alerts(ctx context.Context, in dto.ProductFilterRequest) ([]dto.StockAlertDTO, error) {
	products, err := uc.products(ctx, in)
	if err != nil {
		return nil, err
	}
	return Alerts(products), nil
}

// Payables cuentas por pagar: ingresos con estado "owed" dentro del filtro indicado.
// Kind y PaymentStatus del filtro se fuerzan a receipt/owed.
func (uc *UseCase) Payables(ctx context.Context, in dto.MovementFilterRequest) (*dto.PayablesReportDTO, error) {
	filter, err := inventory.MovementFilter(in)
	if err != nil {
		return nil, err
	}
	kind := entity.MovementReceipt
	owed := entity.PaymentOwed
	filter.Kind = &kind
	filter.PaymentStatus = &owed

	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reportes: cuentas por pagar: %w", err)
	}
	return Payables(list), nil
}

// History totales del historial filtrado.
func (uc *UseCase) History(ctx context.Context, in dto.MovementFilterRequest) (*dto.HistoryTotalsDTO, error) {
	filter, err := inventory.MovementFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reportes: historial: %w", err)
	}
	return HistoryTotals(list), nil
}

func (uc *UseCase) products(ctx context.Context, in dto.ProductFilterRequest) ([]*entity.Product, error) {
	filter, err := catalog.ProductFilter(in)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reportes: productos: %w", err)
	}
	return products, nil
}

// ── Cálculos puros ─────────────────────────────────────────────────────────────

// CategoryStock suma el stock por categoría, de mayor a menor (empates por nombre).
func CategoryStock(products []*entity.Product) []dto.CategoryStockDTO {
	idx := map[string]int{}
	out := []dto.CategoryStockDTO{}
	for _, p := range products {
		i, ok := idx[p.Category]
		if !ok {
			i = len(out)
			idx[p.Category] = i
			out = append(out, dto.CategoryStockDTO{Category: p.Category, Stock: decimal.Zero})
		}
		out[i].Products++
		out[i].Stock = out[i].Stock.Add(p.Stock)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if c := out[a].Stock.Cmp(out[b].Stock); c != 0 {
			return c > 0
		}
		return out[a].Category < out[b].Category
	})
	return out
}

// HazardStock suma el stock por nivel de peligrosidad en orden rojo → verde.
// Solo incluye los niveles presentes.
func HazardStock(products []*entity.Product) []dto.HazardStockDTO {
	sums := map[entity.HazardLevel]*dto.HazardStockDTO{}
	for _, p := range products {
		s, ok := sums[p.HazardLevel]
		if !ok {
			s = &dto.HazardStockDTO{
				HazardLevel: string(p.HazardLevel),
				Label:       p.HazardLevel.Label(),
				Stock:       decimal.Zero,
			}
			sums[p.HazardLevel] = s
		}
		s.Products++
		s.Stock = s.Stock.Add(p.Stock)
	}
	out := []dto.HazardStockDTO{}
	for _, h := range entity.HazardLevels {
		if s, ok := sums[h]; ok {
			out = append(out, *s)
		}
	}
	return out
}

// Alerts productos con stock < mínimo, en el orden recibido (por nombre).
func Alerts(products []*entity.Product) []dto.StockAlertDTO {
	out := []dto.StockAlertDTO{}
	for _, p := range products {
		if !p.BelowMinimum() {
			continue
		}
		out = append(out, dto.StockAlertDTO{
			ProductResponse: dto.FromProduct(p),
			Deficit:         p.MinStock.Sub(p.Stock),
		})
	}
	return out
}

// Payables agrupa los ingresos adeudados por proveedor. Los ingresos sin proveedor forman su propio grupo.
// monto = cantidad × costo unitario (sin costo cuenta 0). Orden: monto desc, luego proveedor.
func Payables(list []*entity.MovementView) *dto.PayablesReportDTO {
	report := &dto.PayablesReportDTO{
		Summary:     []dto.SupplierPayableDTO{},
		Details:     []dto.PayableDetailDTO{},
		TotalAmount: decimal.Zero,
	}
	idx := map[string]int{}
	for _, v := range list {
		if v.Kind != entity.MovementReceipt || v.PaymentStatus == nil || *v.PaymentStatus != entity.PaymentOwed {
			continue
		}
		amount := v.Amount()
		supplier := v.SupplierName()
		i, ok := idx[supplier]
		if !ok {
			i = len(report.Summary)
			idx[supplier] = i
			report.Summary = append(report.Summary, dto.SupplierPayableDTO{
				Supplier:      supplier,
				TotalQuantity: decimal.Zero,
				TotalAmount:   decimal.Zero,
			})
		}
		report.Summary[i].Records++
		report.Summary[i].TotalQuantity = report.Summary[i].TotalQuantity.Add(v.Quantity)
		report.Summary[i].TotalAmount = report.Summary[i].TotalAmount.Add(amount)
		report.TotalAmount = report.TotalAmount.Add(amount)

		report.Details = append(report.Details, dto.PayableDetailDTO{
			MovementID:  v.ID,
			Timestamp:   v.OccurredAt,
			Supplier:    v.Supplier,
			ProductName: v.ProductName,
			Quantity:    v.Quantity,
			UnitCost:    v.UnitCost,
			Amount:      amount,
			User:        v.User,
			Notes:       v.Notes,
		})
	}
	sort.SliceStable(report.Summary, func(a, b int) bool {
		if c := report.Summary[a].TotalAmount.Cmp(report.Summary[b].TotalAmount); c != 0 {
			return c > 0
		}
		return report.Summary[a].Supplier < report.Summary[b].Supplier
	})
	return report
}

// HistoryTotals suma ingresos, consumos y montos pagados/adeudados de una lista de movimientos.
// Los ajustes cuentan como movimiento pero no suman en ninguna columna.
func HistoryTotals(list []*entity.MovementView) *dto.HistoryTotalsDTO {
	out := &dto.HistoryTotalsDTO{
		Movements:    len(list),
		Receipts:     decimal.Zero,
		Consumptions: decimal.Zero,
		Paid:         decimal.Zero,
		Owed:         decimal.Zero,
	}
	for _, v := range list {
		switch v.Kind {
		case entity.MovementReceipt:
			out.Receipts = out.Receipts.Add(v.Quantity)
			if v.PaymentStatus == nil {
				continue
			}
			switch *v.PaymentStatus {
			case entity.PaymentPaid:
				out.Paid = out.Paid.Add(v.Amount())
			case entity.PaymentOwed:
				out.Owed = out.Owed.Add(v.Amount())
			}
		case entity.MovementConsumption:
			out.Consumptions = out.Consumptions.Add(v.Quantity)
		}
	}
	return out
}
