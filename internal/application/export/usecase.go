// Package export vuelca el catálogo y el libro de movimientos a archivos (CSV, PDF)
// y los deja en el destino configurado.
package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Encabezados: nombres de columna del esquema persistido.
var (
	ProductHeader = []string{
		"id", "name", "active_ingredient", "category", "hazard_level",
		"unit", "supplier", "min_stock", "stock",
	}
	MovementHeader = []string{
		"id", "product_id", "timestamp", "kind", "quantity", "user",
		"notes", "supplier", "payment_status", "unit_cost", "destination",
	}
)

const timestampLayout = "2006-01-02 15:04:05"

// UseCase exportaciones bajo demanda.
type UseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	sink         Sink
	encoder      TableEncoder
	pdf          InventoryPDFGenerator
	now          func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exporta el reporte PDF.
func NewUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	sink Sink,
	encoder TableEncoder,
	pdf InventoryPDFGenerator,
) *UseCase {
	return &UseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		sink:         sink,
		encoder:      encoder,
		pdf:          pdf,
		now:          time.Now,
	}
}

// ExportProducts vuelca el catálogo filtrado (orden por nombre) a CSV.
func (uc *UseCase) ExportProducts(ctx context.Context, in dto.ProductFilterRequest) (*dto.ExportResultDTO, error) {
	filter, err := catalog.ProductFilter(in)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export: productos: %w", err)
	}
	return uc.saveTable(ctx, "productos", ProductHeader, ProductRows(products))
}

// ExportMovements vuelca el historial completo o filtrado (más reciente primero) a CSV.
func (uc *UseCase) ExportMovements(ctx context.Context, in dto.MovementFilterRequest) (*dto.ExportResultDTO, error) {
	filter, err := inventory.MovementFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export: movimientos: %w", err)
	}
	return uc.saveTable(ctx, "movimientos", MovementHeader, MovementRows(list))
}

// ExportInventoryPDF genera el reporte PDF del catálogo filtrado.
func (uc *UseCase) ExportInventoryPDF(ctx context.Context, in dto.ProductFilterRequest) (*dto.ExportResultDTO, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("export: generador PDF no configurado")
	}
	filter, err := catalog.ProductFilter(in)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export: productos: %w", err)
	}
	now := uc.now()
	data, err := uc.pdf.GenerateInventoryPDF(ctx, products, now)
	if err != nil {
		return nil, err
	}
	name := FileName("inventario", now, uniqueSuffix(), "pdf")
	location, err := uc.sink.Save(ctx, name, "application/pdf", data)
	if err != nil {
		return nil, fmt.Errorf("export: guardar %s: %w", name, err)
	}
	metrics.ExportsTotal.WithLabelValues("inventory", "pdf").Inc()
	return &dto.ExportResultDTO{
		File:        name,
		Location:    location,
		Format:      "pdf",
		Rows:        len(products),
		GeneratedAt: now,
	}, nil
}

func (uc *UseCase) saveTable(ctx context.Context, dataset string, header []string, rows [][]string) (*dto.ExportResultDTO, error) {
	data, err := uc.encoder.Encode(header, rows)
	if err != nil {
		return nil, fmt.Errorf("export: codificar %s: %w", dataset, err)
	}
	now := uc.now()
	name := FileName(dataset, now, uniqueSuffix(), "csv")
	location, err := uc.sink.Save(ctx, name, uc.encoder.ContentType(), data)
	if err != nil {
		return nil, fmt.Errorf("export: guardar %s: %w", name, err)
	}
	metrics.ExportsTotal.WithLabelValues(dataset, "csv").Inc()
	return &dto.ExportResultDTO{
		File:        name,
		Location:    location,
		Format:      "csv",
		Rows:        len(rows),
		GeneratedAt: now,
	}, nil
}

// FileName arma el nombre con la marca de generación y un sufijo,
// ej: productos_20260301_143005_042_1f3a9c2e.csv
func FileName(prefix string, t time.Time, suffix, ext string) string {
	return fmt.Sprintf("%s_%s_%03d_%s.%s", prefix, t.Format("20060102_150405"), t.Nanosecond()/int(time.Millisecond), suffix, ext)
}

// uniqueSuffix distingue dos exportaciones generadas en el mismo milisegundo.
func uniqueSuffix() string {
	return uuid.NewString()[:8]
}

// ProductRows una fila por producto, en el orden de ProductHeader.
func ProductRows(products []*entity.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.ActiveIngredient,
			p.Category,
			string(p.HazardLevel),
			p.Unit,
			p.SupplierName(),
			p.MinStock.String(),
			p.Stock.String(),
		})
	}
	return rows
}

// MovementRows una fila por movimiento, en el orden de MovementHeader. Los nulos quedan vacíos.
func MovementRows(list []*entity.MovementView) [][]string {
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		status := ""
		if v.PaymentStatus != nil {
			status = string(*v.PaymentStatus)
		}
		rows = append(rows, []string{
			strconv.FormatInt(v.ID, 10),
			strconv.FormatInt(v.ProductID, 10),
			v.OccurredAt.Local().Format(timestampLayout),
			string(v.Kind),
			v.Quantity.String(),
			str(v.User),
			str(v.Notes),
			str(v.Supplier),
			status,
			dec(v.UnitCost),
			str(v.Destination),
		})
	}
	return rows
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dec(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
