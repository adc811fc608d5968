// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos | stock total | alertas                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Ingrediente | Categoría | Pelig. | Stock  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS: productos bajo stock mínimo                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/export"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var _ export.InventoryPDFGenerator = (*InventoryReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 94, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 178, Green: 34, Blue: 34}
)

// hazardColors banda de color de la etiqueta toxicológica.
var hazardColors = map[entity.HazardLevel]*props.Color{
	entity.HazardRed:    {Red: 200, Green: 30, Blue: 30},
	entity.HazardYellow: {Red: 200, Green: 160, Blue: 0},
	entity.HazardBlue:   {Red: 30, Green: 80, Blue: 180},
	entity.HazardGreen:  {Red: 30, Green: 140, Blue: 60},
}

// ── Generator ─────────────────────────────────────────────────────────────────

// InventoryReport implementa export.InventoryPDFGenerator.
type InventoryReport struct {
	title string
}

// NewInventoryReport construye el generador. title aparece en el encabezado y en los metadatos.
func NewInventoryReport(title string) *InventoryReport {
	if title == "" {
		title = "Inventario de fitosanitarios"
	}
	return &InventoryReport{title: title}
}

// GenerateInventoryPDF genera el PDF y devuelve sus bytes. products llega ordenado por nombre.
func (g *InventoryReport) GenerateInventoryPDF(
	_ context.Context,
	products []*entity.Product,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(products))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(products)...)

	alerts := belowMinimum(products)
	if len(alerts) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorAlert, Thickness: 0.3}))
		m.AddRows(alertRows(alerts)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func summaryRow(products []*entity.Product) core.Row {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Stock)
	}
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center}),
		)
	}
	return row.New(13).Add(
		cell("Productos", fmt.Sprintf("%d", len(products))),
		cell("Stock total", formatQty(total)),
		cell("Bajo mínimo", fmt.Sprintf("%d", len(belowMinimum(products)))),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Ingrediente activo", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Peligrosidad", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
	)
}

func tableRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		stockColor := (*props.Color)(nil)
		if p.BelowMinimum() {
			stockColor = colorAlert
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(p.ActiveIngredient, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(p.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.HazardLevel.Label(), props.Text{
				Size: 8, Top: 1, Left: 1, Color: hazardColors[p.HazardLevel],
			})),
			col.New(1).Add(text.New(formatQty(p.Stock)+" "+p.Unit, props.Text{
				Size: 8, Top: 1, Right: 1, Align: align.Right, Color: stockColor,
			})),
			col.New(1).Add(text.New(formatQty(p.MinStock), props.Text{
				Size: 8, Top: 1, Right: 1, Align: align.Right, Color: colorGray,
			})),
		))
	}
	return rows
}

func alertRows(alerts []*entity.Product) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("PRODUCTOS BAJO STOCK MÍNIMO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 2,
			}),
		)),
	}
	for _, p := range alerts {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s %s de %s (faltan %s)",
				p.Name, formatQty(p.Stock), p.Unit, formatQty(p.MinStock), formatQty(p.MinStock.Sub(p.Stock)),
			), props.Text{Size: 8, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func belowMinimum(products []*entity.Product) []*entity.Product {
	var out []*entity.Product
	for _, p := range products {
		if p.BelowMinimum() {
			out = append(out, p)
		}
	}
	return out
}

// formatQty muestra hasta 3 decimales sin ceros de relleno. Ej: 12.500 → "12.5"
func formatQty(d decimal.Decimal) string {
	return d.Round(3).String()
}
