package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryStockDTO suma de stock por categoría.
type CategoryStockDTO struct {
	Category string          `json:"category"`
	Products int             `json:"products"`
	Stock    decimal.Decimal `json:"stock"`
}

// HazardStockDTO suma de stock por nivel de peligrosidad.
type HazardStockDTO struct {
	HazardLevel string          `json:"hazard_level"`
	Label       string          `json:"label"`
	Products    int             `json:"products"`
	Stock       decimal.Decimal `json:"stock"`
}

// StockAlertDTO producto bajo su stock mínimo.
type StockAlertDTO struct {
	ProductResponse
	Deficit decimal.Decimal `json:"deficit"` // MinStock - Stock
}

// InventorySummaryDTO resumen del inventario filtrado (pestaña "Inventario").
type InventorySummaryDTO struct {
	Products   int                `json:"products"`
	StockTotal decimal.Decimal    `json:"stock_total"`
	Categories int                `json:"categories"`
	Alerts     []StockAlertDTO    `json:"alerts"`
	ByCategory []CategoryStockDTO `json:"by_category"`
	ByHazard   []HazardStockDTO   `json:"by_hazard"`
}

// SupplierPayableDTO cuentas por pagar agrupadas por proveedor.
// Supplier vacío agrupa los ingresos sin proveedor.
type SupplierPayableDTO struct {
	Supplier      string          `json:"supplier"`
	Records       int             `json:"registros"`
	TotalQuantity decimal.Decimal `json:"cantidad_total"`
	TotalAmount   decimal.Decimal `json:"monto_total"`
}

// PayableDetailDTO ingreso adeudado con su monto calculado.
type PayableDetailDTO struct {
	MovementID  int64            `json:"movement_id"`
	Timestamp   time.Time        `json:"timestamp"`
	Supplier    *string          `json:"supplier"`
	ProductName string           `json:"product_name"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	Amount      decimal.Decimal  `json:"amount"`
	User        *string          `json:"user"`
	Notes       *string          `json:"notes"`
}

// PayablesReportDTO resumen y detalle de cuentas por pagar.
type PayablesReportDTO struct {
	Summary     []SupplierPayableDTO `json:"summary"`
	Details     []PayableDetailDTO   `json:"details"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
}

// HistoryTotalsDTO sumas del historial filtrado (pestaña "Historial").
type HistoryTotalsDTO struct {
	Movements    int             `json:"movements"`
	Receipts     decimal.Decimal `json:"receipts"`
	Consumptions decimal.Decimal `json:"consumptions"`
	Paid         decimal.Decimal `json:"paid"`
	Owed         decimal.Decimal `json:"owed"`
}
