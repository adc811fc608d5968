package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/movements.
// Date acepta "YYYY-MM-DD" o RFC 3339; vacío = ahora.
type RecordMovementRequest struct {
	ProductID     int64            `json:"product_id"`
	Kind          string           `json:"kind"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Date          string           `json:"date,omitempty"`
	User          *string          `json:"user,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Supplier      *string          `json:"supplier,omitempty"`
	PaymentStatus *string          `json:"payment_status,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	Destination   *string          `json:"destination,omitempty"`
}

// MovementFilterRequest filtros del historial. Fechas "YYYY-MM-DD"; ProductID 0 = todos.
type MovementFilterRequest struct {
	From          string `query:"from"`
	To            string `query:"to"`
	ProductID     int64  `query:"product_id"`
	Kind          string `query:"kind"`
	PaymentStatus string `query:"payment_status"`
	Supplier      string `query:"supplier"`
}

// MovementResponse movimiento con los datos de presentación del producto.
type MovementResponse struct {
	ID               int64            `json:"id"`
	ProductID        int64            `json:"product_id"`
	ProductName      string           `json:"product_name,omitempty"`
	ActiveIngredient string           `json:"active_ingredient,omitempty"`
	Category         string           `json:"category,omitempty"`
	HazardLevel      string           `json:"hazard_level,omitempty"`
	Unit             string           `json:"unit,omitempty"`
	Timestamp        time.Time        `json:"timestamp"`
	Kind             string           `json:"kind"`
	Quantity         decimal.Decimal  `json:"quantity"`
	User             *string          `json:"user"`
	Notes            *string          `json:"notes"`
	Supplier         *string          `json:"supplier"`
	PaymentStatus    *string          `json:"payment_status"`
	UnitCost         *decimal.Decimal `json:"unit_cost"`
	Destination      *string          `json:"destination"`
}

// RecordMovementResponse movimiento registrado y stock resultante del producto.
type RecordMovementResponse struct {
	Movement     MovementResponse `json:"movement"`
	ProductStock decimal.Decimal  `json:"product_stock"`
}

// MovementListResponse historial filtrado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
