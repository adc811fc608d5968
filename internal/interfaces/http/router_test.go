package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/export"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
	csvenc "github.com/jhoicas/Almacen-api/internal/infrastructure/csv"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestApp arma la API completa sobre el driver en memoria.
func newTestApp(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	products := store.Products()
	movements := store.Movements()

	sink, err := storage.NewLocalSink(t.TempDir())
	require.NoError(t, err)
	enc, err := csvenc.NewEncoder("utf-8")
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:   catalog.NewUseCase(products),
		Movements: inventory.NewRecordMovementUseCase(store, movements),
		Reports:   reports.NewUseCase(products, movements),
		Export:    export.NewUseCase(products, movements, sink, enc, pdf.NewInventoryReport("")),
		JWTSecret: jwtSecret,
	})
	return app
}

// call lanza la petición y, si out no es nil, decodifica la respuesta JSON.
func call(t *testing.T, app *fiber.App, method, path string, body any, out any, headers ...string) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out), "%s %s", method, path)
	}
	return resp.StatusCode
}

func createProduct(t *testing.T, app *fiber.App, name, hazard, unit string, minStock int64) int64 {
	t.Helper()
	minimum := decimal.NewFromInt(minStock)
	var out dto.ProductResponse
	status := call(t, app, http.MethodPost, "/api/products", dto.ProductRequest{
		Name: name, ActiveIngredient: "IA " + name, Category: "Fungicida",
		HazardLevel: hazard, Unit: unit, MinStock: &minimum,
	}, &out)
	require.Equal(t, http.StatusCreated, status)
	return out.ID
}

func record(t *testing.T, app *fiber.App, body map[string]any) (int, dto.RecordMovementResponse, dto.ErrorResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	var ok dto.RecordMovementResponse
	var fail dto.ErrorResponse
	if resp.StatusCode == http.StatusCreated {
		require.NoError(t, json.Unmarshal(data, &ok))
	} else {
		require.NoError(t, json.Unmarshal(data, &fail))
	}
	return resp.StatusCode, ok, fail
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios del libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_IngresoConsumoYAlerta(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Mancozeb 80 WP", "yellow", "kg", 10)

	status, out, _ := record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 50})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, dec("50").Equal(out.ProductStock))

	status, out, _ = record(t, app, map[string]any{"product_id": id, "kind": "consumption", "quantity": 45})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, dec("5").Equal(out.ProductStock))

	var alerts []dto.StockAlertDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/reports/alerts", nil, &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "Mancozeb 80 WP", alerts[0].Name)
	assert.True(t, dec("5").Equal(alerts[0].Deficit))
}

func TestMovimientos_ConsumoInsuficienteNoCambiaNada(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Mancozeb 80 WP", "yellow", "kg", 10)
	record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 50})
	record(t, app, map[string]any{"product_id": id, "kind": "consumption", "quantity": 45})

	status, _, fail := record(t, app, map[string]any{"product_id": id, "kind": "consumption", "quantity": 100})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", fail.Code)
	assert.Contains(t, fail.Message, "solicitado 100")
	assert.Contains(t, fail.Message, "disponible 5")

	var p dto.ProductResponse
	call(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &p)
	assert.True(t, dec("5").Equal(p.Stock))

	var list dto.MovementListResponse
	call(t, app, http.MethodGet, fmt.Sprintf("/api/movements?product_id=%d", id), nil, &list)
	assert.Equal(t, 2, list.Total)
}

func TestMovimientos_AjusteEsAbsoluto(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Cobre", "blue", "kg", 0)
	record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 5})

	status, out, _ := record(t, app, map[string]any{"product_id": id, "kind": "adjustment", "quantity": 7})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, dec("7").Equal(out.ProductStock))
}

func TestMovimientos_Validaciones(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Cobre", "blue", "kg", 0)

	status, _, fail := record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", fail.Code)
	assert.Equal(t, "quantity", fail.Field)

	status, _, fail = record(t, app, map[string]any{"product_id": id, "kind": "transfer", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "kind", fail.Field)

	status, _, fail = record(t, app, map[string]any{"product_id": 999, "kind": "receipt", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", fail.Code)

	var list dto.MovementListResponse
	call(t, app, http.MethodGet, "/api/movements", nil, &list)
	assert.Equal(t, 0, list.Total, "ningún movimiento rechazado debe persistir")
}

func TestMovimientos_NormalizaCampos(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Cobre", "blue", "kg", 0)

	status, out, _ := record(t, app, map[string]any{
		"product_id": id, "kind": "ingreso", "quantity": "2.5", "date": "2025-03-01",
		"user": "  ", "supplier": "  AgroX ", "payment_status": "debe", "destination": "Lote 4",
	})
	require.Equal(t, http.StatusCreated, status)
	m := out.Movement
	assert.Equal(t, "receipt", m.Kind)
	assert.Nil(t, m.User, "texto en blanco se guarda como ausente")
	require.NotNil(t, m.Supplier)
	assert.Equal(t, "AgroX", *m.Supplier)
	require.NotNil(t, m.PaymentStatus)
	assert.Equal(t, "owed", *m.PaymentStatus)
	assert.Nil(t, m.Destination, "el destino solo aplica a consumos")
	assert.Equal(t, "2025-03-01", m.Timestamp.Format("2006-01-02"))
}

func TestMovimientos_FiltroPorFechaInclusivo(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Cobre", "blue", "kg", 0)
	for _, d := range []string{"2025-03-01", "2025-03-02T22:45:00Z", "2025-03-05"} {
		status, _, _ := record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 1, "date": d})
		require.Equal(t, http.StatusCreated, status)
	}

	var list dto.MovementListResponse
	call(t, app, http.MethodGet, "/api/movements?from=2025-03-01&to=2025-03-04", nil, &list)
	assert.Equal(t, 2, list.Total)

	status := call(t, app, http.MethodGet, "/api/movements?from=01/03/2025", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes_CuentasPorPagar(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Abamectina", "red", "L", 0)
	record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 10, "unit_cost": 5,
		"supplier": "AgroX", "payment_status": "owed"})
	record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 20, "unit_cost": 3,
		"supplier": "AgroX", "payment_status": "owed"})
	record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 4, "unit_cost": 100,
		"supplier": "AgroX", "payment_status": "paid"})

	var out dto.PayablesReportDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/reports/payables", nil, &out))
	require.Len(t, out.Summary, 1)
	s := out.Summary[0]
	assert.Equal(t, "AgroX", s.Supplier)
	assert.Equal(t, 2, s.Records)
	assert.True(t, dec("30").Equal(s.TotalQuantity))
	assert.True(t, dec("110").Equal(s.TotalAmount))
	assert.Len(t, out.Details, 2)

	var hist dto.HistoryTotalsDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/reports/history", nil, &hist))
	assert.Equal(t, 3, hist.Movements)
	assert.True(t, dec("34").Equal(hist.Receipts))
	assert.True(t, dec("400").Equal(hist.Paid))
	assert.True(t, dec("110").Equal(hist.Owed))
}

func TestReportes_InventarioPorCategoriaYPeligrosidad(t *testing.T) {
	app := newTestApp(t, "")
	a := createProduct(t, app, "Abamectina", "red", "L", 0)
	b := createProduct(t, app, "Cobre", "blue", "kg", 20)
	record(t, app, map[string]any{"product_id": a, "kind": "receipt", "quantity": 8})
	record(t, app, map[string]any{"product_id": b, "kind": "receipt", "quantity": 12})

	var out dto.InventorySummaryDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/reports/inventory", nil, &out))
	assert.Equal(t, 2, out.Products)
	assert.True(t, dec("20").Equal(out.StockTotal))
	assert.Equal(t, 1, out.Categories)
	assert.Len(t, out.Alerts, 1)
	require.Len(t, out.ByHazard, 2)
	assert.Equal(t, "red", out.ByHazard[0].HazardLevel)

	var hazards []dto.HazardStockDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/reports/hazards?hazard=blue", nil, &hazards))
	require.Len(t, hazards, 1)
	assert.True(t, dec("12").Equal(hazards[0].Stock))

	status := call(t, app, http.MethodGet, "/api/reports/inventory?hazard=purple", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductos_ListadoOrdenadoYFiltrado(t *testing.T) {
	app := newTestApp(t, "")
	createProduct(t, app, "Mancozeb 80 WP", "yellow", "kg", 0)
	createProduct(t, app, "Abamectina", "red", "L", 0)
	createProduct(t, app, "Glifosato", "green", "L", 0)

	var list dto.ProductListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products", nil, &list))
	require.Equal(t, 3, list.Total)
	assert.Equal(t, "Abamectina", list.Items[0].Name)
	assert.Equal(t, "Glifosato", list.Items[1].Name)
	assert.Equal(t, "Mancozeb 80 WP", list.Items[2].Name)

	call(t, app, http.MethodGet, "/api/products?hazard=red,yellow&q=MANCO", nil, &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Amarillo (Moderado)", list.Items[0].HazardLabel)
}

func TestProductos_CrearValidaYActualizaSinTocarStock(t *testing.T) {
	app := newTestApp(t, "")

	var fail dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/products", dto.ProductRequest{
		Name: "  ", ActiveIngredient: "x", Category: "y", HazardLevel: "red",
	}, &fail)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name", fail.Field)

	id := createProduct(t, app, "Cobre", "blue", "", 0)
	record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 3})

	var p dto.ProductResponse
	status = call(t, app, http.MethodPut, fmt.Sprintf("/api/products/%d", id), dto.ProductRequest{
		Name: "Cobre 50", ActiveIngredient: "Oxicloruro", Category: "Fungicida", HazardLevel: "verde",
	}, &p)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cobre 50", p.Name)
	assert.Equal(t, "green", p.HazardLevel)
	assert.Equal(t, "L", p.Unit)
	assert.True(t, dec("3").Equal(p.Stock))

	status = call(t, app, http.MethodPut, "/api/products/999", dto.ProductRequest{
		Name: "X", ActiveIngredient: "X", Category: "X", HazardLevel: "red",
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProductos_EliminarBorraMovimientos(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Cobre", "blue", "kg", 0)
	record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 3})

	path := fmt.Sprintf("/api/products/%d", id)
	assert.Equal(t, http.StatusNoContent, call(t, app, http.MethodDelete, path, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodDelete, path, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, path, nil, nil))

	var list dto.MovementListResponse
	call(t, app, http.MethodGet, fmt.Sprintf("/api/movements?product_id=%d", id), nil, &list)
	assert.Equal(t, 0, list.Total)

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/products/abc", nil, nil))
}

func TestProductos_Categorias(t *testing.T) {
	app := newTestApp(t, "")
	var cats []string
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products/categories", nil, &cats))
	assert.Empty(t, cats)

	createProduct(t, app, "Cobre", "blue", "kg", 0)
	call(t, app, http.MethodGet, "/api/products/categories", nil, &cats)
	assert.Equal(t, []string{"Fungicida"}, cats)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operador autenticado y exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_OperadorDelTokenComoUsuario(t *testing.T) {
	app := newTestApp(t, testJWTSecret)
	id := createProduct(t, app, "Cobre", "blue", "kg", 0)

	var out dto.RecordMovementResponse
	status := call(t, app, http.MethodPost, "/api/movements",
		map[string]any{"product_id": id, "kind": "receipt", "quantity": 1}, &out,
		"Authorization", bearer(t))
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, out.Movement.User)
	assert.Equal(t, testOperator, *out.Movement.User)

	// un usuario explícito tiene prioridad sobre el token
	status = call(t, app, http.MethodPost, "/api/movements",
		map[string]any{"product_id": id, "kind": "receipt", "quantity": 1, "user": "Luis"}, &out,
		"Authorization", bearer(t))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Luis", *out.Movement.User)
}

func TestExportaciones(t *testing.T) {
	app := newTestApp(t, "")
	id := createProduct(t, app, "Cobre", "blue", "kg", 5)
	record(t, app, map[string]any{"product_id": id, "kind": "receipt", "quantity": 3})

	var out dto.ExportResultDTO
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/exports/products", nil, &out))
	assert.Equal(t, 1, out.Rows)
	assert.Regexp(t, `^productos_\d{8}_\d{6}_\d{3}_[0-9a-f]{8}\.csv$`, out.File)
	data, err := os.ReadFile(out.Location)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,name,active_ingredient,category,hazard_level,unit,supplier,min_stock,stock\n")

	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/exports/movements?kind=receipt", nil, &out))
	assert.Equal(t, 1, out.Rows)
	assert.Regexp(t, `^movimientos_`, out.File)

	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/exports/inventory-pdf", nil, &out))
	assert.Equal(t, "pdf", out.Format)
	assert.FileExists(t, out.Location)
}
