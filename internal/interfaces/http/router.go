package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/export"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
)

// RouterDeps dependencias para el router. Export puede ser nil (rutas de exportación no montadas).
type RouterDeps struct {
	Catalog     *catalog.UseCase
	Movements   *inventory.RecordMovementUseCase
	Reports     *reports.UseCase
	Export      *export.UseCase
	JWTSecret   string
	JWTRequired bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTRequired))

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Catalog)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Libro de movimientos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Movements)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)

	// Reportes
	rep := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	rep.Get("/inventory", reportHandler.Inventory)
	rep.Get("/categories", reportHandler.Categories)
	rep.Get("/hazards", reportHandler.Hazards)
	rep.Get("/alerts", reportHandler.Alerts)
	rep.Get("/payables", reportHandler.Payables)
	rep.Get("/history", reportHandler.History)

	// Exportaciones
	if deps.Export != nil {
		exports := api.Group("/exports")
		exportHandler := NewExportHandler(deps.Export)
		exports.Post("/products", exportHandler.Products)
		exports.Post("/movements", exportHandler.Movements)
		exports.Post("/inventory-pdf", exportHandler.InventoryPDF)
	}
}
