// Package bootstrap arma los casos de uso a partir de la configuración:
// driver de almacenamiento, destino de exportación, codificador CSV y reporte PDF.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/export"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/csv"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/storage"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// App casos de uso listos para montar en HTTP o usar desde la línea de comandos.
type App struct {
	Catalog   *catalog.UseCase
	Movements *inventory.RecordMovementUseCase
	Reports   *reports.UseCase
	Export    *export.UseCase

	close func()
}

// Close libera el pool de conexiones, si lo hay.
func (a *App) Close() {
	if a.close != nil {
		a.close()
		a.close = nil
	}
}

// New construye la aplicación según cfg. Con el driver postgres aplica el esquema al arrancar.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	var (
		productRepo  repository.ProductRepository
		movementRepo repository.MovementRepository
		txRunner     inventory.TxRunner
		closeFn      func()
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		productRepo, movementRepo, txRunner = store.Products(), store.Movements(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		productRepo = postgres.NewProductRepository(pool)
		movementRepo = postgres.NewMovementRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
		closeFn = pool.Close
		log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("PostgreSQL listo")
	}

	sink, err := newSink(ctx, cfg)
	if err != nil {
		if closeFn != nil {
			closeFn()
		}
		return nil, err
	}
	encoder, err := csv.NewEncoder(cfg.Export.Encoding)
	if err != nil {
		if closeFn != nil {
			closeFn()
		}
		return nil, err
	}

	return &App{
		Catalog:   catalog.NewUseCase(productRepo),
		Movements: inventory.NewRecordMovementUseCase(txRunner, movementRepo),
		Reports:   reports.NewUseCase(productRepo, movementRepo),
		Export:    export.NewUseCase(productRepo, movementRepo, sink, encoder, pdf.NewInventoryReport("")),
		close:     closeFn,
	}, nil
}

func newSink(ctx context.Context, cfg *config.Config) (export.Sink, error) {
	if cfg.Export.Sink == config.SinkMinIO {
		return storage.NewMinIOSink(ctx, cfg.MinIO)
	}
	return storage.NewLocalSink(cfg.Export.Dir)
}
