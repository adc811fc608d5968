// Comando export: vuelca catálogo, historial y reporte PDF al destino configurado y termina.
//
// Uso:
//
//	go run ./cmd/export                       # todo
//	go run ./cmd/export -only products        # products | movements | pdf
//	go run ./cmd/export -from 2026-01-01 -to 2026-01-31
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/bootstrap"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	only := flag.String("only", "", "exportar solo: products, movements o pdf")
	from := flag.String("from", "", "historial desde (YYYY-MM-DD)")
	to := flag.String("to", "", "historial hasta (YYYY-MM-DD, inclusive)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "almacen-export"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	application, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicialización")
	}
	defer application.Close()

	jobs := []struct {
		name string
		run  func() (*dto.ExportResultDTO, error)
	}{
		{"products", func() (*dto.ExportResultDTO, error) {
			return application.Export.ExportProducts(ctx, dto.ProductFilterRequest{})
		}},
		{"movements", func() (*dto.ExportResultDTO, error) {
			return application.Export.ExportMovements(ctx, dto.MovementFilterRequest{From: *from, To: *to})
		}},
		{"pdf", func() (*dto.ExportResultDTO, error) {
			return application.Export.ExportInventoryPDF(ctx, dto.ProductFilterRequest{})
		}},
	}

	failed := false
	for _, job := range jobs {
		if *only != "" && *only != job.name {
			continue
		}
		out, err := job.run()
		if err != nil {
			log.Error().Err(err).Str("dataset", job.name).Msg("exportación fallida")
			failed = true
			continue
		}
		log.Info().
			Str("dataset", job.name).
			Str("location", out.Location).
			Int("rows", out.Rows).
			Msg("exportación generada")
	}
	if failed {
		application.Close()
		os.Exit(1)
	}
}
