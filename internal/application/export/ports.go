package export

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Sink destino de los archivos exportados (directorio local, bucket MinIO).
// Save devuelve la ubicación final legible (ruta o URL del objeto).
type Sink interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// TableEncoder serializa una tabla con fila de encabezado a un archivo plano.
type TableEncoder interface {
	Encode(header []string, rows [][]string) ([]byte, error)
	ContentType() string
}

// InventoryPDFGenerator genera el reporte PDF del inventario (tabla + alertas de stock mínimo).
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}
