// Package storage implementa los destinos de los archivos exportados.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Almacen-api/internal/application/export"
)

var _ export.Sink = (*LocalSink)(nil)

// LocalSink escribe los archivos en un directorio del servidor.
type LocalSink struct {
	dir string
}

// NewLocalSink crea el directorio si no existe.
func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &LocalSink{dir: dir}, nil
}

// Save escribe data en dir/name (mediante un archivo temporal enlazado) y devuelve la ruta final.
// Nunca sobrescribe: si name ya existe devuelve un error que envuelve fs.ErrExist.
func (s *LocalSink) Save(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("storage: nombre de archivo inválido %q", name)
	}
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("storage: crear temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: cerrar %s: %w", name, err)
	}
	// link falla si el destino existe; el temporal se borra en el defer
	if err := os.Link(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("storage: publicar %s: %w", name, err)
	}
	return path, nil
}
