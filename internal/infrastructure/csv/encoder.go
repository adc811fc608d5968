// Package csv codifica tablas de exportación como texto delimitado.
package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Almacen-api/internal/application/export"
)

var _ export.TableEncoder = (*Encoder)(nil)

// Encoder escribe CSV con fila de encabezado, en UTF-8 o Latin-1 (Windows-1252).
// Latin-1 es la codificación que abren sin configurar las hojas de cálculo en español.
type Encoder struct {
	latin1 bool
}

// NewEncoder acepta "utf-8" (por defecto) o "latin1"/"cp1252".
func NewEncoder(encoding string) (*Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return &Encoder{}, nil
	case "latin1", "latin-1", "cp1252", "windows-1252":
		return &Encoder{latin1: true}, nil
	}
	return nil, fmt.Errorf("csv: codificación no soportada %q", encoding)
}

// Encode serializa header + rows. En Latin-1, los caracteres sin representación
// se reemplazan por el byte de sustitución (0x1A) en lugar de abortar la exportación.
func (e *Encoder) Encode(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := stdcsv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	if !e.latin1 {
		return buf.Bytes(), nil
	}
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, _, err := transform.Bytes(enc, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("csv: convertir a latin1: %w", err)
	}
	return out, nil
}

// ContentType tipo MIME con el charset efectivo.
func (e *Encoder) ContentType() string {
	if e.latin1 {
		return "text/csv; charset=windows-1252"
	}
	return "text/csv; charset=utf-8"
}
