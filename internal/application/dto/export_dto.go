package dto

import "time"

// ExportResultDTO archivo generado por una exportación.
type ExportResultDTO struct {
	File        string    `json:"file"`
	Location    string    `json:"location"`
	Format      string    `json:"format"`
	Rows        int       `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}
