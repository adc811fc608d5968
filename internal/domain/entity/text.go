package entity

import "strings"

// OptionalText recorta espacios; un texto vacío se trata como ausente.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
