package inventory

import "time"

// DayStart trunca t a las 00:00 de su fecha en la zona horaria de t.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayBounds convierte los límites de fecha inclusivos [from, to] en un intervalo
// semiabierto [desde, hasta) sobre instantes: la hora del día se ignora.
func DayBounds(from, to *time.Time) (start, end *time.Time) {
	if from != nil {
		s := DayStart(*from)
		start = &s
	}
	if to != nil {
		e := DayStart(*to).AddDate(0, 0, 1)
		end = &e
	}
	return start, end
}
