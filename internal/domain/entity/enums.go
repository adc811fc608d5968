package entity

import "strings"

// HazardLevel clasificación toxicológica del producto (banda de color de la etiqueta).
type HazardLevel string

const (
	HazardRed    HazardLevel = "red"    // alto
	HazardYellow HazardLevel = "yellow" // moderado
	HazardBlue   HazardLevel = "blue"   // cuidado
	HazardGreen  HazardLevel = "green"  // bajo
)

// HazardLevels orden de presentación, de mayor a menor peligrosidad.
var HazardLevels = []HazardLevel{HazardRed, HazardYellow, HazardBlue, HazardGreen}

var hazardLabels = map[HazardLevel]string{
	HazardRed:    "Rojo (Alto)",
	HazardYellow: "Amarillo (Moderado)",
	HazardBlue:   "Azul (Cuidado)",
	HazardGreen:  "Verde (Bajo)",
}

// alias en español aceptados en la entrada (valores de la versión anterior de la base).
var hazardAliases = map[string]HazardLevel{
	"rojo":     HazardRed,
	"amarillo": HazardYellow,
	"azul":     HazardBlue,
	"verde":    HazardGreen,
}

// Valid indica si el nivel pertenece a la enumeración fija.
func (h HazardLevel) Valid() bool {
	_, ok := hazardLabels[h]
	return ok
}

// Label devuelve la etiqueta legible; el valor crudo si no es válido.
func (h HazardLevel) Label() string {
	if l, ok := hazardLabels[h]; ok {
		return l
	}
	return string(h)
}

// ParseHazardLevel normaliza el texto recibido (mayúsculas, espacios, alias en español).
func ParseHazardLevel(s string) (HazardLevel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if h, ok := hazardAliases[s]; ok {
		return h, true
	}
	h := HazardLevel(s)
	return h, h.Valid()
}

// Unidades de medida admitidas.
const (
	UnitLiter      = "L"
	UnitMilliliter = "mL"
	UnitKilogram   = "kg"
	UnitGram       = "g"
	UnitPiece      = "u"

	DefaultUnit = UnitLiter
)

// Units lista fija de unidades, en el orden en que se ofrecen al usuario.
var Units = []string{UnitLiter, UnitMilliliter, UnitKilogram, UnitGram, UnitPiece}

// ValidUnit indica si u pertenece a la lista fija (sensible a mayúsculas: mL ≠ ml).
func ValidUnit(u string) bool {
	for _, x := range Units {
		if x == u {
			return true
		}
	}
	return false
}

// MovementKind tipo de movimiento del libro de almacén.
type MovementKind string

const (
	MovementReceipt     MovementKind = "receipt"     // ingreso / compra
	MovementConsumption MovementKind = "consumption" // consumo en campo
	MovementAdjustment  MovementKind = "adjustment"  // ajuste: fija el stock a un valor absoluto
)

// MovementKinds todos los tipos válidos.
var MovementKinds = []MovementKind{MovementReceipt, MovementConsumption, MovementAdjustment}

var kindAliases = map[string]MovementKind{
	"ingreso": MovementReceipt,
	"entrada": MovementReceipt,
	"consumo": MovementConsumption,
	"salida":  MovementConsumption,
	"ajuste":  MovementAdjustment,
}

// Valid indica si el tipo pertenece a la enumeración.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementReceipt, MovementConsumption, MovementAdjustment:
		return true
	}
	return false
}

// ParseMovementKind normaliza el tipo recibido, aceptando los nombres en español.
func ParseMovementKind(s string) (MovementKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := kindAliases[s]; ok {
		return k, true
	}
	k := MovementKind(s)
	return k, k.Valid()
}

// PaymentStatus estado de pago de un ingreso.
type PaymentStatus string

const (
	PaymentPaid PaymentStatus = "paid" // pagado
	PaymentOwed PaymentStatus = "owed" // debe
)

// Valid indica si el estado pertenece a la enumeración.
func (p PaymentStatus) Valid() bool {
	return p == PaymentPaid || p == PaymentOwed
}

// ParsePaymentStatus normaliza el estado recibido ("pagado"/"debe" también se aceptan).
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid", "pagado":
		return PaymentPaid, true
	case "owed", "debe":
		return PaymentOwed, true
	}
	return PaymentStatus(s), false
}
