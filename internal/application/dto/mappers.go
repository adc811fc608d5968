package dto

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// FromProduct convierte la entidad en su representación de salida.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		ActiveIngredient: p.ActiveIngredient,
		Category:         p.Category,
		HazardLevel:      string(p.HazardLevel),
		HazardLabel:      p.HazardLevel.Label(),
		Unit:             p.Unit,
		Supplier:         p.Supplier,
		MinStock:         p.MinStock,
		Stock:            p.Stock,
		BelowMinimum:     p.BelowMinimum(),
	}
}

// FromMovement convierte un movimiento sin datos del producto.
func FromMovement(m *entity.Movement) MovementResponse {
	out := MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Timestamp:   m.OccurredAt,
		Kind:        string(m.Kind),
		Quantity:    m.Quantity,
		User:        m.User,
		Notes:       m.Notes,
		Supplier:    m.Supplier,
		UnitCost:    m.UnitCost,
		Destination: m.Destination,
	}
	if m.PaymentStatus != nil {
		s := string(*m.PaymentStatus)
		out.PaymentStatus = &s
	}
	return out
}

// FromMovementView convierte un movimiento unido a su producto.
func FromMovementView(v *entity.MovementView) MovementResponse {
	out := FromMovement(&v.Movement)
	out.ProductName = v.ProductName
	out.ActiveIngredient = v.ActiveIngredient
	out.Category = v.Category
	out.HazardLevel = string(v.HazardLevel)
	out.Unit = v.Unit
	return out
}
