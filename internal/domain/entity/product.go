package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del menú.
// ProductionCost es derivado (caché) y lo mantiene el resolvedor de costos; Stock solo
// tiene sentido cuando el producto no se arma con materia prima.
type Product struct {
	ID               string
	Name             string
	Category         string
	Price            decimal.Decimal
	ProductionCost   decimal.Decimal
	UsesRawMaterials bool
	Stock            int64
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Margin devuelve Price - ProductionCost.
func (p *Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.ProductionCost)
}
