package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de precio y descuento de combos.
const (
	ComboPriceFixed      = "fixed"
	ComboPriceCalculated = "calculated"

	ComboDiscountPercentage = "percentage"
	ComboDiscountFixed      = "fixed"
)

// Combo agrupa productos en casillas (slots) con precio fijo o calculado con descuento.
type Combo struct {
	ID            string
	Name          string
	PriceType     string
	FixedPrice    decimal.Decimal
	DiscountType  string // vacío = sin descuento
	DiscountValue decimal.Decimal
	Slots         []ComboSlot
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComboSlot es una casilla del combo. Las casillas dinámicas permiten sustituir el
// producto por defecto por cualquiera de ProductIDs al momento de la venta.
type ComboSlot struct {
	ProductIDs       []string
	DefaultProductID string
	Quantity         int64
	IsDynamic        bool
}

// Allows indica si productID es una opción válida para la casilla.
func (s ComboSlot) Allows(productID string) bool {
	if productID == s.DefaultProductID {
		return true
	}
	if !s.IsDynamic {
		return false
	}
	for _, id := range s.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// ComboSelection es un producto elegido para un combo.
type ComboSelection struct {
	ProductID string
	Quantity  int64
}
