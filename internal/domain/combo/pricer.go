// Package combo calcula el precio de los combos y sus selecciones por defecto.
package combo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Price devuelve el precio de venta del combo.
//
//   - fixed: FixedPrice tal cual, sin importar las selecciones.
//   - calculated: Σ precio × cantidad de las selecciones, menos el descuento (porcentaje o valor
//     fijo, nunca por debajo de 0), redondeado a pesos enteros.
//
// No verifica que un sustituto cueste lo mismo que el producto por defecto: quien llama debe
// volver a cotizar después de sustituir.
func Price(c *entity.Combo, selections []entity.ComboSelection, prices map[string]decimal.Decimal) (decimal.Decimal, error) {
	if c == nil {
		return decimal.Zero, fmt.Errorf("%w: combo nulo", domain.ErrInvalidInput)
	}
	switch c.PriceType {
	case entity.ComboPriceFixed:
		return c.FixedPrice, nil
	case entity.ComboPriceCalculated:
	default:
		return decimal.Zero, fmt.Errorf("%w: tipo de precio %q", domain.ErrInvalidInput, c.PriceType)
	}

	sum := decimal.Zero
	for _, s := range selections {
		p, ok := prices[s.ProductID]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: producto %s sin precio", domain.ErrMissingReference, s.ProductID)
		}
		sum = sum.Add(p.Mul(decimal.NewFromInt(s.Quantity)))
	}

	switch c.DiscountType {
	case entity.ComboDiscountPercentage:
		sum = sum.Mul(decimal.NewFromInt(1).Sub(c.DiscountValue.Div(hundred)))
	case entity.ComboDiscountFixed:
		sum = sum.Sub(c.DiscountValue)
	}
	if sum.IsNegative() {
		sum = decimal.Zero
	}
	return sum.Round(0), nil
}

// DefaultSelections emite slot.Quantity copias del producto por defecto de cada casilla.
func DefaultSelections(c *entity.Combo) []entity.ComboSelection {
	if c == nil {
		return nil
	}
	var out []entity.ComboSelection
	for _, slot := range c.Slots {
		for i := int64(0); i < slot.Quantity; i++ {
			out = append(out, entity.ComboSelection{ProductID: slot.DefaultProductID, Quantity: 1})
		}
	}
	return out
}

// ValidateSelections asigna las selecciones a las casillas: cada unidad seleccionada debe caber
// en una casilla que la admita (las no dinámicas solo admiten su producto por defecto) y el total
// de unidades debe llenar exactamente todas las casillas. La asignación es un emparejamiento
// bipartito entre unidades de casilla y unidades seleccionadas (caminos de aumento), así que el
// resultado no depende del orden de las selecciones.
func ValidateSelections(c *entity.Combo, selections []entity.ComboSelection) error {
	if c == nil {
		return fmt.Errorf("%w: combo nulo", domain.ErrInvalidInput)
	}
	var holes []int // casilla de cada unidad
	for i, s := range c.Slots {
		for k := int64(0); k < s.Quantity; k++ {
			holes = append(holes, i)
		}
	}
	capacity := int64(len(holes))

	var selected int64
	for _, sel := range selections {
		if sel.Quantity <= 0 {
			return fmt.Errorf("%w: cantidad inválida para %s", domain.ErrInvalidInput, sel.ProductID)
		}
		selected += sel.Quantity
	}
	if selected > capacity {
		return fmt.Errorf("%w: el combo requiere %d productos y se eligieron %d", domain.ErrInvalidInput, capacity, selected)
	}
	units := make([]string, 0, selected)
	for _, sel := range selections {
		for k := int64(0); k < sel.Quantity; k++ {
			units = append(units, sel.ProductID)
		}
	}

	owner := make([]int, len(holes)) // unidad asignada a cada hueco; -1 libre
	for h := range owner {
		owner[h] = -1
	}
	var place func(u int, seen []bool) bool
	place = func(u int, seen []bool) bool {
		for h, slot := range holes {
			if seen[h] || !c.Slots[slot].Allows(units[u]) {
				continue
			}
			seen[h] = true
			if owner[h] < 0 || place(owner[h], seen) {
				owner[h] = u
				return true
			}
		}
		return false
	}
	for u := range units {
		if !place(u, make([]bool, len(holes))) {
			return fmt.Errorf("%w: el producto %s no cabe en ninguna casilla del combo", domain.ErrInvalidInput, units[u])
		}
	}
	if selected != capacity {
		return fmt.Errorf("%w: el combo requiere %d productos y se eligieron %d", domain.ErrInvalidInput, capacity, selected)
	}
	return nil
}
