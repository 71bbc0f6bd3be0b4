package recipe

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// Materials índice de materia prima por ID.
type Materials map[string]*entity.RawMaterial

// AvailableUnits devuelve las unidades vendibles garantizadas con las existencias actuales:
// el mínimo de floor(stock / cantidadEfectiva) entre los enlaces que consumen algo, usando
// MinQuantity como base de los variables.
//
// Falla cerrado: sin enlaces, sin enlaces que restrinjan o con referencias faltantes devuelve 0.
// En el último caso el error (domain.ErrMissingReference) solo sirve para registrar el problema.
func AvailableUnits(g *Graph, materials Materials) (int64, error) {
	if g == nil || g.Empty() {
		return 0, nil
	}
	reqs, err := g.Requirements(BaselineMinimum, nil)
	if err != nil {
		return 0, err
	}

	var (
		minUnits    decimal.Decimal
		constrained bool
	)
	for _, r := range reqs {
		m, ok := materials[r.Link.RawMaterialID]
		if !ok || m == nil {
			return 0, fmt.Errorf("%w: materia prima %s", domain.ErrMissingReference, r.Link.RawMaterialID)
		}
		if !r.Quantity.IsPositive() {
			continue
		}
		units := m.Stock.Div(r.Quantity).Floor()
		if !constrained || units.LessThan(minUnits) {
			minUnits = units
			constrained = true
		}
	}
	if !constrained || minUnits.IsNegative() {
		return 0, nil
	}
	return minUnits.IntPart(), nil
}

// ProductionCost suma CostPerUnit × cantidadEfectiva usando DefaultQuantity como base de los
// variables. Los enlaces sin materia prima o con padre inexistente no suman y se informan con
// domain.ErrMissingReference; el costo devuelto incluye todo lo que sí se pudo resolver.
func ProductionCost(g *Graph, materials Materials) (decimal.Decimal, error) {
	if g == nil || g.Empty() {
		return decimal.Zero, nil
	}
	reqs, reqErr := g.Requirements(BaselineDefault, nil)

	total := decimal.Zero
	var missing []error
	if reqErr != nil {
		missing = append(missing, reqErr)
	}
	for _, r := range reqs {
		m, ok := materials[r.Link.RawMaterialID]
		if !ok || m == nil {
			missing = append(missing, fmt.Errorf("%w: materia prima %s", domain.ErrMissingReference, r.Link.RawMaterialID))
			continue
		}
		total = total.Add(m.CostPerUnit.Mul(r.Quantity))
	}
	return total, errors.Join(missing...)
}

// Consumption calcula la materia prima consumida por UNA unidad vendida con las elecciones del
// cliente (raw_material_id del enlace variable -> cantidad). Sin elección se usa DefaultQuantity.
// Las elecciones deben estar dentro de [MinQuantity, MaxQuantity] y referirse a enlaces variables.
func Consumption(g *Graph, choices map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if err := ValidateChoices(g, choices); err != nil {
		return nil, err
	}
	reqs, err := g.Requirements(BaselineDefault, choices)
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(reqs))
	for _, r := range reqs {
		if !r.Quantity.IsPositive() {
			continue
		}
		out[r.Link.RawMaterialID] = out[r.Link.RawMaterialID].Add(r.Quantity)
	}
	return out, nil
}

// ExtraCharge cobra cada unidad elegida por encima de DefaultQuantity a PricePerExtraUnit.
func ExtraCharge(g *Graph, choices map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for id, chosen := range choices {
		l, ok := g.Variable(id)
		if !ok {
			continue
		}
		extra := chosen.Sub(l.DefaultQuantity)
		if extra.IsPositive() {
			total = total.Add(extra.Mul(l.PricePerExtraUnit))
		}
	}
	return total
}

// ValidateChoices verifica que cada elección corresponda a un enlace variable y esté en rango.
func ValidateChoices(g *Graph, choices map[string]decimal.Decimal) error {
	for id, chosen := range choices {
		l, ok := g.Variable(id)
		if !ok {
			return fmt.Errorf("%w: %s no es un ingrediente variable", domain.ErrInvalidInput, id)
		}
		if chosen.LessThan(l.MinQuantity) || chosen.GreaterThan(l.MaxQuantity) {
			return fmt.Errorf("%w: %s debe estar entre %s y %s", domain.ErrInvalidInput,
				id, l.MinQuantity.String(), l.MaxQuantity.String())
		}
	}
	return nil
}
