// Package recipe modela la receta de un producto como un grafo pequeño de enlaces a materia
// prima (fijos, variables y vinculados a un variable, con profundidad máxima 1) y resuelve
// sobre él disponibilidad, costo de producción y consumo por venta.
package recipe

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// Baseline cantidad base usada para los enlaces variables.
type Baseline int

const (
	// BaselineMinimum usa MinQuantity: el piso garantizado para disponibilidad.
	BaselineMinimum Baseline = iota
	// BaselineDefault usa DefaultQuantity: la venta típica, para costeo.
	BaselineDefault
)

// Requirement cantidad efectiva de materia prima que consume un enlace por unidad vendida.
type Requirement struct {
	Link     entity.RecipeLink
	Quantity decimal.Decimal
}

// Graph receta de un producto. Nodos variables → nodos vinculados, profundidad ≤ 1.
type Graph struct {
	links    []entity.RecipeLink
	variable map[string]entity.RecipeLink // raw_material_id -> enlace variable
}

// NewGraph construye el grafo a partir de los enlaces del producto.
func NewGraph(links []*entity.RecipeLink) *Graph {
	g := &Graph{variable: map[string]entity.RecipeLink{}}
	for _, l := range links {
		if l == nil {
			continue
		}
		g.links = append(g.links, *l)
		if l.IsVariable && !l.IsLinked() {
			if _, dup := g.variable[l.RawMaterialID]; !dup {
				g.variable[l.RawMaterialID] = *l
			}
		}
	}
	return g
}

// Empty indica si la receta no tiene enlaces.
func (g *Graph) Empty() bool {
	return len(g.links) == 0
}

// Links devuelve una copia de los enlaces.
func (g *Graph) Links() []entity.RecipeLink {
	return append([]entity.RecipeLink(nil), g.links...)
}

// MaterialIDs devuelve los raw_material_id referenciados, sin repetir.
func (g *Graph) MaterialIDs() []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, l := range g.links {
		if _, ok := seen[l.RawMaterialID]; ok {
			continue
		}
		seen[l.RawMaterialID] = struct{}{}
		ids = append(ids, l.RawMaterialID)
	}
	return ids
}

// Variable devuelve el enlace variable de la materia prima indicada.
func (g *Graph) Variable(rawMaterialID string) (entity.RecipeLink, bool) {
	l, ok := g.variable[rawMaterialID]
	return l, ok
}

// Validate revisa la receta al momento de editar el catálogo. Las reglas de vinculación se
// hacen cumplir aquí y no al resolver.
func (g *Graph) Validate() error {
	seenVariable := map[string]struct{}{}
	for _, l := range g.links {
		if l.RawMaterialID == "" {
			return fmt.Errorf("%w: enlace sin materia prima", domain.ErrInvalidInput)
		}
		if l.Quantity.IsNegative() {
			return fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, l.RawMaterialID)
		}
		switch {
		case l.IsLinked():
			if l.IsVariable {
				return fmt.Errorf("%w: el enlace %s no puede ser variable y vinculado a la vez", domain.ErrInvalidInput, l.RawMaterialID)
			}
			if l.LinkedMultiplier.IsNegative() {
				return fmt.Errorf("%w: multiplicador negativo para %s", domain.ErrInvalidInput, l.RawMaterialID)
			}
			if l.LinkedTo == l.RawMaterialID {
				return fmt.Errorf("%w: %s vinculado a sí mismo", domain.ErrMissingReference, l.RawMaterialID)
			}
			if _, ok := g.variable[l.LinkedTo]; !ok {
				return fmt.Errorf("%w: %s vinculado a %s, que no es un ingrediente variable de la receta",
					domain.ErrMissingReference, l.RawMaterialID, l.LinkedTo)
			}
		case l.IsVariable:
			if _, dup := seenVariable[l.RawMaterialID]; dup {
				return fmt.Errorf("%w: %s tiene más de un enlace variable", domain.ErrInvalidInput, l.RawMaterialID)
			}
			seenVariable[l.RawMaterialID] = struct{}{}
			if l.MinQuantity.IsNegative() || l.MinQuantity.GreaterThan(l.DefaultQuantity) || l.DefaultQuantity.GreaterThan(l.MaxQuantity) {
				return fmt.Errorf("%w: %s requiere 0 ≤ mínimo ≤ defecto ≤ máximo", domain.ErrInvalidInput, l.RawMaterialID)
			}
			if l.PricePerExtraUnit.IsNegative() {
				return fmt.Errorf("%w: precio por unidad extra negativo para %s", domain.ErrInvalidInput, l.RawMaterialID)
			}
		}
	}
	return nil
}

// Requirements resuelve en dos pasadas la cantidad efectiva de cada enlace.
//
// Pasada 1: enlaces no vinculados. Fijos → Quantity; variables → elección (si la hay en
// choices) o la base indicada. Pasada 2: vinculados → base del padre × multiplicador + Quantity.
//
// Los enlaces vinculados cuyo padre no existe se omiten y se informa domain.ErrMissingReference
// junto con los requisitos que sí se pudieron resolver.
func (g *Graph) Requirements(base Baseline, choices map[string]decimal.Decimal) ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(g.links))
	parentQty := make(map[string]decimal.Decimal, len(g.variable))

	for _, l := range g.links {
		if l.IsLinked() {
			continue
		}
		qty := l.Quantity
		if l.IsVariable {
			qty = baselineOf(l, base)
			if chosen, ok := choices[l.RawMaterialID]; ok {
				qty = chosen
			}
			parentQty[l.RawMaterialID] = qty
		}
		reqs = append(reqs, Requirement{Link: l, Quantity: qty})
	}

	var missing error
	for _, l := range g.links {
		if !l.IsLinked() {
			continue
		}
		pq, ok := parentQty[l.LinkedTo]
		if !ok {
			missing = fmt.Errorf("%w: %s vinculado a %s", domain.ErrMissingReference, l.RawMaterialID, l.LinkedTo)
			continue
		}
		reqs = append(reqs, Requirement{Link: l, Quantity: pq.Mul(l.LinkedMultiplier).Add(l.Quantity)})
	}
	return reqs, missing
}

func baselineOf(l entity.RecipeLink, base Baseline) decimal.Decimal {
	if base == BaselineDefault {
		return l.DefaultQuantity
	}
	return l.MinQuantity
}
