package entity

import "github.com/shopspring/decimal"

// RecipeLink es la arista producto → materia prima de una receta.
//
// Tres variantes:
//   - fija: consume Quantity por unidad vendida.
//   - variable (IsVariable): el cliente elige entre MinQuantity y MaxQuantity, por defecto
//     DefaultQuantity; cada unidad sobre DefaultQuantity se cobra a PricePerExtraUnit.
//   - vinculada (LinkedTo != ""): consume cantidadPadre × LinkedMultiplier + Quantity, donde el
//     padre es el enlace variable del mismo producto cuya materia prima es LinkedTo.
type RecipeLink struct {
	ID                string
	ProductID         string
	RawMaterialID     string
	Quantity          decimal.Decimal
	Removable         bool
	IsVariable        bool
	MinQuantity       decimal.Decimal
	MaxQuantity       decimal.Decimal
	DefaultQuantity   decimal.Decimal
	PricePerExtraUnit decimal.Decimal
	LinkedTo          string // raw_material_id del enlace variable padre
	LinkedMultiplier  decimal.Decimal
}

// IsLinked indica si la cantidad del enlace se deriva de otro enlace variable.
func (l *RecipeLink) IsLinked() bool {
	return l.LinkedTo != ""
}
