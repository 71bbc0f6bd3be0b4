package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ToRawMaterialResponse convierte la entidad a su DTO de salida.
func ToRawMaterialResponse(m *entity.RawMaterial) dto.RawMaterialResponse {
	return dto.RawMaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Unit:        m.Unit,
		Stock:       m.Stock,
		CostPerUnit: m.CostPerUnit,
		MinStock:    m.MinStock,
		StockValue:  m.StockValue(),
		Low:         m.IsLow(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toLinkDTO(l *entity.RecipeLink) dto.RecipeLinkDTO {
	out := dto.RecipeLinkDTO{
		ID:            l.ID,
		RawMaterialID: l.RawMaterialID,
		Quantity:      l.Quantity,
		Removable:     l.Removable,
		IsVariable:    l.IsVariable,
		LinkedTo:      l.LinkedTo,
	}
	if l.IsVariable {
		out.MinQuantity = ptr(l.MinQuantity)
		out.MaxQuantity = ptr(l.MaxQuantity)
		out.DefaultQuantity = ptr(l.DefaultQuantity)
		out.PricePerExtraUnit = ptr(l.PricePerExtraUnit)
	}
	if l.IsLinked() {
		out.LinkedMultiplier = ptr(l.LinkedMultiplier)
	}
	return out
}

func toLinkEntity(productID string, in dto.RecipeLinkDTO) *entity.RecipeLink {
	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	return &entity.RecipeLink{
		ID:                id,
		ProductID:         productID,
		RawMaterialID:     in.RawMaterialID,
		Quantity:          in.Quantity,
		Removable:         in.Removable,
		IsVariable:        in.IsVariable,
		MinQuantity:       orZero(in.MinQuantity),
		MaxQuantity:       orZero(in.MaxQuantity),
		DefaultQuantity:   orZero(in.DefaultQuantity),
		PricePerExtraUnit: orZero(in.PricePerExtraUnit),
		LinkedTo:          in.LinkedTo,
		LinkedMultiplier:  orZero(in.LinkedMultiplier),
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
