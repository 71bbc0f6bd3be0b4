package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest entrada para crear materia prima.
type CreateRawMaterialRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Unit        string          `json:"unit" validate:"required,oneof=count weight"`
	Stock       decimal.Decimal `json:"stock"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// UpdateRawMaterialRequest entrada para actualizar materia prima (el stock se ajusta aparte).
type UpdateRawMaterialRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit        *string          `json:"unit" validate:"omitempty,oneof=count weight"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// AdjustStockRequest ajuste con signo de existencias.
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// RestockRequest compra de materia prima (recalcula el costo promedio).
type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// RawMaterialResponse salida de materia prima.
type RawMaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Stock       decimal.Decimal `json:"stock"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	MinStock    decimal.Decimal `json:"min_stock"`
	StockValue  decimal.Decimal `json:"stock_value"`
	Low         bool            `json:"low"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RawMaterialUpdateResponse incluye los productos cuyo costo se recalculó.
type RawMaterialUpdateResponse struct {
	RawMaterialResponse
	RecalculatedProducts []string `json:"recalculated_products"`
}

// RecipeLinkDTO enlace de receta (entrada y salida).
type RecipeLinkDTO struct {
	ID                string           `json:"id,omitempty"`
	RawMaterialID     string           `json:"raw_material_id" validate:"required"`
	Quantity          decimal.Decimal  `json:"quantity"`
	Removable         bool             `json:"removable"`
	IsVariable        bool             `json:"is_variable"`
	MinQuantity       *decimal.Decimal `json:"min_quantity,omitempty"`
	MaxQuantity       *decimal.Decimal `json:"max_quantity,omitempty"`
	DefaultQuantity   *decimal.Decimal `json:"default_quantity,omitempty"`
	PricePerExtraUnit *decimal.Decimal `json:"price_per_extra_unit,omitempty"`
	LinkedTo          string           `json:"linked_to,omitempty"`
	LinkedMultiplier  *decimal.Decimal `json:"linked_multiplier,omitempty"`
}

// ReplaceRecipeRequest reemplaza la receta completa de un producto.
type ReplaceRecipeRequest struct {
	Links []RecipeLinkDTO `json:"links" validate:"dive"`
}

// RecipeResponse receta de un producto.
type RecipeResponse struct {
	ProductID      string          `json:"product_id"`
	Links          []RecipeLinkDTO `json:"links"`
	ProductionCost decimal.Decimal `json:"production_cost"`
}

// AvailabilityResponse unidades vendibles garantizadas de un producto.
type AvailabilityResponse struct {
	ProductID      string `json:"product_id"`
	AvailableUnits int64  `json:"available_units"`
}

// CostResponse costo de producción de un producto.
type CostResponse struct {
	ProductID      string          `json:"product_id"`
	ProductionCost decimal.Decimal `json:"production_cost"`
	Price          decimal.Decimal `json:"price"`
	Margin         decimal.Decimal `json:"margin"`
}

// LowStockItemResponse materia prima en o bajo el mínimo, con la compra sugerida.
type LowStockItemResponse struct {
	RawMaterialResponse
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}
