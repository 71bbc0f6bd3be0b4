package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComboSlotDTO casilla de un combo.
type ComboSlotDTO struct {
	ProductIDs       []string `json:"product_ids"`
	DefaultProductID string   `json:"default_product_id" validate:"required"`
	Quantity         int64    `json:"quantity" validate:"min=1"`
	IsDynamic        bool     `json:"is_dynamic"`
}

// CreateComboRequest entrada para crear un combo.
type CreateComboRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	PriceType     string          `json:"price_type" validate:"required,oneof=fixed calculated"`
	FixedPrice    decimal.Decimal `json:"fixed_price"`
	DiscountType  string          `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Slots         []ComboSlotDTO  `json:"slots" validate:"required,min=1,dive"`
}

// ComboResponse salida de un combo.
type ComboResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PriceType     string          `json:"price_type"`
	FixedPrice    decimal.Decimal `json:"fixed_price"`
	DiscountType  string          `json:"discount_type,omitempty"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Slots         []ComboSlotDTO  `json:"slots"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ComboSelectionDTO producto elegido en un combo.
type ComboSelectionDTO struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"min=1"`
}

// ComboPriceRequest cotización de un combo. Sin selecciones se usan las por defecto.
type ComboPriceRequest struct {
	Selections []ComboSelectionDTO `json:"selections" validate:"dive"`
}

// ComboPriceResponse precio cotizado.
type ComboPriceResponse struct {
	ComboID    string              `json:"combo_id"`
	Price      decimal.Decimal     `json:"price"`
	Selections []ComboSelectionDTO `json:"selections"`
}
