package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta: product_id o combo_id (uno solo).
type SaleItemRequest struct {
	ProductID  string                     `json:"product_id" validate:"required_without=ComboID,excluded_with=ComboID"`
	ComboID    string                     `json:"combo_id" validate:"required_without=ProductID"`
	Quantity   int64                      `json:"quantity" validate:"min=1"`
	Choices    map[string]decimal.Decimal `json:"choices"`
	Selections []ComboSelectionDTO        `json:"selections" validate:"dive"`
}

// CompleteSaleRequest venta con los billetes entregados por el cliente.
type CompleteSaleRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Bills map[int64]int64   `json:"bills" validate:"required,min=1,dive,gt=0"`
	Notes string            `json:"notes" validate:"max=500"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID  string                     `json:"product_id,omitempty"`
	ComboID    string                     `json:"combo_id,omitempty"`
	Name       string                     `json:"name"`
	Quantity   int64                      `json:"quantity"`
	UnitPrice  decimal.Decimal            `json:"unit_price"`
	Subtotal   decimal.Decimal            `json:"subtotal"`
	Choices    map[string]decimal.Decimal `json:"choices,omitempty"`
	Selections []ComboSelectionDTO        `json:"selections,omitempty"`
}

// SaleResponse venta completada.
type SaleResponse struct {
	ID            string             `json:"id"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	Paid          int64              `json:"paid"`
	Change        int64              `json:"change"`
	BillsIn       map[int64]int64    `json:"bills_in"`
	ChangeBills   map[int64]int64    `json:"change_bills"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	KitchenNotice string             `json:"kitchen_notice,omitempty"`
}
