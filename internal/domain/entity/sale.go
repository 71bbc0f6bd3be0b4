package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una venta completada (cabecera + líneas).
type Sale struct {
	ID          string
	Items       []SaleItem
	Total       decimal.Decimal
	Paid        int64
	Change      int64
	BillsIn     BillCounts
	ChangeBills BillCounts
	Notes       string
	CreatedAt   time.Time
}

// SaleItem es una línea de venta: un producto (con elecciones de ingredientes variables)
// o un combo (con sus selecciones).
type SaleItem struct {
	ProductID  string
	ComboID    string
	Name       string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
	Choices    map[string]decimal.Decimal // raw_material_id -> cantidad elegida
	Selections []ComboSelection
}

// IsCombo indica si la línea corresponde a un combo.
func (i *SaleItem) IsCombo() bool {
	return i.ComboID != ""
}
