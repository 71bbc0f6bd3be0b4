package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTypeSummary totales de un tipo de movimiento.
type CashTypeSummary struct {
	Type     string `json:"type"`
	Count    int    `json:"count"`
	TotalIn  int64  `json:"total_in"`
	TotalOut int64  `json:"total_out"`
}

// CashSummaryResponse resumen de caja en un rango.
type CashSummaryResponse struct {
	From       *time.Time        `json:"from,omitempty"`
	To         *time.Time        `json:"to,omitempty"`
	ByType     []CashTypeSummary `json:"by_type"`
	SalesCount int               `json:"sales_count"`
	SalesTotal decimal.Decimal   `json:"sales_total"`
	TotalIn    int64             `json:"total_in"`
	TotalOut   int64             `json:"total_out"`
	Net        int64             `json:"net"`
	DrawerNow  int64             `json:"drawer_now"`
}

// StockReportResponse valorización de la materia prima.
type StockReportResponse struct {
	Items      []RawMaterialResponse `json:"items"`
	TotalValue decimal.Decimal       `json:"total_value"`
	LowCount   int                   `json:"low_count"`
}
