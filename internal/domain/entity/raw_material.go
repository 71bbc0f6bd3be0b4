package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida de materia prima.
const (
	UnitCount  = "count"  // unidades
	UnitWeight = "weight" // gramos
)

// RawMaterial representa un insumo (materia prima) con existencias y costo unitario vigente.
type RawMaterial struct {
	ID          string
	Name        string
	Unit        string
	Stock       decimal.Decimal // nunca negativo; solo se modifica vía AdjustStock o una venta
	CostPerUnit decimal.Decimal
	MinStock    decimal.Decimal // umbral para el reporte de faltantes (0 = sin alerta)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockValue devuelve Stock × CostPerUnit.
func (m *RawMaterial) StockValue() decimal.Decimal {
	return m.Stock.Mul(m.CostPerUnit)
}

// IsLow indica si las existencias están en o por debajo del mínimo configurado.
func (m *RawMaterial) IsLow() bool {
	return m.MinStock.GreaterThan(decimal.Zero) && m.Stock.LessThanOrEqual(m.MinStock)
}
