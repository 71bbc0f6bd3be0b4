// Package inventory contiene reglas de valoración de la materia prima.
package inventory

import "github.com/shopspring/decimal"

// costScale decimales conservados en el costo unitario de la materia prima.
const costScale = 4

// WeightedAverageCost devuelve el costo unitario tras recibir una compra de materia prima:
// (stock × costo + compra × costoCompra) / (stock + compra). Sin existencias resultantes el
// costo de la compra se toma tal cual.
func WeightedAverageCost(stock, cost, received, receivedCost decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	units := stock.Add(received)
	if !units.IsPositive() {
		return receivedCost.Round(costScale)
	}
	value := stock.Mul(cost).Add(received.Mul(receivedCost))
	return value.DivRound(units, costScale)
}
