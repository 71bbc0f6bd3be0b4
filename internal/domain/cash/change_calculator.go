package cash

import (
	"fmt"
	"sort"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ComputeChange arma el desglose de billetes para entregar amountDue con las existencias dadas.
//
// Algoritmo voraz, de mayor a menor denominación: por cada denominación toma
// min(floor(restante/denominación), disponible). Es óptimo para juegos de denominaciones
// canónicos (los de la moneda local) pero no para cualquier conjunto arbitrario.
//
// amountDue == 0 devuelve un desglose vacío. Si no se alcanza cero devuelve
// domain.ErrInsufficientChange. Nunca modifica available.
func ComputeChange(amountDue int64, available []entity.DenominationBill) (entity.BillCounts, error) {
	if amountDue < 0 {
		return nil, fmt.Errorf("%w: monto negativo %d", domain.ErrInvalidInput, amountDue)
	}
	breakdown := entity.BillCounts{}
	if amountDue == 0 {
		return breakdown, nil
	}

	bills := make([]entity.DenominationBill, 0, len(available))
	for _, b := range available {
		if b.Denomination > 0 && b.Quantity > 0 {
			bills = append(bills, b)
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].Denomination > bills[j].Denomination })

	remaining := amountDue
	for _, b := range bills {
		if remaining == 0 {
			break
		}
		take := remaining / b.Denomination
		if take > b.Quantity {
			take = b.Quantity
		}
		if take == 0 {
			continue
		}
		breakdown[b.Denomination] += take
		remaining -= take * b.Denomination
	}

	if remaining != 0 {
		return nil, fmt.Errorf("%w: faltan %d", domain.ErrInsufficientChange, remaining)
	}
	return breakdown, nil
}
