// Package cash contiene la lógica pura de la caja: contadores por denominación,
// cálculo de cambio y filtrado del log de movimientos.
package cash

import (
	"fmt"
	"sort"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// Ledger mantiene los contadores de billetes de la caja sobre un universo fijo de
// denominaciones. Es la única vía de escritura de cantidades; ninguna queda negativa.
type Ledger struct {
	universe map[int64]struct{}
	counts   map[int64]int64
	changed  map[int64]struct{}
}

// NewLedger construye el libro a partir del universo configurado y las filas persistidas.
// Las filas con denominaciones fuera del universo se conservan (solo lectura).
func NewLedger(universe []int64, bills []*entity.DenominationBill) (*Ledger, error) {
	l := &Ledger{
		universe: make(map[int64]struct{}, len(universe)),
		counts:   make(map[int64]int64, len(universe)),
		changed:  map[int64]struct{}{},
	}
	for _, d := range universe {
		if d <= 0 {
			return nil, fmt.Errorf("%w: denominación %d", domain.ErrInvalidInput, d)
		}
		l.universe[d] = struct{}{}
		l.counts[d] = 0
	}
	for _, b := range bills {
		if b == nil {
			continue
		}
		if b.Quantity < 0 {
			return nil, fmt.Errorf("%w: denominación %d con cantidad negativa", domain.ErrConflict, b.Denomination)
		}
		l.counts[b.Denomination] = b.Quantity
	}
	return l, nil
}

// ApplyDelta suma signedCount a la denominación y devuelve la nueva cantidad.
func (l *Ledger) ApplyDelta(denomination, signedCount int64) (int64, error) {
	if _, ok := l.universe[denomination]; !ok {
		return 0, fmt.Errorf("%w: denominación %d no existe", domain.ErrInvalidInput, denomination)
	}
	next := l.counts[denomination] + signedCount
	if next < 0 {
		return l.counts[denomination], fmt.Errorf("%w: denominación %d (hay %d, se piden %d)",
			domain.ErrInsufficientStock, denomination, l.counts[denomination], -signedCount)
	}
	if signedCount != 0 {
		l.counts[denomination] = next
		l.changed[denomination] = struct{}{}
	}
	return next, nil
}

// Apply suma in y resta out. Valida todo antes de mutar: o se aplica completo o nada.
func (l *Ledger) Apply(in, out entity.BillCounts) error {
	net := make(map[int64]int64, len(in)+len(out))
	for d, q := range in {
		if q < 0 {
			return fmt.Errorf("%w: cantidad negativa para %d", domain.ErrInvalidInput, d)
		}
		net[d] += q
	}
	for d, q := range out {
		if q < 0 {
			return fmt.Errorf("%w: cantidad negativa para %d", domain.ErrInvalidInput, d)
		}
		net[d] -= q
	}
	for d, delta := range net {
		if _, ok := l.universe[d]; !ok {
			return fmt.Errorf("%w: denominación %d no existe", domain.ErrInvalidInput, d)
		}
		if l.counts[d]+delta < 0 {
			return fmt.Errorf("%w: denominación %d (hay %d, se piden %d)",
				domain.ErrInsufficientStock, d, l.counts[d], -delta)
		}
	}
	for d, delta := range net {
		if _, err := l.ApplyDelta(d, delta); err != nil {
			return err
		}
	}
	return nil
}

// Quantity devuelve la cantidad actual de una denominación.
func (l *Ledger) Quantity(denomination int64) int64 {
	return l.counts[denomination]
}

// TotalValue devuelve Σ(denominación × cantidad).
func (l *Ledger) TotalValue() int64 {
	var total int64
	for d, q := range l.counts {
		total += d * q
	}
	return total
}

// Snapshot devuelve una copia de las denominaciones con cantidad distinta de cero.
func (l *Ledger) Snapshot() entity.BillCounts {
	out := entity.BillCounts{}
	for d, q := range l.counts {
		if q != 0 {
			out[d] = q
		}
	}
	return out
}

// Bills devuelve todas las denominaciones conocidas, de mayor a menor, incluidas las que están en cero.
func (l *Ledger) Bills() []entity.DenominationBill {
	out := make([]entity.DenominationBill, 0, len(l.counts))
	for d, q := range l.counts {
		out = append(out, entity.DenominationBill{Denomination: d, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denomination > out[j].Denomination })
	return out
}

// Spendable devuelve solo las denominaciones del universo, de mayor a menor. Las filas persistidas
// fuera del universo no se pueden entregar como cambio.
func (l *Ledger) Spendable() []entity.DenominationBill {
	out := make([]entity.DenominationBill, 0, len(l.universe))
	for d := range l.universe {
		out = append(out, entity.DenominationBill{Denomination: d, Quantity: l.counts[d]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denomination > out[j].Denomination })
	return out
}

// Close deja todas las denominaciones en cero y devuelve el arqueo previo.
func (l *Ledger) Close() entity.BillCounts {
	snap := l.Snapshot()
	for d, q := range snap {
		l.counts[d] = 0
		if q != 0 {
			l.changed[d] = struct{}{}
		}
	}
	return snap
}

// Changed devuelve las filas modificadas desde la construcción, listas para persistir.
func (l *Ledger) Changed() []entity.DenominationBill {
	out := make([]entity.DenominationBill, 0, len(l.changed))
	for d := range l.changed {
		out = append(out, entity.DenominationBill{Denomination: d, Quantity: l.counts[d]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Denomination > out[j].Denomination })
	return out
}
