package entity

import (
	"sort"
	"time"
)

// DenominationBill es el contador físico de una denominación en la caja.
// Se crea de forma perezosa la primera vez que se referencia y nunca se elimina.
type DenominationBill struct {
	Denomination int64 // valor facial en pesos
	Quantity     int64 // nunca negativo
	UpdatedAt    time.Time
}

// Value devuelve Denomination × Quantity.
func (b DenominationBill) Value() int64 {
	return b.Denomination * b.Quantity
}

// BillCounts agrupa cantidades por denominación (denominación -> cantidad).
type BillCounts map[int64]int64

// Total devuelve la suma ponderada Σ(denominación × cantidad).
func (b BillCounts) Total() int64 {
	var total int64
	for d, q := range b {
		total += d * q
	}
	return total
}

// Pieces devuelve el número total de billetes/monedas.
func (b BillCounts) Pieces() int64 {
	var n int64
	for _, q := range b {
		n += q
	}
	return n
}

// Clone devuelve una copia independiente, omitiendo cantidades en cero.
func (b BillCounts) Clone() BillCounts {
	out := make(BillCounts, len(b))
	for d, q := range b {
		if q != 0 {
			out[d] = q
		}
	}
	return out
}

// Denominations devuelve las denominaciones presentes ordenadas de mayor a menor.
func (b BillCounts) Denominations() []int64 {
	out := make([]int64, 0, len(b))
	for d := range b {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
