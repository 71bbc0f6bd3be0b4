package entity

import "time"

// Tipos de movimiento de caja.
const (
	CashMovementSale         = "sale"          // billetes recibidos en una venta
	CashMovementManualAdd    = "manual_add"    // ingreso manual
	CashMovementManualRemove = "manual_remove" // retiro manual
	CashMovementChangeGiven  = "change_given"  // cambio entregado al cliente
	CashMovementClosing      = "cash_closing"  // cierre de caja (deja el cajón en cero)
)

// CashMovement es un registro inmutable del log de caja.
// Solo uno de BillsIn/BillsOut viene poblado; el cierre guarda el arqueo completo en BillsOut.
type CashMovement struct {
	ID        string
	Type      string
	BillsIn   BillCounts
	BillsOut  BillCounts
	SaleID    string // vacío si no proviene de una venta
	Notes     string
	CreatedAt time.Time
}

// NetValue devuelve el efecto neto del movimiento sobre el total de la caja.
func (m *CashMovement) NetValue() int64 {
	return m.BillsIn.Total() - m.BillsOut.Total()
}

// Touches indica si el movimiento involucra la denominación d.
func (m *CashMovement) Touches(d int64) bool {
	return m.BillsIn[d] != 0 || m.BillsOut[d] != 0
}

// IsValidCashMovementType valida el tipo contra los tipos conocidos.
func IsValidCashMovementType(t string) bool {
	switch t {
	case CashMovementSale, CashMovementManualAdd, CashMovementManualRemove,
		CashMovementChangeGiven, CashMovementClosing:
		return true
	}
	return false
}
