package ports

import (
	"context"
	"time"
)

// ClosingReceipt datos del comprobante de cierre de caja.
type ClosingReceipt struct {
	MovementID string
	ClosedAt   time.Time
	Bills      []ReceiptLine // de mayor a menor denominación
	Total      int64
	Notes      string
	StoreName  string
}

// ReceiptLine una denominación del arqueo.
type ReceiptLine struct {
	Denomination int64
	Quantity     int64
	Value        int64
}

// ClosingReceiptGenerator genera el PDF del comprobante de cierre.
type ClosingReceiptGenerator interface {
	GenerateClosingReceipt(ctx context.Context, receipt ClosingReceipt) ([]byte, error)
}
