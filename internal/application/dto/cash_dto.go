package dto

import "time"

// BillDTO contador de una denominación.
type BillDTO struct {
	Denomination int64     `json:"denomination"`
	Quantity     int64     `json:"quantity"`
	Value        int64     `json:"value"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// CashStateResponse estado de la caja.
type CashStateResponse struct {
	Bills []BillDTO `json:"bills"`
	Total int64     `json:"total"`
}

// ManualMovementRequest ingreso o retiro manual de billetes.
type ManualMovementRequest struct {
	Type  string          `json:"type" validate:"required,oneof=manual_add manual_remove"`
	Bills map[int64]int64 `json:"bills" validate:"required,min=1,dive,gt=0"`
	Notes string          `json:"notes" validate:"max=500"`
}

// CashMovementResponse salida de un movimiento de caja.
type CashMovementResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	BillsIn   map[int64]int64 `json:"bills_in,omitempty"`
	BillsOut  map[int64]int64 `json:"bills_out,omitempty"`
	Net       int64           `json:"net"`
	SaleID    string          `json:"sale_id,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// CashMovementListResponse lista de movimientos (más reciente primero).
type CashMovementListResponse struct {
	Items []CashMovementResponse `json:"items"`
}

// MovementFilterRequest filtros del log de caja (query string).
type MovementFilterRequest struct {
	Types        []string   `query:"type"`
	Denomination int64      `query:"denomination" validate:"min=0"`
	From         *time.Time `query:"-"`
	To           *time.Time `query:"-"`
	Limit        int        `query:"limit" validate:"min=0,max=1000"`
}

// ChangeRequest cálculo de cambio (consultivo, no modifica la caja).
type ChangeRequest struct {
	Amount int64 `json:"amount" validate:"min=0"`
}

// ChangeResponse desglose del cambio.
type ChangeResponse struct {
	Amount    int64           `json:"amount"`
	Breakdown map[int64]int64 `json:"breakdown"`
}

// CloseTillRequest cierre de caja.
type CloseTillRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

// CloseTillResponse resultado del cierre.
type CloseTillResponse struct {
	Movement CashMovementResponse `json:"movement"`
	Total    int64                `json:"total"`
}
