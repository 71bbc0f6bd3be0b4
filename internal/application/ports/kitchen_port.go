package ports

import (
	"context"
	"time"
)

// KitchenOrder comanda enviada a la pantalla de cocina tras una venta.
type KitchenOrder struct {
	SaleID    string        `json:"sale_id"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []KitchenItem `json:"items"`
}

// KitchenItem línea de la comanda. Choices lleva las cantidades elegidas por nombre de insumo.
type KitchenItem struct {
	Name     string            `json:"name"`
	Quantity int64             `json:"quantity"`
	Choices  map[string]string `json:"choices,omitempty"`
}

// KitchenNotifier puerto de salida hacia la pantalla de cocina.
// El contexto debe llevar un timeout; un error nunca revierte la venta.
type KitchenNotifier interface {
	Notify(ctx context.Context, order KitchenOrder) error
}
