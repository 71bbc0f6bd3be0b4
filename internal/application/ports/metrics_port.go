package ports

import "github.com/shopspring/decimal"

// Metrics puerto de salida para métricas operativas. El adaptador real usa Prometheus;
// NopMetrics sirve para pruebas y herramientas de línea de comandos.
type Metrics interface {
	SaleCompleted(total decimal.Decimal, lines int)
	SaleRejected(reason string)
	CashMovementRecorded(movementType string)
	MissingReference(productID string)
	KitchenNotification(ok bool)
}

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) SaleCompleted(decimal.Decimal, int) {}
func (NopMetrics) SaleRejected(string)                {}
func (NopMetrics) CashMovementRecorded(string)        {}
func (NopMetrics) MissingReference(string)            {}
func (NopMetrics) KitchenNotification(bool)           {}
