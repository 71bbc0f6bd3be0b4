package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// DenominationRepository puerto de persistencia de los contadores de la caja.
type DenominationRepository interface {
	List(ctx context.Context) ([]*entity.DenominationBill, error)
	// ListForUpdate igual que List pero bloquea las filas hasta el fin de la transacción.
	ListForUpdate(ctx context.Context) ([]*entity.DenominationBill, error)
	// Upsert crea la fila si no existe (creación perezosa) o actualiza su cantidad.
	Upsert(ctx context.Context, bill *entity.DenominationBill) error
}
