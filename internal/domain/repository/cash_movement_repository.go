package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// CashMovementRepository puerto del log de caja. Solo agrega; nunca modifica ni borra.
type CashMovementRepository interface {
	Create(ctx context.Context, movement *entity.CashMovement) error
	GetByID(ctx context.Context, id string) (*entity.CashMovement, error)
	// ListRecent devuelve los últimos limit movimientos, del más reciente al más antiguo.
	ListRecent(ctx context.Context, limit int) ([]*entity.CashMovement, error)
	ListAll(ctx context.Context) ([]*entity.CashMovement, error)
}
