package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ComboRepository puerto de persistencia de combos (cabecera + casillas).
type ComboRepository interface {
	Create(ctx context.Context, combo *entity.Combo) error
	GetByID(ctx context.Context, id string) (*entity.Combo, error)
	List(ctx context.Context) ([]*entity.Combo, error)
	Delete(ctx context.Context, id string) error
}
