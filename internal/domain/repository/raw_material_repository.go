package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// RawMaterialRepository puerto de persistencia de la materia prima.
type RawMaterialRepository interface {
	Create(ctx context.Context, material *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error)
	List(ctx context.Context) ([]*entity.RawMaterial, error)
	Update(ctx context.Context, material *entity.RawMaterial) error
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
