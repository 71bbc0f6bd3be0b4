package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateCost actualiza solo el costo de producción derivado.
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	UpdateStock(ctx context.Context, productID string, stock int64) error
	SetUsesRawMaterials(ctx context.Context, productID string, uses bool) error
}
