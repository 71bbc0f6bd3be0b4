package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// RecipeLinkRepository puerto de persistencia de las recetas (índices por producto y por materia prima).
type RecipeLinkRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLink, error)
	ListByRawMaterial(ctx context.Context, rawMaterialID string) ([]*entity.RecipeLink, error)
	// ReplaceForProduct reemplaza todos los enlaces del producto por links.
	ReplaceForProduct(ctx context.Context, productID string, links []*entity.RecipeLink) error
}
