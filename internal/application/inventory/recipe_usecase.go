package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/recipe"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// RecipeUseCase edición de recetas. Las reglas del grafo se validan aquí, al editar.
type RecipeUseCase struct {
	repos    repository.Repositories
	tx       repository.TxRunner
	resolver *ResolverUseCase
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(repos repository.Repositories, tx repository.TxRunner, resolver *ResolverUseCase) *RecipeUseCase {
	return &RecipeUseCase{repos: repos, tx: tx, resolver: resolver}
}

// Get devuelve la receta del producto con su costo de producción cacheado.
func (uc *RecipeUseCase) Get(ctx context.Context, productID string) (*dto.RecipeResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	links, err := uc.repos.RecipeLinks.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return recipeResponse(productID, links, product), nil
}

// ReplaceLinks reemplaza la receta completa: valida el grafo y que cada materia prima exista,
// guarda, marca el producto como armado con materia prima y recalcula su costo. Todo en una tx.
func (uc *RecipeUseCase) ReplaceLinks(ctx context.Context, productID string, in dto.ReplaceRecipeRequest) (*dto.RecipeResponse, error) {
	links := make([]*entity.RecipeLink, 0, len(in.Links))
	for _, l := range in.Links {
		links = append(links, toLinkEntity(productID, l))
	}
	g := recipe.NewGraph(links)
	if err := g.Validate(); err != nil {
		return nil, err
	}

	var product *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		for _, id := range g.MaterialIDs() {
			m, err := repos.RawMaterials.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("%w: materia prima %s", domain.ErrMissingReference, id)
			}
		}
		if err := repos.RecipeLinks.ReplaceForProduct(ctx, productID, links); err != nil {
			return err
		}
		uses := len(links) > 0
		if err := repos.Products.SetUsesRawMaterials(ctx, productID, uses); err != nil {
			return err
		}
		cost, err := uc.resolver.RecalculateProductInTx(ctx, repos, productID)
		if err != nil {
			return err
		}
		p.UsesRawMaterials = uses
		p.ProductionCost = cost
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipeResponse(productID, links, product), nil
}

func recipeResponse(productID string, links []*entity.RecipeLink, product *entity.Product) *dto.RecipeResponse {
	out := &dto.RecipeResponse{ProductID: productID, Links: make([]dto.RecipeLinkDTO, 0, len(links)), ProductionCost: product.ProductionCost}
	for _, l := range links {
		out.Links = append(out.Links, toLinkDTO(l))
	}
	return out
}
