package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/recipe"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

// ResolverUseCase resuelve disponibilidad y costo de producción de los productos que se arman
// con materia prima. Los problemas de integridad (referencias faltantes) se registran en el
// log y nunca llegan a quien vende.
type ResolverUseCase struct {
	repos   repository.Repositories
	tx      repository.TxRunner
	metrics ports.Metrics
	log     *logger.Logger
}

// NewResolverUseCase construye el caso de uso.
func NewResolverUseCase(repos repository.Repositories, tx repository.TxRunner, metrics ports.Metrics, log *logger.Logger) *ResolverUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ResolverUseCase{repos: repos, tx: tx, metrics: metrics, log: log.Component("resolver")}
}

// AvailableUnits unidades vendibles garantizadas del producto.
func (uc *ResolverUseCase) AvailableUnits(ctx context.Context, productID string) (int64, error) {
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return uc.AvailableUnitsWith(ctx, uc.repos, product)
}

// AvailableUnitsWith igual que AvailableUnits pero con los repositorios dados (p. ej. los de una tx).
// Un producto sin receta devuelve su stock propio.
func (uc *ResolverUseCase) AvailableUnitsWith(ctx context.Context, repos repository.Repositories, product *entity.Product) (int64, error) {
	if !product.UsesRawMaterials {
		if product.Stock < 0 {
			return 0, nil
		}
		return product.Stock, nil
	}
	g, materials, err := LoadRecipe(ctx, repos, product.ID)
	if err != nil {
		return 0, err
	}
	units, err := recipe.AvailableUnits(g, materials)
	if err != nil {
		if errors.Is(err, domain.ErrMissingReference) {
			uc.warnMissing(product.ID, err)
			return 0, nil
		}
		return 0, err
	}
	return units, nil
}

// ProductionCost costo de producción actual del producto, calculado sobre la receta vigente.
func (uc *ResolverUseCase) ProductionCost(ctx context.Context, productID string) (decimal.Decimal, error) {
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return uc.productionCostWith(ctx, uc.repos, product.ID)
}

func (uc *ResolverUseCase) productionCostWith(ctx context.Context, repos repository.Repositories, productID string) (decimal.Decimal, error) {
	g, materials, err := LoadRecipe(ctx, repos, productID)
	if err != nil {
		return decimal.Zero, err
	}
	cost, err := recipe.ProductionCost(g, materials)
	if err != nil {
		if !errors.Is(err, domain.ErrMissingReference) {
			return decimal.Zero, err
		}
		uc.warnMissing(productID, err)
	}
	return cost, nil
}

// RecalculateProductInTx recalcula y persiste el costo de un producto dentro de la tx del caller.
func (uc *ResolverUseCase) RecalculateProductInTx(ctx context.Context, repos repository.Repositories, productID string) (decimal.Decimal, error) {
	cost, err := uc.productionCostWith(ctx, repos, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := repos.Products.UpdateCost(ctx, productID, cost); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// receta huérfana de un producto borrado: nada que cachear
			uc.warnMissing(productID, fmt.Errorf("%w: producto %s", domain.ErrMissingReference, productID))
			return cost, nil
		}
		return decimal.Zero, err
	}
	return cost, nil
}

// RecalculateAffectedInTx recalcula el costo de todos los productos cuya receta usa la materia
// prima y devuelve sus IDs. Corre en la misma tx que persistió el nuevo costo.
func (uc *ResolverUseCase) RecalculateAffectedInTx(ctx context.Context, repos repository.Repositories, rawMaterialID string) ([]string, error) {
	links, err := repos.RecipeLinks.ListByRawMaterial(ctx, rawMaterialID)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	ids := []string{}
	for _, l := range links {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := uc.RecalculateProductInTx(ctx, repos, id); err != nil {
			return nil, err
		}
	}
	uc.log.Debug().Str("raw_material_id", rawMaterialID).Int("products", len(ids)).Msg("costos recalculados")
	return ids, nil
}

// RecalculateAffected abre su propia transacción. Ver RecalculateAffectedInTx.
func (uc *ResolverUseCase) RecalculateAffected(ctx context.Context, rawMaterialID string) ([]string, error) {
	var ids []string
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		ids, err = uc.RecalculateAffectedInTx(ctx, repos, rawMaterialID)
		return err
	})
	return ids, err
}

func (uc *ResolverUseCase) warnMissing(productID string, err error) {
	uc.metrics.MissingReference(productID)
	uc.log.Warn().Err(err).Str("product_id", productID).Msg("receta con referencias faltantes")
}

// LoadRecipe carga el grafo del producto y las materias primas que referencia. Las faltantes
// simplemente no aparecen en el índice.
func LoadRecipe(ctx context.Context, repos repository.Repositories, productID string) (*recipe.Graph, recipe.Materials, error) {
	links, err := repos.RecipeLinks.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	g := recipe.NewGraph(links)
	materials := make(recipe.Materials, len(links))
	for _, id := range g.MaterialIDs() {
		m, err := repos.RawMaterials.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if m != nil {
			materials[id] = m
		}
	}
	return g, materials, nil
}
