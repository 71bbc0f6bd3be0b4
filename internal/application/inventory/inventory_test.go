package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

type fixture struct {
	repos    repository.Repositories
	resolver *inventory.ResolverUseCase
	raw      *inventory.RawMaterialUseCase
	recipes  *inventory.RecipeUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()
	resolver := inventory.NewResolverUseCase(repos, store, ports.NopMetrics{}, logger.Nop())
	return &fixture{
		repos:    repos,
		resolver: resolver,
		raw:      inventory.NewRawMaterialUseCase(repos, store, resolver, logger.Nop()),
		recipes:  inventory.NewRecipeUseCase(repos, store, resolver),
	}
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func dp(v string) *decimal.Decimal { x := d(v); return &x }

func (f *fixture) material(t *testing.T, name, stock, cost string) string {
	t.Helper()
	m, err := f.raw.Create(context.Background(), dto.CreateRawMaterialRequest{
		Name: name, Unit: entity.UnitCount, Stock: d(stock), CostPerUnit: d(cost),
	})
	require.NoError(t, err)
	return m.ID
}

func (f *fixture) product(t *testing.T, id, price string) {
	t.Helper()
	require.NoError(t, f.repos.Products.Create(context.Background(), &entity.Product{ID: id, Name: id, Price: d(price), Active: true}))
}

func TestDelete_MateriaPrimaEnUso(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pan := f.material(t, "Pan", "10", "500")
	f.product(t, "hamburguesa", "15000")
	_, err := f.recipes.ReplaceLinks(ctx, "hamburguesa", dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{{RawMaterialID: pan, Quantity: d("1")}}})
	require.NoError(t, err)

	assert.ErrorIs(t, f.raw.Delete(ctx, pan), domain.ErrInUse)

	_, err = f.recipes.ReplaceLinks(ctx, "hamburguesa", dto.ReplaceRecipeRequest{})
	require.NoError(t, err)
	assert.NoError(t, f.raw.Delete(ctx, pan))

	_, err = f.raw.GetByID(ctx, pan)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_NuncaNegativo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.material(t, "Queso", "2", "300")

	_, err := f.raw.AdjustStock(ctx, id, d("-3"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.raw.AdjustStock(ctx, id, d("-2"))
	require.NoError(t, err)
	assert.True(t, got.Stock.IsZero())
}

func TestReplaceLinks_MarcaProductoYCalculaCosto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	carne := f.material(t, "Carne", "20", "2000")
	pan := f.material(t, "Pan", "20", "300")
	f.product(t, "hamburguesa", "15000")

	res, err := f.recipes.ReplaceLinks(ctx, "hamburguesa", dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{
		{RawMaterialID: carne, IsVariable: true, MinQuantity: dp("1"), DefaultQuantity: dp("2"), MaxQuantity: dp("3"), PricePerExtraUnit: dp("2500")},
		{RawMaterialID: pan, LinkedTo: carne, LinkedMultiplier: dp("1"), Quantity: d("1")},
	}})
	require.NoError(t, err)
	// 2 × 2000 + (2 × 1 + 1) × 300
	assert.True(t, d("4900").Equal(res.ProductionCost), "obtuvo %s", res.ProductionCost)

	p, err := f.repos.Products.GetByID(ctx, "hamburguesa")
	require.NoError(t, err)
	assert.True(t, p.UsesRawMaterials)
	assert.True(t, d("4900").Equal(p.ProductionCost))

	units, err := f.resolver.AvailableUnits(ctx, "hamburguesa")
	require.NoError(t, err)
	// carne: 20/1; pan: 20/(1×1+1)
	assert.Equal(t, int64(10), units)
}

func TestReplaceLinks_Rechazos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pan := f.material(t, "Pan", "1", "1")
	f.product(t, "p", "1000")

	_, err := f.recipes.ReplaceLinks(ctx, "p", dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{{RawMaterialID: "no-existe", Quantity: d("1")}}})
	assert.ErrorIs(t, err, domain.ErrMissingReference)

	_, err = f.recipes.ReplaceLinks(ctx, "p", dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{{RawMaterialID: pan, LinkedTo: "queso", LinkedMultiplier: dp("1")}}})
	assert.ErrorIs(t, err, domain.ErrMissingReference)

	_, err = f.recipes.ReplaceLinks(ctx, "otro", dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{{RawMaterialID: pan, Quantity: d("1")}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	links, err := f.repos.RecipeLinks.ListByProduct(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestUpdate_CambioDeCostoRecalculaProductos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	queso := f.material(t, "Queso", "50", "100")
	f.product(t, "arepa", "6000")
	f.product(t, "pizza", "20000")
	for _, id := range []string{"arepa", "pizza"} {
		_, err := f.recipes.ReplaceLinks(ctx, id, dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{{RawMaterialID: queso, Quantity: d("3")}}})
		require.NoError(t, err)
	}

	res, err := f.raw.Update(ctx, queso, dto.UpdateRawMaterialRequest{CostPerUnit: dp("150")})
	require.NoError(t, err)
	assert.Equal(t, []string{"arepa", "pizza"}, res.RecalculatedProducts)

	for _, id := range []string{"arepa", "pizza"} {
		p, err := f.repos.Products.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, d("450").Equal(p.ProductionCost), "%s obtuvo %s", id, p.ProductionCost)

		// el costo guardado coincide con recalcular desde cero
		fresh, err := f.resolver.ProductionCost(ctx, id)
		require.NoError(t, err)
		assert.True(t, fresh.Equal(p.ProductionCost), "%s: guardado %s, recalculado %s", id, p.ProductionCost, fresh)
	}

	res, err = f.raw.Update(ctx, queso, dto.UpdateRawMaterialRequest{Name: strPtr("Queso campesino")})
	require.NoError(t, err)
	assert.Empty(t, res.RecalculatedProducts)
}

func TestRestock_PromedioPonderado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tomate := f.material(t, "Tomate", "10", "100")
	f.product(t, "ensalada", "8000")
	_, err := f.recipes.ReplaceLinks(ctx, "ensalada", dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{{RawMaterialID: tomate, Quantity: d("2")}}})
	require.NoError(t, err)

	res, err := f.raw.Restock(ctx, tomate, dto.RestockRequest{Quantity: d("10"), UnitCost: d("200")})
	require.NoError(t, err)
	assert.True(t, d("20").Equal(res.Stock))
	assert.True(t, d("150").Equal(res.CostPerUnit))
	assert.Equal(t, []string{"ensalada"}, res.RecalculatedProducts)

	p, err := f.repos.Products.GetByID(ctx, "ensalada")
	require.NoError(t, err)
	fresh, err := f.resolver.ProductionCost(ctx, "ensalada")
	require.NoError(t, err)
	assert.True(t, d("300").Equal(p.ProductionCost), "obtuvo %s", p.ProductionCost)
	assert.True(t, fresh.Equal(p.ProductionCost))

	_, err = f.raw.Restock(ctx, tomate, dto.RestockRequest{Quantity: d("0"), UnitCost: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.raw.Create(ctx, dto.CreateRawMaterialRequest{Name: "Pan", Unit: entity.UnitCount, Stock: d("4"), CostPerUnit: d("100"), MinStock: d("10")})
	require.NoError(t, err)
	_, err = f.raw.Create(ctx, dto.CreateRawMaterialRequest{Name: "Sal", Unit: entity.UnitWeight, Stock: d("900"), CostPerUnit: d("1"), MinStock: d("100")})
	require.NoError(t, err)

	low, err := f.raw.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Pan", low[0].Name)
	assert.True(t, d("11").Equal(low[0].SuggestedQuantity))
	assert.True(t, d("1100").Equal(low[0].EstimatedCost))
}

func TestResolver_ProductoSinRecetaUsaSuStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.repos.Products.Create(ctx, &entity.Product{ID: "gaseosa", Name: "Gaseosa", Stock: 12, Active: true}))

	units, err := f.resolver.AvailableUnits(ctx, "gaseosa")
	require.NoError(t, err)
	assert.Equal(t, int64(12), units)

	_, err = f.resolver.AvailableUnits(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func strPtr(s string) *string { return &s }
