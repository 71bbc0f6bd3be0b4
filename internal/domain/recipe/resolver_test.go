package recipe_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/recipe"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func material(id, stock, cost string) *entity.RawMaterial {
	return &entity.RawMaterial{ID: id, Name: id, Unit: entity.UnitCount, Stock: d(stock), CostPerUnit: d(cost)}
}

func TestAvailableUnits_EnlaceFijo(t *testing.T) {
	g := recipe.NewGraph([]*entity.RecipeLink{{RawMaterialID: "pan", Quantity: d("2")}})
	units, err := recipe.AvailableUnits(g, recipe.Materials{"pan": material("pan", "7", "100")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), units)
}

func TestResolver_VariableUsaMinimoYDefecto(t *testing.T) {
	g := recipe.NewGraph([]*entity.RecipeLink{{
		RawMaterialID: "queso", IsVariable: true,
		MinQuantity: d("1"), DefaultQuantity: d("2"), MaxQuantity: d("5"),
	}})
	mats := recipe.Materials{"queso": material("queso", "9", "300")}

	units, err := recipe.AvailableUnits(g, mats)
	require.NoError(t, err)
	assert.Equal(t, int64(9), units)

	cost, err := recipe.ProductionCost(g, mats)
	require.NoError(t, err)
	assert.True(t, d("600").Equal(cost), "costo = 2 × 300, obtuvo %s", cost)
}

func TestProductionCost_EnlaceVinculado(t *testing.T) {
	g := recipe.NewGraph([]*entity.RecipeLink{
		{RawMaterialID: "carne", IsVariable: true, MinQuantity: d("1"), DefaultQuantity: d("3"), MaxQuantity: d("4")},
		{RawMaterialID: "pan", LinkedTo: "carne", LinkedMultiplier: d("2"), Quantity: d("0")},
	})
	mats := recipe.Materials{
		"carne": material("carne", "100", "0"),
		"pan":   material("pan", "100", "10"),
	}
	cost, err := recipe.ProductionCost(g, mats)
	require.NoError(t, err)
	assert.True(t, d("60").Equal(cost), "6 panes × 10, obtuvo %s", cost)

	reqs, err := g.Requirements(recipe.BaselineDefault, nil)
	require.NoError(t, err)
	for _, r := range reqs {
		if r.Link.RawMaterialID == "pan" {
			assert.True(t, d("6").Equal(r.Quantity))
		}
	}
}

func TestAvailableUnits_SinEnlacesEsCero(t *testing.T) {
	units, err := recipe.AvailableUnits(recipe.NewGraph(nil), recipe.Materials{})
	require.NoError(t, err)
	assert.Zero(t, units)
}

func TestAvailableUnits_ReferenciaFaltanteFallaCerrado(t *testing.T) {
	g := recipe.NewGraph([]*entity.RecipeLink{{RawMaterialID: "fantasma", Quantity: d("1")}})
	units, err := recipe.AvailableUnits(g, recipe.Materials{})
	assert.ErrorIs(t, err, domain.ErrMissingReference)
	assert.Zero(t, units)
}

func TestAvailableUnits_MonotonoEnStock(t *testing.T) {
	g := recipe.NewGraph([]*entity.RecipeLink{
		{RawMaterialID: "a", Quantity: d("3")},
		{RawMaterialID: "b", Quantity: d("0.5")},
	})
	prev := int64(-1)
	for stock := 0; stock <= 30; stock++ {
		mats := recipe.Materials{
			"a": material("a", decimal.NewFromInt(int64(stock)).String(), "1"),
			"b": material("b", "4", "1"),
		}
		units, err := recipe.AvailableUnits(g, mats)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, units, prev)
		prev = units
	}
	assert.Equal(t, int64(8), prev)
}

func TestProductionCost_OmiteFaltantes(t *testing.T) {
	g := recipe.NewGraph([]*entity.RecipeLink{
		{RawMaterialID: "pan", Quantity: d("1")},
		{RawMaterialID: "fantasma", Quantity: d("1")},
	})
	cost, err := recipe.ProductionCost(g, recipe.Materials{"pan": material("pan", "1", "250")})
	assert.ErrorIs(t, err, domain.ErrMissingReference)
	assert.True(t, d("250").Equal(cost))
}

func TestConsumption_ConEleccion(t *testing.T) {
	g := recipe.NewGraph([]*entity.RecipeLink{
		{RawMaterialID: "carne", IsVariable: true, MinQuantity: d("1"), DefaultQuantity: d("1"), MaxQuantity: d("3"), PricePerExtraUnit: d("3000")},
		{RawMaterialID: "queso", LinkedTo: "carne", LinkedMultiplier: d("1"), Quantity: d("0")},
		{RawMaterialID: "pan", Quantity: d("1")},
	})
	choices := map[string]decimal.Decimal{"carne": d("3")}

	got, err := recipe.Consumption(g, choices)
	require.NoError(t, err)
	assert.True(t, d("3").Equal(got["carne"]))
	assert.True(t, d("3").Equal(got["queso"]))
	assert.True(t, d("1").Equal(got["pan"]))
	assert.True(t, d("6000").Equal(recipe.ExtraCharge(g, choices)))

	_, err = recipe.Consumption(g, map[string]decimal.Decimal{"carne": d("4")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = recipe.Consumption(g, map[string]decimal.Decimal{"pan": d("2")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
