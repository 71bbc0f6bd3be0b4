package combo_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/combo"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

var prices = map[string]decimal.Decimal{
	"hamburguesa": decimal.NewFromInt(15000),
	"papas":       decimal.NewFromInt(5000),
	"gaseosa":     decimal.NewFromInt(4000),
	"jugo":        decimal.NewFromInt(6000),
}

func menu(priceType string) *entity.Combo {
	return &entity.Combo{
		ID: "c1", Name: "Combo", PriceType: priceType, FixedPrice: decimal.NewFromInt(20000),
		Slots: []entity.ComboSlot{
			{DefaultProductID: "hamburguesa", Quantity: 1},
			{DefaultProductID: "papas", Quantity: 1},
			{DefaultProductID: "gaseosa", ProductIDs: []string{"gaseosa", "jugo"}, Quantity: 1, IsDynamic: true},
		},
	}
}

func TestPrice_FijoNoDependeDeSelecciones(t *testing.T) {
	c := menu(entity.ComboPriceFixed)
	a, err := combo.Price(c, combo.DefaultSelections(c), prices)
	require.NoError(t, err)
	b, err := combo.Price(c, []entity.ComboSelection{{ProductID: "jugo", Quantity: 3}}, prices)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.True(t, decimal.NewFromInt(20000).Equal(a))
}

func TestPrice_CalculadoConPorcentaje(t *testing.T) {
	c := menu(entity.ComboPriceCalculated)
	c.DiscountType = entity.ComboDiscountPercentage
	c.DiscountValue = decimal.NewFromInt(10)

	got, err := combo.Price(c, combo.DefaultSelections(c), prices)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(21600).Equal(got), "obtuvo %s", got)
}

func TestPrice_DescuentoFijoNuncaNegativo(t *testing.T) {
	c := menu(entity.ComboPriceCalculated)
	c.DiscountType = entity.ComboDiscountFixed
	c.DiscountValue = decimal.NewFromInt(1000000)

	got, err := combo.Price(c, combo.DefaultSelections(c), prices)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestPrice_ProductoSinPrecio(t *testing.T) {
	c := menu(entity.ComboPriceCalculated)
	_, err := combo.Price(c, []entity.ComboSelection{{ProductID: "nada", Quantity: 1}}, prices)
	assert.ErrorIs(t, err, domain.ErrMissingReference)
}

func TestDefaultSelections(t *testing.T) {
	c := menu(entity.ComboPriceFixed)
	c.Slots[1].Quantity = 2
	got := combo.DefaultSelections(c)
	assert.Equal(t, []entity.ComboSelection{
		{ProductID: "hamburguesa", Quantity: 1},
		{ProductID: "papas", Quantity: 1},
		{ProductID: "papas", Quantity: 1},
		{ProductID: "gaseosa", Quantity: 1},
	}, got)
}

func TestValidateSelections(t *testing.T) {
	c := menu(entity.ComboPriceCalculated)

	assert.NoError(t, combo.ValidateSelections(c, combo.DefaultSelections(c)))
	assert.NoError(t, combo.ValidateSelections(c, []entity.ComboSelection{
		{ProductID: "hamburguesa", Quantity: 1}, {ProductID: "papas", Quantity: 1}, {ProductID: "jugo", Quantity: 1},
	}))

	// sustituto en casilla fija
	err := combo.ValidateSelections(c, []entity.ComboSelection{
		{ProductID: "jugo", Quantity: 1}, {ProductID: "papas", Quantity: 1}, {ProductID: "gaseosa", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// combo incompleto
	err = combo.ValidateSelections(c, []entity.ComboSelection{{ProductID: "hamburguesa", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = combo.ValidateSelections(c, []entity.ComboSelection{{ProductID: "hamburguesa", Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateSelections_NoDependeDelOrden(t *testing.T) {
	c := &entity.Combo{
		ID: "c2", Name: "Dos bebidas", PriceType: entity.ComboPriceCalculated,
		Slots: []entity.ComboSlot{
			{DefaultProductID: "gaseosa", ProductIDs: []string{"gaseosa", "jugo"}, Quantity: 1, IsDynamic: true},
			{DefaultProductID: "gaseosa", ProductIDs: []string{"gaseosa"}, Quantity: 1, IsDynamic: true},
		},
	}
	gaseosa := entity.ComboSelection{ProductID: "gaseosa", Quantity: 1}
	jugo := entity.ComboSelection{ProductID: "jugo", Quantity: 1}

	assert.NoError(t, combo.ValidateSelections(c, []entity.ComboSelection{jugo, gaseosa}))
	assert.NoError(t, combo.ValidateSelections(c, []entity.ComboSelection{gaseosa, jugo}))

	// dos jugos: la segunda casilla solo admite gaseosa, en cualquier orden
	err := combo.ValidateSelections(c, []entity.ComboSelection{{ProductID: "jugo", Quantity: 2}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = combo.ValidateSelections(c, []entity.ComboSelection{jugo, jugo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateSelections_TodasLasPermutaciones(t *testing.T) {
	c := menu(entity.ComboPriceCalculated)
	c.Slots = append(c.Slots, entity.ComboSlot{DefaultProductID: "papas", ProductIDs: []string{"papas", "gaseosa"}, Quantity: 1, IsDynamic: true})
	base := []entity.ComboSelection{
		{ProductID: "gaseosa", Quantity: 1},
		{ProductID: "papas", Quantity: 1},
		{ProductID: "hamburguesa", Quantity: 1},
		{ProductID: "jugo", Quantity: 1},
	}

	var permute func(k int)
	permute = func(k int) {
		if k == len(base) {
			order := append([]entity.ComboSelection(nil), base...)
			assert.NoError(t, combo.ValidateSelections(c, order), "%v", order)
			return
		}
		for i := k; i < len(base); i++ {
			base[k], base[i] = base[i], base[k]
			permute(k + 1)
			base[k], base[i] = base[i], base[k]
		}
	}
	permute(0)
}
