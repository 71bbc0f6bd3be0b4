package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcash "github.com/jhoicas/PuntoVenta-api/internal/application/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

var universe = []int64{100000, 50000, 20000, 10000, 5000, 2000, 1000, 500, 200, 100, 50}

type fakeKitchen struct {
	mu     sync.Mutex
	err    error
	orders []ports.KitchenOrder
}

func (k *fakeKitchen) Notify(_ context.Context, o ports.KitchenOrder) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.orders = append(k.orders, o)
	return k.err
}

type fixture struct {
	repos   repository.Repositories
	ledger  *appcash.LedgerUseCase
	movs    *appcash.MovementUseCase
	recipes *inventory.RecipeUseCase
	combos  *usecase.ComboUseCase
	kitchen *fakeKitchen
	sale    *sales.CompleteSaleUseCase
	carne   string
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func dp(v string) *decimal.Decimal { x := d(v); return &x }

// newFixture arma una tienda con:
//   - gaseosa: producto sin receta, precio 3000, 12 unidades
//   - hamburguesa: precio 15000, carne variable (1..3, defecto 1, extra 2500) con stock 3
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()
	log := logger.Nop()
	resolver := inventory.NewResolverUseCase(repos, store, ports.NopMetrics{}, log)
	ledger := appcash.NewLedgerUseCase(repos, store, universe, ports.NopMetrics{}, log)
	f := &fixture{
		repos:   repos,
		ledger:  ledger,
		movs:    appcash.NewMovementUseCase(repos.Movements, 100),
		recipes: inventory.NewRecipeUseCase(repos, store, resolver),
		combos:  usecase.NewComboUseCase(repos.Combos, repos.Products),
		kitchen: &fakeKitchen{},
	}
	f.sale = sales.NewCompleteSaleUseCase(sales.Deps{
		Repos: repos, Tx: store, Ledger: ledger, Resolver: resolver,
		Kitchen: f.kitchen, Metrics: ports.NopMetrics{}, Log: log,
	})

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "gaseosa", Name: "Gaseosa", Price: d("3000"), Stock: 12, Active: true}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "hamburguesa", Name: "Hamburguesa", Price: d("15000"), Active: true}))

	raw := inventory.NewRawMaterialUseCase(repos, store, resolver, log)
	carne, err := raw.Create(ctx, dto.CreateRawMaterialRequest{Name: "Carne", Unit: entity.UnitCount, Stock: d("3"), CostPerUnit: d("2000")})
	require.NoError(t, err)
	f.carne = carne.ID
	_, err = f.recipes.ReplaceLinks(ctx, "hamburguesa", dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{{
		RawMaterialID: carne.ID, IsVariable: true,
		MinQuantity: dp("1"), DefaultQuantity: dp("1"), MaxQuantity: dp("3"), PricePerExtraUnit: dp("2500"),
	}}})
	require.NoError(t, err)
	return f
}

func (f *fixture) fund(t *testing.T, bills map[int64]int64) {
	t.Helper()
	_, err := f.ledger.RegisterManualMovement(context.Background(), dto.ManualMovementRequest{Type: entity.CashMovementManualAdd, Bills: bills})
	require.NoError(t, err)
}

func (f *fixture) stockOf(t *testing.T, productID string) int64 {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}

func TestExecute_VentaConCambio(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, map[int64]int64{5000: 2, 1000: 5})

	res, err := f.sale.Execute(ctx, dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 1}},
		Bills: map[int64]int64{10000: 1},
	})
	require.NoError(t, err)
	assert.True(t, d("3000").Equal(res.Total))
	assert.Equal(t, int64(7000), res.Change)
	assert.Equal(t, map[int64]int64{5000: 1, 1000: 2}, res.ChangeBills)
	assert.Empty(t, res.KitchenNotice)

	snap, err := f.ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.BillCounts{10000: 1, 5000: 1, 1000: 3}, snap)
	assert.Equal(t, int64(11), f.stockOf(t, "gaseosa"))

	list, err := f.movs.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, entity.CashMovementChangeGiven, list.Items[0].Type)
	assert.Equal(t, entity.CashMovementSale, list.Items[1].Type)
	assert.Equal(t, res.ID, list.Items[0].SaleID)

	got, err := f.sale.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	require.Len(t, f.kitchen.orders, 1)
	assert.Equal(t, res.ID, f.kitchen.orders[0].SaleID)
}

func TestExecute_PagoExactoSinCambio(t *testing.T) {
	f := newFixture(t)
	res, err := f.sale.Execute(context.Background(), dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 2}},
		Bills: map[int64]int64{5000: 1, 1000: 1},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Change)
	assert.Empty(t, res.ChangeBills)

	list, err := f.movs.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1, "sin cambio no hay movimiento change_given")
}

func TestExecute_SinCambioDisponibleNoDejaRastro(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.sale.Execute(ctx, dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 1}},
		Bills: map[int64]int64{5000: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientChange)

	total, err := f.ledger.TotalValue(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Equal(t, int64(12), f.stockOf(t, "gaseosa"))
	list, err := f.movs.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Empty(t, f.kitchen.orders)
}

func TestExecute_PagoInsuficiente(t *testing.T) {
	f := newFixture(t)
	_, err := f.sale.Execute(context.Background(), dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "hamburguesa", Quantity: 1}},
		Bills: map[int64]int64{10000: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)
}

func TestExecute_EleccionesCobranExtra(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res, err := f.sale.Execute(ctx, dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "hamburguesa", Quantity: 1, Choices: map[string]decimal.Decimal{f.carne: d("3")}}},
		Bills: map[int64]int64{20000: 1},
	})
	require.NoError(t, err)
	// 15000 + (3 - 1) × 2500
	assert.True(t, d("20000").Equal(res.Total), "obtuvo %s", res.Total)

	m, err := f.repos.RawMaterials.GetByID(ctx, f.carne)
	require.NoError(t, err)
	assert.True(t, m.Stock.IsZero())

	require.Len(t, f.kitchen.orders, 1)
	assert.Equal(t, map[string]string{"Carne": "3"}, f.kitchen.orders[0].Items[0].Choices)
}

func TestExecute_IngredienteCompartidoSeVerificaAgregado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, map[int64]int64{1000: 10})

	// Cada línea por separado cabe en las 3 unidades de carne; juntas necesitan 4.
	_, err := f.sale.Execute(ctx, dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "hamburguesa", Quantity: 1, Choices: map[string]decimal.Decimal{f.carne: d("2")}},
			{ProductID: "hamburguesa", Quantity: 1, Choices: map[string]decimal.Decimal{f.carne: d("2")}},
		},
		Bills: map[int64]int64{50000: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	m, err := f.repos.RawMaterials.GetByID(ctx, f.carne)
	require.NoError(t, err)
	assert.True(t, d("3").Equal(m.Stock))
}

func TestExecute_ProductoSinStock(t *testing.T) {
	f := newFixture(t)
	_, err := f.sale.Execute(context.Background(), dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 13}},
		Bills: map[int64]int64{50000: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestExecute_Combo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	combo, err := f.combos.Create(ctx, dto.CreateComboRequest{
		Name: "Dos gaseosas", PriceType: entity.ComboPriceFixed, FixedPrice: d("5000"),
		Slots: []dto.ComboSlotDTO{{DefaultProductID: "gaseosa", Quantity: 2}},
	})
	require.NoError(t, err)

	res, err := f.sale.Execute(ctx, dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ComboID: combo.ID, Quantity: 1}},
		Bills: map[int64]int64{5000: 1},
	})
	require.NoError(t, err)
	assert.True(t, d("5000").Equal(res.Total))
	require.Len(t, res.Items, 1)
	assert.Equal(t, []dto.ComboSelectionDTO{{ProductID: "gaseosa", Quantity: 1}, {ProductID: "gaseosa", Quantity: 1}}, res.Items[0].Selections)
	assert.Equal(t, int64(10), f.stockOf(t, "gaseosa"))
}

func TestExecute_FalloDeCocinaNoRevierte(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.kitchen.err = errors.New("pantalla apagada")

	res, err := f.sale.Execute(ctx, dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 1}},
		Bills: map[int64]int64{2000: 1, 1000: 1},
	})
	require.NoError(t, err)
	assert.Contains(t, res.KitchenNotice, "pantalla apagada")

	_, err = f.sale.GetByID(ctx, res.ID)
	assert.NoError(t, err)
}

func TestExecute_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		in   dto.CompleteSaleRequest
		want error
	}{
		{"sin líneas", dto.CompleteSaleRequest{Bills: map[int64]int64{1000: 1}}, domain.ErrInvalidInput},
		{"sin billetes", dto.CompleteSaleRequest{Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 1}}}, domain.ErrInvalidInput},
		{"producto y combo", dto.CompleteSaleRequest{Items: []dto.SaleItemRequest{{ProductID: "gaseosa", ComboID: "x", Quantity: 1}}, Bills: map[int64]int64{5000: 1}}, domain.ErrInvalidInput},
		{"producto inexistente", dto.CompleteSaleRequest{Items: []dto.SaleItemRequest{{ProductID: "nada", Quantity: 1}}, Bills: map[int64]int64{5000: 1}}, domain.ErrNotFound},
		{"elección fuera de rango", dto.CompleteSaleRequest{Items: []dto.SaleItemRequest{{ProductID: "hamburguesa", Quantity: 1, Choices: map[string]decimal.Decimal{f.carne: d("9")}}}, Bills: map[int64]int64{50000: 1}}, domain.ErrInvalidInput},
		{"billete desconocido", dto.CompleteSaleRequest{Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 1}}, Bills: map[int64]int64{3000: 1}}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.sale.Execute(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestExecute_CambioIgnoraDenominacionesFueraDelUniverso(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	// fila heredada de una configuración anterior
	require.NoError(t, f.repos.Denominations.Upsert(ctx, &entity.DenominationBill{Denomination: 3000, Quantity: 5}))
	f.fund(t, map[int64]int64{1000: 5})

	res, err := f.sale.Execute(ctx, dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 1}},
		Bills: map[int64]int64{5000: 1, 1000: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), res.Change)
	assert.Equal(t, map[int64]int64{1000: 3}, res.ChangeBills)

	snap, err := f.ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.BillCounts{3000: 5, 5000: 1, 1000: 3}, snap)
}

func TestExecute_FiltroYRecientesMismoOrden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fund(t, map[int64]int64{1000: 5})

	_, err := f.sale.Execute(ctx, dto.CompleteSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "gaseosa", Quantity: 1}},
		Bills: map[int64]int64{5000: 1},
	})
	require.NoError(t, err)

	recent, err := f.movs.Recent(ctx, 0)
	require.NoError(t, err)
	filtered, err := f.movs.Filter(ctx, cash.MovementFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, filtered.Items, len(recent.Items))
	for i := range recent.Items {
		assert.Equal(t, recent.Items[i].ID, filtered.Items[i].ID)
	}
	assert.Equal(t, entity.CashMovementChangeGiven, filtered.Items[0].Type)
	assert.Equal(t, entity.CashMovementSale, filtered.Items[1].Type)
}
