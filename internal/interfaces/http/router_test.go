package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcash "github.com/jhoicas/PuntoVenta-api/internal/application/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/application/report"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/pdf"
	httpapi "github.com/jhoicas/PuntoVenta-api/internal/interfaces/http"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

var universe = []int64{100000, 50000, 20000, 10000, 5000, 2000, 1000, 500, 200, 100, 50}

type observed struct {
	route  string
	method string
	status int
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []observed
}

func (o *fakeObserver) ObserveRequest(route, method string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observed{route, method, status})
}

func newApp(t *testing.T, obs httpapi.RequestObserver) *fiber.App {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()
	log := logger.Nop()
	resolver := inventory.NewResolverUseCase(repos, store, ports.NopMetrics{}, log)
	ledger := appcash.NewLedgerUseCase(repos, store, universe, ports.NopMetrics{}, log)

	app := fiber.New(httpapi.NewConfig("Tienda"))
	if obs != nil {
		app.Use(httpapi.MetricsMiddleware(obs))
	}
	httpapi.Router(app, httpapi.RouterDeps{
		Ledger:       ledger,
		Movements:    appcash.NewMovementUseCase(repos.Movements, 100),
		RawMaterials: inventory.NewRawMaterialUseCase(repos, store, resolver, log),
		Recipes:      inventory.NewRecipeUseCase(repos, store, resolver),
		ProductUC:    usecase.NewProductUseCase(repos.Products, resolver),
		ComboUC:      usecase.NewComboUseCase(repos.Combos, repos.Products),
		Sales: sales.NewCompleteSaleUseCase(sales.Deps{
			Repos: repos, Tx: store, Ledger: ledger, Resolver: resolver,
			Metrics: ports.NopMetrics{}, Log: log,
		}),
		Reports: report.NewReportUseCase(repos, ledger, pdf.NewMarotoReceiptGenerator(), "Tienda"),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

func TestCash_IngresoCambioYEstado(t *testing.T) {
	app := newApp(t, nil)

	resp, raw := call(t, app, fiber.MethodPost, "/api/cash/movements", map[string]interface{}{
		"type":  "manual_add",
		"bills": map[string]int{"5000": 2, "1000": 5},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, fiber.MethodGet, "/api/cash/bills", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var state dto.CashStateResponse
	decode(t, raw, &state)
	assert.Equal(t, int64(15000), state.Total)
	assert.Len(t, state.Bills, len(universe))

	resp, raw = call(t, app, fiber.MethodPost, "/api/cash/change", map[string]int{"amount": 7000})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var change dto.ChangeResponse
	decode(t, raw, &change)
	assert.Equal(t, map[int64]int64{5000: 1, 1000: 2}, change.Breakdown)

	resp, raw = call(t, app, fiber.MethodPost, "/api/cash/change", map[string]int{"amount": 300})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, raw, &e)
	assert.Equal(t, "INSUFFICIENT_CHANGE", e.Code)
}

func TestCash_Validaciones(t *testing.T) {
	app := newApp(t, nil)

	resp, raw := call(t, app, fiber.MethodPost, "/api/cash/movements", map[string]interface{}{
		"type":  "sale",
		"bills": map[string]int{"5000": 1},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, raw, &e)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "oneof", e.Details["ManualMovementRequest.Type"])

	resp, _ = call(t, app, fiber.MethodPost, "/api/cash/change", map[string]int{"amount": -1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, fiber.MethodPost, "/api/cash/movements", map[string]interface{}{
		"type":  "manual_remove",
		"bills": map[string]int{"1000": 1},
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, raw = call(t, app, fiber.MethodGet, "/api/cash/movements?from=ayer", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	decode(t, raw, &e)
	assert.Equal(t, "INVALID_QUERY", e.Code)
}

func TestCash_MovimientosFiltrados(t *testing.T) {
	app := newApp(t, nil)
	call(t, app, fiber.MethodPost, "/api/cash/movements", map[string]interface{}{"type": "manual_add", "bills": map[string]int{"5000": 1}})
	call(t, app, fiber.MethodPost, "/api/cash/movements", map[string]interface{}{"type": "manual_add", "bills": map[string]int{"1000": 3}})
	call(t, app, fiber.MethodPost, "/api/cash/movements", map[string]interface{}{"type": "manual_remove", "bills": map[string]int{"1000": 1}})

	resp, raw := call(t, app, fiber.MethodGet, "/api/cash/movements", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all dto.CashMovementListResponse
	decode(t, raw, &all)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "manual_remove", all.Items[0].Type)

	resp, raw = call(t, app, fiber.MethodGet, "/api/cash/movements?denomination=1000&type=manual_add", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var filtered dto.CashMovementListResponse
	decode(t, raw, &filtered)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, int64(3000), filtered.Items[0].Net)
}

func TestCash_CierreYComprobante(t *testing.T) {
	app := newApp(t, nil)
	call(t, app, fiber.MethodPost, "/api/cash/movements", map[string]interface{}{"type": "manual_add", "bills": map[string]int{"10000": 1, "500": 2}})

	resp, raw := call(t, app, fiber.MethodPost, "/api/cash/closing", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var closing dto.CloseTillResponse
	decode(t, raw, &closing)
	assert.Equal(t, int64(11000), closing.Total)

	resp, raw = call(t, app, fiber.MethodGet, "/api/cash/bills", nil)
	var state dto.CashStateResponse
	decode(t, raw, &state)
	assert.Zero(t, state.Total)

	resp, raw = call(t, app, fiber.MethodGet, "/api/cash/closing/"+closing.Movement.ID+"/pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = call(t, app, fiber.MethodGet, "/api/cash/closing/no-existe/pdf", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSales_VentaPorHTTP(t *testing.T) {
	app := newApp(t, nil)

	resp, raw := call(t, app, fiber.MethodPost, "/api/products", map[string]interface{}{"name": "Gaseosa", "price": "3000", "stock": 5})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var product dto.ProductResponse
	decode(t, raw, &product)

	call(t, app, fiber.MethodPost, "/api/cash/movements", map[string]interface{}{"type": "manual_add", "bills": map[string]int{"5000": 2, "1000": 5}})

	resp, raw = call(t, app, fiber.MethodPost, "/api/sales", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
		"bills": map[string]int{"1000": 1},
	})
	require.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode, string(raw))

	resp, raw = call(t, app, fiber.MethodPost, "/api/sales", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
		"bills": map[string]int{"5000": 1},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var sale dto.SaleResponse
	decode(t, raw, &sale)
	assert.Equal(t, int64(2000), sale.Change)
	assert.Equal(t, map[int64]int64{1000: 2}, sale.ChangeBills)

	resp, raw = call(t, app, fiber.MethodGet, "/api/sales/"+sale.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stored dto.SaleResponse
	decode(t, raw, &stored)
	assert.Equal(t, sale.ID, stored.ID)

	resp, raw = call(t, app, fiber.MethodGet, "/api/products/"+product.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, raw, &product)
	assert.Equal(t, int64(4), product.Stock)

	resp, raw = call(t, app, fiber.MethodPost, "/api/sales", map[string]interface{}{
		"items": []map[string]interface{}{{"quantity": 1}},
		"bills": map[string]int{"5000": 1},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(raw))
}

func TestInventory_RecetaYMateriaPrimaEnUso(t *testing.T) {
	app := newApp(t, nil)

	resp, raw := call(t, app, fiber.MethodPost, "/api/raw-materials", map[string]interface{}{
		"name": "Pan", "unit": "count", "stock": "4", "cost_per_unit": "100", "min_stock": "10",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var pan dto.RawMaterialResponse
	decode(t, raw, &pan)

	_, raw = call(t, app, fiber.MethodPost, "/api/products", map[string]interface{}{"name": "Sándwich", "price": "8000"})
	var product dto.ProductResponse
	decode(t, raw, &product)

	resp, raw = call(t, app, fiber.MethodPut, "/api/products/"+product.ID+"/recipe", map[string]interface{}{
		"links": []map[string]interface{}{{"raw_material_id": pan.ID, "quantity": "2"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var rec dto.RecipeResponse
	decode(t, raw, &rec)
	assert.True(t, rec.ProductionCost.Equal(decimal.NewFromInt(200)))

	resp, raw = call(t, app, fiber.MethodGet, "/api/products/"+product.ID+"/availability", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var avail dto.AvailabilityResponse
	decode(t, raw, &avail)
	assert.Equal(t, int64(2), avail.AvailableUnits)

	resp, raw = call(t, app, fiber.MethodGet, "/api/raw-materials/low-stock", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var low []dto.LowStockItemResponse
	decode(t, raw, &low)
	require.Len(t, low, 1)
	assert.Equal(t, pan.ID, low[0].ID)

	resp, raw = call(t, app, fiber.MethodDelete, "/api/raw-materials/"+pan.ID, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, raw, &e)
	assert.Equal(t, "IN_USE", e.Code)

	resp, raw = call(t, app, fiber.MethodPut, "/api/products/"+product.ID+"/recipe", map[string]interface{}{
		"links": []map[string]interface{}{{"raw_material_id": "fantasma", "quantity": "1"}},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, string(raw))

	resp, _ = call(t, app, fiber.MethodGet, "/api/products/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProducts_SigueVisibleTrasVariasPeticiones(t *testing.T) {
	app := newApp(t, nil)

	_, raw := call(t, app, fiber.MethodPost, "/api/raw-materials", map[string]interface{}{
		"name": "Queso", "unit": "count", "stock": "30", "cost_per_unit": "500",
	})
	var queso dto.RawMaterialResponse
	decode(t, raw, &queso)
	_, raw = call(t, app, fiber.MethodPost, "/api/products", map[string]interface{}{"name": "Arepa", "price": "6000"})
	var arepa dto.ProductResponse
	decode(t, raw, &arepa)

	resp, raw := call(t, app, fiber.MethodPut, "/api/products/"+arepa.ID+"/recipe", map[string]interface{}{
		"links": []map[string]interface{}{{"raw_material_id": queso.ID, "quantity": "1"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	// peticiones con otras rutas y parámetros reutilizan los buffers de fiber
	resp, _ = call(t, app, fiber.MethodDelete, "/api/raw-materials/"+queso.ID, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	call(t, app, fiber.MethodGet, "/api/products/otro-id-de-la-misma-longitud-que-un-uuid", nil)
	call(t, app, fiber.MethodGet, "/api/cash/movements?type=manual_add&denomination=1000", nil)

	resp, raw = call(t, app, fiber.MethodGet, "/api/products/"+arepa.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var got dto.ProductResponse
	decode(t, raw, &got)
	assert.Equal(t, arepa.ID, got.ID)
	assert.True(t, got.ProductionCost.Equal(decimal.NewFromInt(500)), "costo %s", got.ProductionCost)

	resp, raw = call(t, app, fiber.MethodGet, "/api/products/"+arepa.ID+"/recipe", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var rec dto.RecipeResponse
	decode(t, raw, &rec)
	require.Len(t, rec.Links, 1)
	assert.Equal(t, queso.ID, rec.Links[0].RawMaterialID)

	resp, raw = call(t, app, fiber.MethodGet, "/api/products/"+arepa.ID+"/availability", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var avail dto.AvailabilityResponse
	decode(t, raw, &avail)
	assert.Equal(t, int64(30), avail.AvailableUnits)
}

func TestMetricsMiddleware_UsaPlantillaDeRuta(t *testing.T) {
	obs := &fakeObserver{}
	app := newApp(t, obs)

	call(t, app, fiber.MethodGet, "/api/products/abc", nil)
	call(t, app, fiber.MethodGet, "/api/cash/bills", nil)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.seen, 2)
	assert.Equal(t, observed{"/api/products/:id", fiber.MethodGet, fiber.StatusNotFound}, obs.seen[0])
	assert.Equal(t, observed{"/api/cash/bills", fiber.MethodGet, fiber.StatusOK}, obs.seen[1])
}
