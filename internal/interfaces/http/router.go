package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	appcash "github.com/jhoicas/PuntoVenta-api/internal/application/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/report"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger       *appcash.LedgerUseCase
	Movements    *appcash.MovementUseCase
	RawMaterials *inventory.RawMaterialUseCase
	Recipes      *inventory.RecipeUseCase
	ProductUC    *usecase.ProductUseCase
	ComboUC      *usecase.ComboUseCase
	Sales        *sales.CompleteSaleUseCase
	Reports      *report.ReportUseCase
}

// NewConfig configuración del servidor. Immutable es obligatorio: los repositorios en memoria
// conservan los ids recibidos en c.Params después de la petición.
func NewConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Caja
	cash := api.Group("/cash")
	cashHandler := NewCashHandler(deps.Ledger, deps.Movements, deps.Reports)
	cash.Get("/bills", cashHandler.Bills)
	cash.Post("/movements", cashHandler.RegisterMovement)
	cash.Get("/movements", cashHandler.ListMovements)
	cash.Post("/change", cashHandler.ComputeChange)
	cash.Post("/closing", cashHandler.Close)
	cash.Get("/closing/:id/pdf", cashHandler.ClosingPDF)

	// Materia prima (low-stock antes de /:id)
	raw := api.Group("/raw-materials")
	rawHandler := NewRawMaterialHandler(deps.RawMaterials)
	raw.Post("/", rawHandler.Create)
	raw.Get("/", rawHandler.List)
	raw.Get("/low-stock", rawHandler.LowStock)
	raw.Get("/:id", rawHandler.GetByID)
	raw.Put("/:id", rawHandler.Update)
	raw.Delete("/:id", rawHandler.Delete)
	raw.Post("/:id/stock", rawHandler.AdjustStock)
	raw.Post("/:id/restock", rawHandler.Restock)

	// Productos y recetas
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Recipes)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/availability", productHandler.Availability)
	products.Get("/:id/cost", productHandler.Cost)
	products.Get("/:id/recipe", productHandler.Recipe)
	products.Put("/:id/recipe", productHandler.ReplaceRecipe)

	// Combos
	combos := api.Group("/combos")
	comboHandler := NewComboHandler(deps.ComboUC)
	combos.Post("/", comboHandler.Create)
	combos.Get("/", comboHandler.List)
	combos.Get("/:id", comboHandler.GetByID)
	combos.Delete("/:id", comboHandler.Delete)
	combos.Post("/:id/price", comboHandler.Price)
	combos.Get("/:id/default-selections", comboHandler.DefaultSelections)

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sales)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Reportes
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/cash-summary", reportHandler.CashSummary)
	reports.Get("/stock", reportHandler.Stock)
}
