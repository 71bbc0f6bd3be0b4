package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appcash "github.com/jhoicas/PuntoVenta-api/internal/application/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/application/report"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/kitchen"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/PuntoVenta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/PuntoVenta-api/internal/interfaces/http"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Ints64("denominations", cfg.Cash.Denominations()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos    repository.Repositories
		txRunner repository.TxRunner
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.New()
		repos, txRunner = store.Repositories(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de base de datos")
		}
		repos, txRunner = postgres.NewRepositories(pool), postgres.NewTxRunner(pool)
	}

	prom := metrics.New("pos")

	// Pantalla de cocina: opcional
	var notifier ports.KitchenNotifier
	kitchenTimeout := time.Duration(cfg.Kitchen.TimeoutSeconds) * time.Second
	if cfg.Kitchen.URL != "" {
		notifier = kitchen.NewHTTPNotifier(cfg.Kitchen.URL, kitchenTimeout)
	}

	resolver := inventory.NewResolverUseCase(repos, txRunner, prom, log)
	ledgerUC := appcash.NewLedgerUseCase(repos, txRunner, cfg.Cash.Denominations(), prom, log)
	movementUC := appcash.NewMovementUseCase(repos.Movements, cfg.Cash.RecentMovementsLimit)
	rawMaterialUC := inventory.NewRawMaterialUseCase(repos, txRunner, resolver, log)
	recipeUC := inventory.NewRecipeUseCase(repos, txRunner, resolver)
	productUC := usecase.NewProductUseCase(repos.Products, resolver)
	comboUC := usecase.NewComboUseCase(repos.Combos, repos.Products)
	saleUC := sales.NewCompleteSaleUseCase(sales.Deps{
		Repos:          repos,
		Tx:             txRunner,
		Ledger:         ledgerUC,
		Resolver:       resolver,
		Kitchen:        notifier,
		KitchenTimeout: kitchenTimeout,
		Metrics:        prom,
		Log:            log,
	})

	// PDF: comprobante de cierre de caja
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	reportUC := report.NewReportUseCase(repos, ledgerUC, receiptGenerator, cfg.App.Name)

	app := fiber.New(httpRouter.NewConfig(cfg.App.Name))
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(prom))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Punto de Venta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(prom.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:       ledgerUC,
		Movements:    movementUC,
		RawMaterials: rawMaterialUC,
		Recipes:      recipeUC,
		ProductUC:    productUC,
		ComboUC:      comboUC,
		Sales:        saleUC,
		Reports:      reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
