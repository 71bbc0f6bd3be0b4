// seed crea el esquema en PostgreSQL, registra las denominaciones configuradas con
// cantidad cero y carga un catálogo de demostración si la base está vacía.
//
// Uso: go run ./cmd/seed
// Usa las mismas variables de entorno que cmd/api (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Esquema: %v\n", err)
		os.Exit(1)
	}
	repos := postgres.NewRepositories(pool)
	tx := postgres.NewTxRunner(pool)

	added, err := seedDenominations(ctx, repos, cfg.Cash.Denominations())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Denominaciones: %v\n", err)
		os.Exit(1)
	}
	log.Info().Int("nuevas", added).Msg("denominaciones registradas")

	existing, err := repos.RawMaterials.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Listar materia prima: %v\n", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		log.Info().Int("materias_primas", len(existing)).Msg("catálogo existente, no se carga la demostración")
		return
	}
	if err := seedCatalog(ctx, repos, tx, log); err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("catálogo de demostración cargado")
}

// seedDenominations crea en cero las denominaciones que aún no tienen fila. No toca las existentes.
func seedDenominations(ctx context.Context, repos repository.Repositories, universe []int64) (int, error) {
	rows, err := repos.Denominations.List(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[int64]bool, len(rows))
	for _, r := range rows {
		have[r.Denomination] = true
	}
	added := 0
	for _, d := range universe {
		if have[d] {
			continue
		}
		if err := repos.Denominations.Upsert(ctx, &entity.DenominationBill{Denomination: d, UpdatedAt: time.Now()}); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func seedCatalog(ctx context.Context, repos repository.Repositories, tx repository.TxRunner, log *logger.Logger) error {
	resolver := inventory.NewResolverUseCase(repos, tx, ports.NopMetrics{}, log)
	rawUC := inventory.NewRawMaterialUseCase(repos, tx, resolver, log)
	recipeUC := inventory.NewRecipeUseCase(repos, tx, resolver)
	productUC := usecase.NewProductUseCase(repos.Products, resolver)
	comboUC := usecase.NewComboUseCase(repos.Combos, repos.Products)

	d := decimal.RequireFromString
	dp := func(s string) *decimal.Decimal { v := d(s); return &v }

	materials := map[string]dto.CreateRawMaterialRequest{
		"pan":    {Name: "Pan de hamburguesa", Unit: entity.UnitCount, Stock: d("40"), CostPerUnit: d("600"), MinStock: d("10")},
		"carne":  {Name: "Carne de res", Unit: entity.UnitCount, Stock: d("60"), CostPerUnit: d("2500"), MinStock: d("15")},
		"queso":  {Name: "Queso tajado", Unit: entity.UnitCount, Stock: d("80"), CostPerUnit: d("400"), MinStock: d("20")},
		"papa":   {Name: "Papa a la francesa", Unit: entity.UnitWeight, Stock: d("10000"), CostPerUnit: d("6"), MinStock: d("2000")},
		"salsas": {Name: "Salsas", Unit: entity.UnitWeight, Stock: d("3000"), CostPerUnit: d("9"), MinStock: d("500")},
	}
	ids := make(map[string]string, len(materials))
	for key, in := range materials {
		out, err := rawUC.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("materia prima %s: %w", in.Name, err)
		}
		ids[key] = out.ID
	}

	burger, err := productUC.Create(ctx, dto.CreateProductRequest{Name: "Hamburguesa sencilla", Category: "hamburguesas", Price: d("15000")})
	if err != nil {
		return err
	}
	// Carne variable 1..3; un pan por hamburguesa sin importar la carne; queso removible.
	_, err = recipeUC.ReplaceLinks(ctx, burger.ID, dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{
		{RawMaterialID: ids["carne"], IsVariable: true, MinQuantity: dp("1"), DefaultQuantity: dp("1"), MaxQuantity: dp("3"), PricePerExtraUnit: dp("4000")},
		{RawMaterialID: ids["pan"], Quantity: d("1")},
		{RawMaterialID: ids["queso"], LinkedTo: ids["carne"], LinkedMultiplier: dp("1"), Removable: true},
		{RawMaterialID: ids["salsas"], Quantity: d("20")},
	}})
	if err != nil {
		return err
	}

	fries, err := productUC.Create(ctx, dto.CreateProductRequest{Name: "Papas medianas", Category: "acompañamientos", Price: d("6000")})
	if err != nil {
		return err
	}
	if _, err := recipeUC.ReplaceLinks(ctx, fries.ID, dto.ReplaceRecipeRequest{Links: []dto.RecipeLinkDTO{
		{RawMaterialID: ids["papa"], Quantity: d("150")},
	}}); err != nil {
		return err
	}

	soda, err := productUC.Create(ctx, dto.CreateProductRequest{Name: "Gaseosa 400ml", Category: "bebidas", Price: d("4000"), Stock: 48})
	if err != nil {
		return err
	}
	juice, err := productUC.Create(ctx, dto.CreateProductRequest{Name: "Jugo natural", Category: "bebidas", Price: d("5000"), Stock: 20})
	if err != nil {
		return err
	}

	_, err = comboUC.Create(ctx, dto.CreateComboRequest{
		Name:          "Combo hamburguesa",
		PriceType:     entity.ComboPriceCalculated,
		DiscountType:  entity.ComboDiscountPercentage,
		DiscountValue: d("10"),
		Slots: []dto.ComboSlotDTO{
			{ProductIDs: []string{burger.ID}, DefaultProductID: burger.ID, Quantity: 1},
			{ProductIDs: []string{fries.ID}, DefaultProductID: fries.ID, Quantity: 1},
			{ProductIDs: []string{soda.ID, juice.ID}, DefaultProductID: soda.ID, Quantity: 1, IsDynamic: true},
		},
	})
	return err
}
