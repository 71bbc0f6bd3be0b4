// Package sales orquesta la venta completa: precio, admisión por existencias, cobro con
// cambio, descuento de inventario y aviso a cocina.
package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcash "github.com/jhoicas/PuntoVenta-api/internal/application/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/recipe"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

// CompleteSaleUseCase registra una venta de forma atómica: o se escriben caja, movimientos,
// existencias y venta, o no se escribe nada.
type CompleteSaleUseCase struct {
	repos          repository.Repositories
	tx             repository.TxRunner
	ledger         *appcash.LedgerUseCase
	resolver       *inventory.ResolverUseCase
	kitchen        ports.KitchenNotifier
	kitchenTimeout time.Duration
	metrics        ports.Metrics
	log            *logger.Logger
}

// Deps dependencias del caso de uso.
type Deps struct {
	Repos          repository.Repositories
	Tx             repository.TxRunner
	Ledger         *appcash.LedgerUseCase
	Resolver       *inventory.ResolverUseCase
	Kitchen        ports.KitchenNotifier // nil = sin pantalla de cocina
	KitchenTimeout time.Duration
	Metrics        ports.Metrics
	Log            *logger.Logger
}

// NewCompleteSaleUseCase construye el caso de uso.
func NewCompleteSaleUseCase(d Deps) *CompleteSaleUseCase {
	if d.Metrics == nil {
		d.Metrics = ports.NopMetrics{}
	}
	if d.KitchenTimeout <= 0 {
		d.KitchenTimeout = 3 * time.Second
	}
	return &CompleteSaleUseCase{
		repos:          d.Repos,
		tx:             d.Tx,
		ledger:         d.Ledger,
		resolver:       d.Resolver,
		kitchen:        d.Kitchen,
		kitchenTimeout: d.KitchenTimeout,
		metrics:        d.Metrics,
		log:            d.Log.Component("sales"),
	}
}

// needs consumo agregado de la venta completa.
type needs struct {
	raw      map[string]decimal.Decimal // raw_material_id -> cantidad
	products map[string]int64           // product_id (sin receta) -> unidades
	names    map[string]string          // raw_material_id -> nombre, para la comanda
}

// Execute completa la venta.
//
// Errores: domain.ErrInvalidInput (líneas o billetes inválidos), domain.ErrNotFound (producto o
// combo inexistente), domain.ErrInsufficientStock, domain.ErrInsufficientPayment,
// domain.ErrInsufficientChange. Un fallo al avisar a cocina no revierte la venta.
func (uc *CompleteSaleUseCase) Execute(ctx context.Context, in dto.CompleteSaleRequest) (*dto.SaleResponse, error) {
	sale, n, err := uc.execute(ctx, in)
	if err != nil {
		uc.metrics.SaleRejected(rejectReason(err))
		uc.log.Info().Err(err).Msg("venta rechazada")
		return nil, err
	}
	uc.metrics.SaleCompleted(sale.Total, len(sale.Items))
	uc.log.Info().Str("sale_id", sale.ID).Str("total", sale.Total.String()).Int64("change", sale.Change).Msg("venta completada")

	out := ToSaleResponse(sale)
	if err := uc.notifyKitchen(ctx, sale, n.names); err != nil {
		out.KitchenNotice = "no se pudo avisar a cocina: " + err.Error()
	}
	return out, nil
}

func (uc *CompleteSaleUseCase) execute(ctx context.Context, in dto.CompleteSaleRequest) (*entity.Sale, *needs, error) {
	if len(in.Items) == 0 {
		return nil, nil, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	tender := entity.BillCounts(in.Bills).Clone()
	for d, q := range in.Bills {
		if q < 0 {
			return nil, nil, fmt.Errorf("%w: cantidad negativa para %d", domain.ErrInvalidInput, d)
		}
	}
	if len(tender) == 0 {
		return nil, nil, fmt.Errorf("%w: no se recibieron billetes", domain.ErrInvalidInput)
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		BillsIn:   tender,
		Paid:      tender.Total(),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
	}
	n := &needs{raw: map[string]decimal.Decimal{}, products: map[string]int64{}, names: map[string]string{}}

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		// 1. Precio y consumo de cada línea
		total := decimal.Zero
		for i, line := range in.Items {
			item, err := uc.priceLine(ctx, repos, line, n)
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			sale.Items = append(sale.Items, *item)
			total = total.Add(item.Subtotal)
		}
		sale.Total = total.Round(0)

		// 2. Cobro
		due := sale.Total.IntPart()
		if sale.Paid < due {
			return fmt.Errorf("%w: total %d, recibido %d", domain.ErrInsufficientPayment, due, sale.Paid)
		}

		// 3. Existencias agregadas, con bloqueo de filas
		if err := uc.checkAndConsume(ctx, repos, n); err != nil {
			return err
		}

		// 4. Caja: entra el pago, sale el cambio
		ledger, err := uc.ledger.LoadLedgerForUpdate(ctx, repos)
		if err != nil {
			return err
		}
		if err := uc.ledger.RecordInTx(ctx, repos, ledger, &entity.CashMovement{
			ID:        uuid.New().String(),
			Type:      entity.CashMovementSale,
			BillsIn:   tender,
			SaleID:    sale.ID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		sale.Change = sale.Paid - due
		sale.ChangeBills = entity.BillCounts{}
		if sale.Change > 0 {
			breakdown, err := cash.ComputeChange(sale.Change, ledger.Spendable())
			if err != nil {
				return err
			}
			sale.ChangeBills = breakdown
			if err := uc.ledger.RecordInTx(ctx, repos, ledger, &entity.CashMovement{
				ID:        uuid.New().String(),
				Type:      entity.CashMovementChangeGiven,
				BillsOut:  breakdown,
				SaleID:    sale.ID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}

		// 5. Venta
		return repos.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, nil, err
	}
	return sale, n, nil
}

// priceLine cotiza una línea y acumula su consumo en n.
func (uc *CompleteSaleUseCase) priceLine(ctx context.Context, repos repository.Repositories, line dto.SaleItemRequest, n *needs) (*entity.SaleItem, error) {
	if line.Quantity < 1 {
		return nil, fmt.Errorf("%w: cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	if (line.ProductID == "") == (line.ComboID == "") {
		return nil, fmt.Errorf("%w: indique product_id o combo_id", domain.ErrInvalidInput)
	}

	if line.ComboID != "" {
		c, err := repos.Combos.GetByID(ctx, line.ComboID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: combo %s", domain.ErrNotFound, line.ComboID)
		}
		if !c.Active {
			return nil, fmt.Errorf("%w: combo %s inactivo", domain.ErrInvalidInput, c.Name)
		}
		price, selections, err := usecase.QuoteCombo(ctx, repos.Products, c, usecase.FromSelectionDTOs(line.Selections))
		if err != nil {
			return nil, err
		}
		for _, s := range selections {
			p, err := uc.product(ctx, repos, s.ProductID)
			if err != nil {
				return nil, err
			}
			if err := uc.admit(ctx, repos, p, nil, s.Quantity*line.Quantity, n); err != nil {
				return nil, err
			}
		}
		return &entity.SaleItem{
			ComboID:    c.ID,
			Name:       c.Name,
			Quantity:   line.Quantity,
			UnitPrice:  price,
			Subtotal:   price.Mul(decimal.NewFromInt(line.Quantity)),
			Selections: selections,
		}, nil
	}

	p, err := uc.product(ctx, repos, line.ProductID)
	if err != nil {
		return nil, err
	}
	unit := p.Price
	if len(line.Choices) > 0 {
		if !p.UsesRawMaterials {
			return nil, fmt.Errorf("%w: %s no tiene ingredientes variables", domain.ErrInvalidInput, p.Name)
		}
		g, _, err := inventory.LoadRecipe(ctx, repos, p.ID)
		if err != nil {
			return nil, err
		}
		if err := recipe.ValidateChoices(g, line.Choices); err != nil {
			return nil, err
		}
		unit = unit.Add(recipe.ExtraCharge(g, line.Choices))
	}
	if err := uc.admit(ctx, repos, p, line.Choices, line.Quantity, n); err != nil {
		return nil, err
	}
	return &entity.SaleItem{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  line.Quantity,
		UnitPrice: unit,
		Subtotal:  unit.Mul(decimal.NewFromInt(line.Quantity)),
		Choices:   line.Choices,
	}, nil
}

func (uc *CompleteSaleUseCase) product(ctx context.Context, repos repository.Repositories, id string) (*entity.Product, error) {
	p, err := repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if !p.Active {
		return nil, fmt.Errorf("%w: producto %s inactivo", domain.ErrInvalidInput, p.Name)
	}
	return p, nil
}

// admit verifica disponibilidad del producto (Stock Resolver o stock propio) y acumula su
// consumo. La verificación definitiva, sobre el consumo agregado, la hace checkAndConsume.
func (uc *CompleteSaleUseCase) admit(ctx context.Context, repos repository.Repositories, p *entity.Product, choices map[string]decimal.Decimal, qty int64, n *needs) error {
	available, err := uc.resolver.AvailableUnitsWith(ctx, repos, p)
	if err != nil {
		return err
	}
	if available < qty {
		return fmt.Errorf("%w: %s (disponibles %d, pedidos %d)", domain.ErrInsufficientStock, p.Name, available, qty)
	}
	if !p.UsesRawMaterials {
		n.products[p.ID] += qty
		return nil
	}
	g, materials, err := inventory.LoadRecipe(ctx, repos, p.ID)
	if err != nil {
		return err
	}
	per, err := recipe.Consumption(g, choices)
	if err != nil {
		return err
	}
	q := decimal.NewFromInt(qty)
	for id, amount := range per {
		n.raw[id] = n.raw[id].Add(amount.Mul(q))
		if m, ok := materials[id]; ok {
			n.names[id] = m.Name
		}
	}
	return nil
}

// checkAndConsume bloquea las filas en orden (materia prima y luego productos), verifica el
// consumo agregado y descuenta.
func (uc *CompleteSaleUseCase) checkAndConsume(ctx context.Context, repos repository.Repositories, n *needs) error {
	rawIDs := make([]string, 0, len(n.raw))
	for id := range n.raw {
		rawIDs = append(rawIDs, id)
	}
	sort.Strings(rawIDs)
	for _, id := range rawIDs {
		m, err := repos.RawMaterials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("%w: materia prima %s", domain.ErrMissingReference, id)
		}
		need := n.raw[id]
		if m.Stock.LessThan(need) {
			return fmt.Errorf("%w: %s (hay %s, se necesitan %s)", domain.ErrInsufficientStock, m.Name, m.Stock, need)
		}
		if err := repos.RawMaterials.UpdateStock(ctx, id, m.Stock.Sub(need)); err != nil {
			return err
		}
	}

	productIDs := make([]string, 0, len(n.products))
	for id := range n.products {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)
	for _, id := range productIDs {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		need := n.products[id]
		if p.Stock < need {
			return fmt.Errorf("%w: %s (hay %d, se necesitan %d)", domain.ErrInsufficientStock, p.Name, p.Stock, need)
		}
		if err := repos.Products.UpdateStock(ctx, id, p.Stock-need); err != nil {
			return err
		}
	}
	return nil
}

func (uc *CompleteSaleUseCase) notifyKitchen(ctx context.Context, sale *entity.Sale, names map[string]string) error {
	if uc.kitchen == nil {
		return nil
	}
	order := ports.KitchenOrder{SaleID: sale.ID, CreatedAt: sale.CreatedAt}
	for _, it := range sale.Items {
		ki := ports.KitchenItem{Name: it.Name, Quantity: it.Quantity}
		if len(it.Choices) > 0 {
			ki.Choices = make(map[string]string, len(it.Choices))
			for id, q := range it.Choices {
				name := names[id]
				if name == "" {
					name = id
				}
				ki.Choices[name] = q.String()
			}
		}
		order.Items = append(order.Items, ki)
	}

	kctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.kitchenTimeout)
	defer cancel()
	err := uc.kitchen.Notify(kctx, order)
	uc.metrics.KitchenNotification(err == nil)
	if err != nil {
		uc.log.Error().Err(err).Str("sale_id", sale.ID).Msg("aviso a cocina fallido")
	}
	return err
}

// GetByID obtiene una venta.
func (uc *CompleteSaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return ToSaleResponse(s), nil
}

// ToSaleResponse convierte la venta a su DTO de salida.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:          s.ID,
		Items:       make([]dto.SaleItemResponse, 0, len(s.Items)),
		Total:       s.Total,
		Paid:        s.Paid,
		Change:      s.Change,
		BillsIn:     s.BillsIn,
		ChangeBills: s.ChangeBills,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID:  it.ProductID,
			ComboID:    it.ComboID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal,
			Choices:    it.Choices,
			Selections: usecase.ToSelectionDTOs(it.Selections),
		})
	}
	return out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInsufficientChange):
		return "insufficient_change"
	case errors.Is(err, domain.ErrInsufficientPayment):
		return "insufficient_payment"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
		return "invalid"
	default:
		return "error"
	}
}
