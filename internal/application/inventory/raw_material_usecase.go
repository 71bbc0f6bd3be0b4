package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

// reorderFactor el pedido sugerido lleva las existencias a 1.5 veces el mínimo.
var reorderFactor = decimal.NewFromFloat(1.5)

// RawMaterialUseCase administra la materia prima. Toda escritura de existencias o costo corre
// en una transacción con la fila bloqueada (SELECT FOR UPDATE).
type RawMaterialUseCase struct {
	repos    repository.Repositories
	tx       repository.TxRunner
	resolver *ResolverUseCase
	log      *logger.Logger
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(repos repository.Repositories, tx repository.TxRunner, resolver *ResolverUseCase, log *logger.Logger) *RawMaterialUseCase {
	return &RawMaterialUseCase{repos: repos, tx: tx, resolver: resolver, log: log.Component("raw_materials")}
}

// Create registra una materia prima nueva.
func (uc *RawMaterialUseCase) Create(ctx context.Context, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !validUnit(in.Unit) {
		return nil, fmt.Errorf("%w: nombre y unidad (count|weight) son requeridos", domain.ErrInvalidInput)
	}
	if in.Stock.IsNegative() || in.CostPerUnit.IsNegative() || in.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: stock, costo y mínimo no pueden ser negativos", domain.ErrInvalidInput)
	}
	now := time.Now()
	m := &entity.RawMaterial{
		ID:          uuid.New().String(),
		Name:        name,
		Unit:        in.Unit,
		Stock:       in.Stock,
		CostPerUnit: in.CostPerUnit,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repos.RawMaterials.Create(ctx, m); err != nil {
		return nil, err
	}
	out := ToRawMaterialResponse(m)
	return &out, nil
}

// GetByID obtiene una materia prima.
func (uc *RawMaterialUseCase) GetByID(ctx context.Context, id string) (*dto.RawMaterialResponse, error) {
	m, err := uc.repos.RawMaterials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := ToRawMaterialResponse(m)
	return &out, nil
}

// List lista toda la materia prima ordenada por nombre.
func (uc *RawMaterialUseCase) List(ctx context.Context) ([]dto.RawMaterialResponse, error) {
	list, err := uc.repos.RawMaterials.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToRawMaterialResponse(m))
	}
	return out, nil
}

// Update modifica los datos de catálogo. Si cambia el costo unitario se recalculan, en la
// misma transacción, los costos de todos los productos que la usan.
func (uc *RawMaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateRawMaterialRequest) (*dto.RawMaterialUpdateResponse, error) {
	var (
		updated  *entity.RawMaterial
		affected = []string{}
	)
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		m, err := repos.RawMaterials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		prevCost := m.CostPerUnit
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
			}
			m.Name = name
		}
		if in.Unit != nil {
			if !validUnit(*in.Unit) {
				return fmt.Errorf("%w: unidad %q", domain.ErrInvalidInput, *in.Unit)
			}
			m.Unit = *in.Unit
		}
		if in.CostPerUnit != nil {
			if in.CostPerUnit.IsNegative() {
				return fmt.Errorf("%w: costo negativo", domain.ErrInvalidInput)
			}
			m.CostPerUnit = *in.CostPerUnit
		}
		if in.MinStock != nil {
			if in.MinStock.IsNegative() {
				return fmt.Errorf("%w: mínimo negativo", domain.ErrInvalidInput)
			}
			m.MinStock = *in.MinStock
		}
		m.UpdatedAt = time.Now()
		if err := repos.RawMaterials.Update(ctx, m); err != nil {
			return err
		}
		if !prevCost.Equal(m.CostPerUnit) {
			ids, err := uc.resolver.RecalculateAffectedInTx(ctx, repos, m.ID)
			if err != nil {
				return err
			}
			affected = ids
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.RawMaterialUpdateResponse{RawMaterialResponse: ToRawMaterialResponse(updated), RecalculatedProducts: affected}, nil
}

// AdjustStock suma delta (con signo) a las existencias. Nunca quedan negativas.
func (uc *RawMaterialUseCase) AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (*dto.RawMaterialResponse, error) {
	var updated *entity.RawMaterial
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		m, err := repos.RawMaterials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		next := m.Stock.Add(delta)
		if next.IsNegative() {
			return fmt.Errorf("%w: %s tiene %s, se piden %s", domain.ErrInsufficientStock, m.Name, m.Stock, delta.Neg())
		}
		if err := repos.RawMaterials.UpdateStock(ctx, id, next); err != nil {
			return err
		}
		m.Stock = next
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("raw_material_id", id).Str("delta", delta.String()).Str("stock", updated.Stock.String()).Msg("stock ajustado")
	out := ToRawMaterialResponse(updated)
	return &out, nil
}

// Restock registra una compra: suma existencias y lleva el costo unitario al promedio ponderado.
func (uc *RawMaterialUseCase) Restock(ctx context.Context, id string, in dto.RestockRequest) (*dto.RawMaterialUpdateResponse, error) {
	if !in.Quantity.IsPositive() || in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: la compra requiere cantidad positiva y costo no negativo", domain.ErrInvalidInput)
	}
	var (
		updated  *entity.RawMaterial
		affected = []string{}
	)
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		m, err := repos.RawMaterials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		cost := inventory.WeightedAverageCost(m.Stock, m.CostPerUnit, in.Quantity, in.UnitCost)
		m.Stock = m.Stock.Add(in.Quantity)
		if err := repos.RawMaterials.UpdateStock(ctx, id, m.Stock); err != nil {
			return err
		}
		if !cost.Equal(m.CostPerUnit) {
			m.CostPerUnit = cost
			m.UpdatedAt = time.Now()
			if err := repos.RawMaterials.Update(ctx, m); err != nil {
				return err
			}
			if affected, err = uc.resolver.RecalculateAffectedInTx(ctx, repos, id); err != nil {
				return err
			}
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.RawMaterialUpdateResponse{RawMaterialResponse: ToRawMaterialResponse(updated), RecalculatedProducts: affected}, nil
}

// Delete elimina la materia prima. Si alguna receta la referencia devuelve domain.ErrInUse.
func (uc *RawMaterialUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		m, err := repos.RawMaterials.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		links, err := repos.RecipeLinks.ListByRawMaterial(ctx, id)
		if err != nil {
			return err
		}
		if len(links) > 0 {
			return fmt.Errorf("%w: %s se usa en %d receta(s)", domain.ErrInUse, m.Name, len(links))
		}
		return repos.RawMaterials.Delete(ctx, id)
	})
}

// LowStock lista la materia prima en o bajo su mínimo con la compra sugerida para volver
// a 1.5 veces el mínimo.
func (uc *RawMaterialUseCase) LowStock(ctx context.Context) ([]dto.LowStockItemResponse, error) {
	list, err := uc.repos.RawMaterials.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []dto.LowStockItemResponse{}
	for _, m := range list {
		if !m.IsLow() {
			continue
		}
		suggested := m.MinStock.Mul(reorderFactor).Sub(m.Stock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		out = append(out, dto.LowStockItemResponse{
			RawMaterialResponse: ToRawMaterialResponse(m),
			SuggestedQuantity:   suggested,
			EstimatedCost:       suggested.Mul(m.CostPerUnit).Round(2),
		})
	}
	return out, nil
}

func validUnit(u string) bool {
	return u == entity.UnitCount || u == entity.UnitWeight
}
