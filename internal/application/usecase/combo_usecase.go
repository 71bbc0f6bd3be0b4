package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/combo"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ComboUseCase catálogo y cotización de combos.
type ComboUseCase struct {
	combos   repository.ComboRepository
	products repository.ProductRepository
}

// NewComboUseCase construye el caso de uso.
func NewComboUseCase(combos repository.ComboRepository, products repository.ProductRepository) *ComboUseCase {
	return &ComboUseCase{combos: combos, products: products}
}

// Create valida y registra un combo. Cada producto de cada casilla debe existir.
func (uc *ComboUseCase) Create(ctx context.Context, in dto.CreateComboRequest) (*dto.ComboResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(in.Slots) == 0 {
		return nil, fmt.Errorf("%w: name y al menos una casilla son requeridos", domain.ErrInvalidInput)
	}
	switch in.PriceType {
	case entity.ComboPriceFixed:
		if in.FixedPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio fijo negativo", domain.ErrInvalidInput)
		}
	case entity.ComboPriceCalculated:
		switch in.DiscountType {
		case "", entity.ComboDiscountFixed:
		case entity.ComboDiscountPercentage:
			if in.DiscountValue.GreaterThan(hundred) {
				return nil, fmt.Errorf("%w: descuento mayor a 100%%", domain.ErrInvalidInput)
			}
		default:
			return nil, fmt.Errorf("%w: tipo de descuento %q", domain.ErrInvalidInput, in.DiscountType)
		}
		if in.DiscountValue.IsNegative() {
			return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: tipo de precio %q", domain.ErrInvalidInput, in.PriceType)
	}

	slots := make([]entity.ComboSlot, 0, len(in.Slots))
	for i, s := range in.Slots {
		if s.DefaultProductID == "" || s.Quantity < 1 {
			return nil, fmt.Errorf("%w: casilla %d sin producto por defecto o cantidad", domain.ErrInvalidInput, i+1)
		}
		ids := uniqueIDs(append([]string{s.DefaultProductID}, s.ProductIDs...))
		for _, id := range ids {
			p, err := uc.products.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("%w: producto %s", domain.ErrMissingReference, id)
			}
		}
		slots = append(slots, entity.ComboSlot{
			ProductIDs:       ids,
			DefaultProductID: s.DefaultProductID,
			Quantity:         s.Quantity,
			IsDynamic:        s.IsDynamic,
		})
	}

	now := time.Now()
	c := &entity.Combo{
		ID:            uuid.New().String(),
		Name:          name,
		PriceType:     in.PriceType,
		FixedPrice:    in.FixedPrice,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		Slots:         slots,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.combos.Create(ctx, c); err != nil {
		return nil, err
	}
	return toComboResponse(c), nil
}

// GetByID obtiene un combo.
func (uc *ComboUseCase) GetByID(ctx context.Context, id string) (*dto.ComboResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toComboResponse(c), nil
}

// List lista los combos.
func (uc *ComboUseCase) List(ctx context.Context) ([]dto.ComboResponse, error) {
	list, err := uc.combos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComboResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toComboResponse(c))
	}
	return out, nil
}

// Delete elimina un combo.
func (uc *ComboUseCase) Delete(ctx context.Context, id string) error {
	return uc.combos.Delete(ctx, id)
}

// DefaultSelections selecciones por defecto del combo.
func (uc *ComboUseCase) DefaultSelections(ctx context.Context, id string) ([]dto.ComboSelectionDTO, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSelectionDTOs(combo.DefaultSelections(c)), nil
}

// Price cotiza el combo con las selecciones dadas (o las por defecto si vienen vacías).
func (uc *ComboUseCase) Price(ctx context.Context, id string, in dto.ComboPriceRequest) (*dto.ComboPriceResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	price, sel, err := QuoteCombo(ctx, uc.products, c, FromSelectionDTOs(in.Selections))
	if err != nil {
		return nil, err
	}
	return &dto.ComboPriceResponse{ComboID: c.ID, Price: price, Selections: ToSelectionDTOs(sel)}, nil
}

func (uc *ComboUseCase) get(ctx context.Context, id string) (*entity.Combo, error) {
	c, err := uc.combos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// QuoteCombo valida las selecciones contra las casillas y calcula el precio con los precios
// vigentes de products. Sin selecciones se usan las por defecto. Sirve tanto para cotizar como
// dentro de la transacción de venta.
func QuoteCombo(ctx context.Context, products repository.ProductRepository, c *entity.Combo, selections []entity.ComboSelection) (decimal.Decimal, []entity.ComboSelection, error) {
	if len(selections) == 0 {
		selections = combo.DefaultSelections(c)
	}
	if err := combo.ValidateSelections(c, selections); err != nil {
		return decimal.Zero, nil, err
	}
	prices := make(map[string]decimal.Decimal, len(selections))
	for _, s := range selections {
		if _, ok := prices[s.ProductID]; ok {
			continue
		}
		p, err := products.GetByID(ctx, s.ProductID)
		if err != nil {
			return decimal.Zero, nil, err
		}
		if p == nil {
			return decimal.Zero, nil, fmt.Errorf("%w: producto %s", domain.ErrMissingReference, s.ProductID)
		}
		prices[s.ProductID] = p.Price
	}
	price, err := combo.Price(c, selections, prices)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return price, selections, nil
}

// ToSelectionDTOs convierte selecciones de dominio a DTO.
func ToSelectionDTOs(in []entity.ComboSelection) []dto.ComboSelectionDTO {
	out := make([]dto.ComboSelectionDTO, 0, len(in))
	for _, s := range in {
		out = append(out, dto.ComboSelectionDTO{ProductID: s.ProductID, Quantity: s.Quantity})
	}
	return out
}

// FromSelectionDTOs convierte selecciones de DTO a dominio.
func FromSelectionDTOs(in []dto.ComboSelectionDTO) []entity.ComboSelection {
	out := make([]entity.ComboSelection, 0, len(in))
	for _, s := range in {
		out = append(out, entity.ComboSelection{ProductID: s.ProductID, Quantity: s.Quantity})
	}
	return out
}

func toComboResponse(c *entity.Combo) *dto.ComboResponse {
	slots := make([]dto.ComboSlotDTO, 0, len(c.Slots))
	for _, s := range c.Slots {
		slots = append(slots, dto.ComboSlotDTO{
			ProductIDs:       s.ProductIDs,
			DefaultProductID: s.DefaultProductID,
			Quantity:         s.Quantity,
			IsDynamic:        s.IsDynamic,
		})
	}
	return &dto.ComboResponse{
		ID:            c.ID,
		Name:          c.Name,
		PriceType:     c.PriceType,
		FixedPrice:    c.FixedPrice,
		DiscountType:  c.DiscountType,
		DiscountValue: c.DiscountValue,
		Slots:         slots,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func uniqueIDs(ids []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
