package cash

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// MovementUseCase lectura del log de caja. La escritura solo ocurre a través de LedgerUseCase.
type MovementUseCase struct {
	repo         repository.CashMovementRepository
	defaultLimit int
}

// NewMovementUseCase construye el caso de uso. defaultLimit se usa cuando no se pide límite.
func NewMovementUseCase(repo repository.CashMovementRepository, defaultLimit int) *MovementUseCase {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &MovementUseCase{repo: repo, defaultLimit: defaultLimit}
}

// Recent últimos movimientos, del más reciente al más antiguo.
func (uc *MovementUseCase) Recent(ctx context.Context, limit int) (*dto.CashMovementListResponse, error) {
	if limit <= 0 {
		limit = uc.defaultLimit
	}
	list, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toMovementList(list), nil
}

// Filter aplica el filtro sobre el log completo. limit <= 0 no recorta.
func (uc *MovementUseCase) Filter(ctx context.Context, f cash.MovementFilter, limit int) (*dto.CashMovementListResponse, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := f.Apply(all)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return toMovementList(out), nil
}

// GetByID obtiene un movimiento.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*entity.CashMovement, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// ToMovementResponse convierte el movimiento a su DTO de salida.
func ToMovementResponse(m *entity.CashMovement) dto.CashMovementResponse {
	return dto.CashMovementResponse{
		ID:        m.ID,
		Type:      m.Type,
		BillsIn:   m.BillsIn,
		BillsOut:  m.BillsOut,
		Net:       m.NetValue(),
		SaleID:    m.SaleID,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

func toMovementList(list []*entity.CashMovement) *dto.CashMovementListResponse {
	out := &dto.CashMovementListResponse{Items: make([]dto.CashMovementResponse, 0, len(list))}
	for _, m := range list {
		out.Items = append(out.Items, ToMovementResponse(m))
	}
	return out
}
