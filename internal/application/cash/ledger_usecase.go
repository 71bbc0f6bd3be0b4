// Package cash casos de uso de la caja: contadores por denominación y log de movimientos.
// Toda mutación de contadores se persiste junto con su movimiento en una sola transacción.
package cash

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

// LedgerUseCase opera los contadores de billetes de la caja.
type LedgerUseCase struct {
	repos    repository.Repositories
	tx       repository.TxRunner
	universe []int64
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso. universe es el juego fijo de denominaciones.
func NewLedgerUseCase(
	repos repository.Repositories,
	tx repository.TxRunner,
	universe []int64,
	metrics ports.Metrics,
	log *logger.Logger,
) *LedgerUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &LedgerUseCase{
		repos:    repos,
		tx:       tx,
		universe: append([]int64(nil), universe...),
		metrics:  metrics,
		log:      log.Component("cash"),
	}
}

// State devuelve todas las denominaciones (incluidas las que están en cero) y el total.
func (uc *LedgerUseCase) State(ctx context.Context) (*dto.CashStateResponse, error) {
	rows, err := uc.repos.Denominations.List(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := cash.NewLedger(uc.universe, rows)
	if err != nil {
		return nil, err
	}
	updated := make(map[int64]time.Time, len(rows))
	for _, r := range rows {
		updated[r.Denomination] = r.UpdatedAt
	}
	out := &dto.CashStateResponse{Total: ledger.TotalValue()}
	for _, b := range ledger.Bills() {
		out.Bills = append(out.Bills, dto.BillDTO{
			Denomination: b.Denomination,
			Quantity:     b.Quantity,
			Value:        b.Value(),
			UpdatedAt:    updated[b.Denomination],
		})
	}
	return out, nil
}

// TotalValue Σ(denominación × cantidad) de la caja.
func (uc *LedgerUseCase) TotalValue(ctx context.Context) (int64, error) {
	ledger, err := uc.LoadLedger(ctx, uc.repos)
	if err != nil {
		return 0, err
	}
	return ledger.TotalValue(), nil
}

// Snapshot denominaciones con cantidad distinta de cero.
func (uc *LedgerUseCase) Snapshot(ctx context.Context) (entity.BillCounts, error) {
	ledger, err := uc.LoadLedger(ctx, uc.repos)
	if err != nil {
		return nil, err
	}
	return ledger.Snapshot(), nil
}

// ComputeChange desglose consultivo del cambio con los billetes actuales. No modifica la caja.
func (uc *LedgerUseCase) ComputeChange(ctx context.Context, amount int64) (*dto.ChangeResponse, error) {
	ledger, err := uc.LoadLedger(ctx, uc.repos)
	if err != nil {
		return nil, err
	}
	breakdown, err := cash.ComputeChange(amount, ledger.Spendable())
	if err != nil {
		return nil, err
	}
	return &dto.ChangeResponse{Amount: amount, Breakdown: breakdown}, nil
}

// RegisterManualMovement ingreso (manual_add) o retiro (manual_remove) de billetes.
func (uc *LedgerUseCase) RegisterManualMovement(ctx context.Context, in dto.ManualMovementRequest) (*dto.CashMovementResponse, error) {
	if len(in.Bills) == 0 {
		return nil, fmt.Errorf("%w: bills es requerido", domain.ErrInvalidInput)
	}
	for d, q := range in.Bills {
		if q <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para %d", domain.ErrInvalidInput, d)
		}
	}
	m := &entity.CashMovement{
		ID:        uuid.New().String(),
		Type:      in.Type,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: time.Now(),
	}
	switch in.Type {
	case entity.CashMovementManualAdd:
		m.BillsIn = entity.BillCounts(in.Bills).Clone()
	case entity.CashMovementManualRemove:
		m.BillsOut = entity.BillCounts(in.Bills).Clone()
	default:
		return nil, fmt.Errorf("%w: tipo %q (manual_add|manual_remove)", domain.ErrInvalidInput, in.Type)
	}

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		ledger, err := uc.LoadLedgerForUpdate(ctx, repos)
		if err != nil {
			return err
		}
		return uc.RecordInTx(ctx, repos, ledger, m)
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(m)
	return &out, nil
}

// CloseTill cierre de caja: deja todas las denominaciones en cero y registra el arqueo previo
// como bills_out de un movimiento cash_closing.
func (uc *LedgerUseCase) CloseTill(ctx context.Context, in dto.CloseTillRequest) (*dto.CloseTillResponse, error) {
	m := &entity.CashMovement{
		ID:        uuid.New().String(),
		Type:      entity.CashMovementClosing,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: time.Now(),
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		ledger, err := uc.LoadLedgerForUpdate(ctx, repos)
		if err != nil {
			return err
		}
		m.BillsOut = ledger.Close()
		return uc.persist(ctx, repos, ledger, m)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("movement_id", m.ID).Int64("total", m.BillsOut.Total()).Msg("cierre de caja")
	return &dto.CloseTillResponse{Movement: ToMovementResponse(m), Total: m.BillsOut.Total()}, nil
}

// LoadLedger arma el libro con las filas actuales, sin bloquear.
func (uc *LedgerUseCase) LoadLedger(ctx context.Context, repos repository.Repositories) (*cash.Ledger, error) {
	rows, err := repos.Denominations.List(ctx)
	if err != nil {
		return nil, err
	}
	return cash.NewLedger(uc.universe, rows)
}

// LoadLedgerForUpdate arma el libro bloqueando las filas hasta el fin de la transacción.
func (uc *LedgerUseCase) LoadLedgerForUpdate(ctx context.Context, repos repository.Repositories) (*cash.Ledger, error) {
	rows, err := repos.Denominations.ListForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	return cash.NewLedger(uc.universe, rows)
}

// RecordInTx aplica el movimiento al libro y persiste contadores y movimiento con los
// repositorios de la transacción del caller. Si falla, el caller debe hacer rollback.
func (uc *LedgerUseCase) RecordInTx(ctx context.Context, repos repository.Repositories, ledger *cash.Ledger, m *entity.CashMovement) error {
	if !entity.IsValidCashMovementType(m.Type) {
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, m.Type)
	}
	if err := ledger.Apply(m.BillsIn, m.BillsOut); err != nil {
		return err
	}
	return uc.persist(ctx, repos, ledger, m)
}

func (uc *LedgerUseCase) persist(ctx context.Context, repos repository.Repositories, ledger *cash.Ledger, m *entity.CashMovement) error {
	for _, b := range ledger.Changed() {
		b := b
		if err := repos.Denominations.Upsert(ctx, &b); err != nil {
			return err
		}
	}
	if err := repos.Movements.Create(ctx, m); err != nil {
		return err
	}
	uc.metrics.CashMovementRecorded(m.Type)
	return nil
}
