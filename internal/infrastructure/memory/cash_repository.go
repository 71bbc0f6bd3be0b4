package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ repository.DenominationRepository = (*DenominationRepo)(nil)
	_ repository.CashMovementRepository = (*CashMovementRepo)(nil)
)

// DenominationRepo contadores de la caja en memoria.
type DenominationRepo struct{ v view }

// List devuelve las filas de mayor a menor denominación.
func (r *DenominationRepo) List(ctx context.Context) ([]*entity.DenominationBill, error) {
	var out []*entity.DenominationBill
	err := r.v.do(ctx, func(st *state) error {
		for _, b := range st.bills {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Denomination > out[j].Denomination })
	return out, err
}

// ListForUpdate igual que List; el bloqueo lo da la transacción.
func (r *DenominationRepo) ListForUpdate(ctx context.Context) ([]*entity.DenominationBill, error) {
	return r.List(ctx)
}

// Upsert crea o actualiza la fila de la denominación.
func (r *DenominationRepo) Upsert(ctx context.Context, bill *entity.DenominationBill) error {
	return r.v.do(ctx, func(st *state) error {
		b := *bill
		b.UpdatedAt = r.v.s.now()
		st.bills[b.Denomination] = b
		return nil
	})
}

// CashMovementRepo log de caja en memoria (solo agrega).
type CashMovementRepo struct{ v view }

// Create agrega el movimiento al final del log.
func (r *CashMovementRepo) Create(ctx context.Context, m *entity.CashMovement) error {
	return r.v.do(ctx, func(st *state) error {
		st.movements = append(st.movements, copyMovement(m))
		return nil
	})
}

// GetByID busca un movimiento. Devuelve nil, nil si no existe.
func (r *CashMovementRepo) GetByID(ctx context.Context, id string) (*entity.CashMovement, error) {
	var out *entity.CashMovement
	err := r.v.do(ctx, func(st *state) error {
		for i := range st.movements {
			if st.movements[i].ID == id {
				m := copyMovement(&st.movements[i])
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ListRecent devuelve los últimos limit movimientos, del más reciente al más antiguo.
func (r *CashMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	err := r.v.do(ctx, func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			if limit > 0 && len(out) == limit {
				break
			}
			m := copyMovement(&st.movements[i])
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

// ListAll devuelve el log completo en orden de inserción.
func (r *CashMovementRepo) ListAll(ctx context.Context) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	err := r.v.do(ctx, func(st *state) error {
		out = make([]*entity.CashMovement, 0, len(st.movements))
		for i := range st.movements {
			m := copyMovement(&st.movements[i])
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func copyMovement(m *entity.CashMovement) entity.CashMovement {
	c := *m
	c.BillsIn = m.BillsIn.Clone()
	c.BillsOut = m.BillsOut.Clone()
	return c
}
