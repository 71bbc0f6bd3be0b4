package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo log de caja sobre PostgreSQL. Los billetes se guardan como JSONB
// {"denominación": cantidad}. El orden de inserción lo da seq.
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

const movementColumns = `id, type, bills_in, bills_out, COALESCE(sale_id::text, ''), notes, created_at`

// Create agrega un movimiento al log.
func (r *CashMovementRepo) Create(ctx context.Context, m *entity.CashMovement) error {
	in, err := marshalBills(m.BillsIn)
	if err != nil {
		return err
	}
	out, err := marshalBills(m.BillsOut)
	if err != nil {
		return err
	}
	var saleID any
	if m.SaleID != "" {
		saleID = m.SaleID
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO cash_movements (id, type, bills_in, bills_out, sale_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Type, in, out, saleID, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return storeErr("insert cash movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento. Devuelve (nil, nil) si no existe.
func (r *CashMovementRepo) GetByID(ctx context.Context, id string) (*entity.CashMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM cash_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("get cash movement", err)
	}
	return m, nil
}

// ListRecent últimos limit movimientos, del más reciente al más antiguo.
func (r *CashMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.CashMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM cash_movements ORDER BY seq DESC LIMIT $1`, limit)
}

// ListAll el log completo en orden de inserción.
func (r *CashMovementRepo) ListAll(ctx context.Context) ([]*entity.CashMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM cash_movements ORDER BY seq`)
}

func (r *CashMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.CashMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("list cash movements", err)
	}
	defer rows.Close()
	var list []*entity.CashMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, storeErr("scan cash movement", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.CashMovement, error) {
	var (
		m       entity.CashMovement
		in, out []byte
	)
	if err := row.Scan(&m.ID, &m.Type, &in, &out, &m.SaleID, &m.Notes, &m.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if m.BillsIn, err = unmarshalBills(in); err != nil {
		return nil, err
	}
	if m.BillsOut, err = unmarshalBills(out); err != nil {
		return nil, err
	}
	return &m, nil
}

func marshalBills(b entity.BillCounts) ([]byte, error) {
	if b == nil {
		b = entity.BillCounts{}
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal bills: %w", err)
	}
	return raw, nil
}

func unmarshalBills(raw []byte) (entity.BillCounts, error) {
	out := entity.BillCounts{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal bills: %w", err)
	}
	return out, nil
}
