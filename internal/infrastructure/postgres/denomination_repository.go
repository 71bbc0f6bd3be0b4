package postgres

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.DenominationRepository = (*DenominationRepo)(nil)

// DenominationRepo contadores de billetes sobre PostgreSQL (usable con pool o tx).
type DenominationRepo struct {
	q Querier
}

// NewDenominationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDenominationRepository(q Querier) *DenominationRepo {
	return &DenominationRepo{q: q}
}

// List devuelve las filas existentes de mayor a menor denominación.
func (r *DenominationRepo) List(ctx context.Context) ([]*entity.DenominationBill, error) {
	return r.list(ctx, `SELECT denomination, quantity, updated_at FROM denominations ORDER BY denomination DESC`)
}

// ListForUpdate igual que List pero bloquea las filas (SELECT FOR UPDATE).
func (r *DenominationRepo) ListForUpdate(ctx context.Context) ([]*entity.DenominationBill, error) {
	return r.list(ctx, `SELECT denomination, quantity, updated_at FROM denominations ORDER BY denomination DESC FOR UPDATE`)
}

func (r *DenominationRepo) list(ctx context.Context, query string) ([]*entity.DenominationBill, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("list denominations", err)
	}
	defer rows.Close()
	var list []*entity.DenominationBill
	for rows.Next() {
		var b entity.DenominationBill
		if err := rows.Scan(&b.Denomination, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, storeErr("scan denomination", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Upsert crea la fila la primera vez que se referencia la denominación.
func (r *DenominationRepo) Upsert(ctx context.Context, bill *entity.DenominationBill) error {
	query := `
		INSERT INTO denominations (denomination, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (denomination)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, bill.Denomination, bill.Quantity); err != nil {
		return storeErr("upsert denomination", err)
	}
	return nil
}
