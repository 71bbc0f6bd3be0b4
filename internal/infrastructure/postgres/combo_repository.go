package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.ComboRepository = (*ComboRepo)(nil)

// ComboRepo combos sobre PostgreSQL. Las casillas se guardan como JSONB.
type ComboRepo struct {
	q Querier
}

// NewComboRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComboRepository(q Querier) *ComboRepo {
	return &ComboRepo{q: q}
}

type slotRow struct {
	ProductIDs       []string `json:"product_ids"`
	DefaultProductID string   `json:"default_product_id"`
	Quantity         int64    `json:"quantity"`
	IsDynamic        bool     `json:"is_dynamic"`
}

const comboColumns = `id, name, price_type, fixed_price, discount_type, discount_value, slots, active, created_at, updated_at`

// Create persiste un combo.
func (r *ComboRepo) Create(ctx context.Context, c *entity.Combo) error {
	rows := make([]slotRow, 0, len(c.Slots))
	for _, s := range c.Slots {
		rows = append(rows, slotRow(s))
	}
	slots, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal combo slots: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO combos (`+comboColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.PriceType, c.FixedPrice, c.DiscountType, c.DiscountValue, slots, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert combo", err)
	}
	return nil
}

// GetByID obtiene un combo. Devuelve (nil, nil) si no existe.
func (r *ComboRepo) GetByID(ctx context.Context, id string) (*entity.Combo, error) {
	c, err := scanCombo(r.q.QueryRow(ctx, `SELECT `+comboColumns+` FROM combos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("get combo", err)
	}
	return c, nil
}

// List lista los combos por nombre.
func (r *ComboRepo) List(ctx context.Context) ([]*entity.Combo, error) {
	rows, err := r.q.Query(ctx, `SELECT `+comboColumns+` FROM combos ORDER BY name`)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("list combos", err)
	}
	defer rows.Close()
	var list []*entity.Combo
	for rows.Next() {
		c, err := scanCombo(rows)
		if err != nil {
			return nil, storeErr("scan combo", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina un combo.
func (r *ComboRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM combos WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete combo", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCombo(row pgx.Row) (*entity.Combo, error) {
	var (
		c     entity.Combo
		slots []byte
	)
	if err := row.Scan(&c.ID, &c.Name, &c.PriceType, &c.FixedPrice, &c.DiscountType, &c.DiscountValue,
		&slots, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	var rows []slotRow
	if err := json.Unmarshal(slots, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal combo slots: %w", err)
	}
	for _, s := range rows {
		c.Slots = append(c.Slots, entity.ComboSlot(s))
	}
	return &c, nil
}
