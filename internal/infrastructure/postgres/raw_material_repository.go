package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo materia prima sobre PostgreSQL (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialColumns = `id, name, unit, stock, cost_per_unit, min_stock, created_at, updated_at`

// Create persiste una materia prima. Nombre repetido -> domain.ErrDuplicate.
func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO raw_materials (`+rawMaterialColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.Name, m.Unit, m.Stock, m.CostPerUnit, m.MinStock, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: materia prima %q", domain.ErrDuplicate, m.Name)
		}
		return storeErr("insert raw material", err)
	}
	return nil
}

// GetByID obtiene una materia prima. Devuelve (nil, nil) si no existe.
func (r *RawMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.get(ctx, `SELECT `+rawMaterialColumns+` FROM raw_materials WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE).
func (r *RawMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.get(ctx, `SELECT `+rawMaterialColumns+` FROM raw_materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *RawMaterialRepo) get(ctx context.Context, query, id string) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Unit, &m.Stock, &m.CostPerUnit, &m.MinStock, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("get raw material", err)
	}
	return &m, nil
}

// List lista la materia prima por nombre.
func (r *RawMaterialRepo) List(ctx context.Context) ([]*entity.RawMaterial, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rawMaterialColumns+` FROM raw_materials ORDER BY name`)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("list raw materials", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.Unit, &m.Stock, &m.CostPerUnit, &m.MinStock, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, storeErr("scan raw material", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza nombre, unidad, costo y mínimo. No toca el stock.
func (r *RawMaterialRepo) Update(ctx context.Context, m *entity.RawMaterial) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE raw_materials SET name = $2, unit = $3, cost_per_unit = $4, min_stock = $5, updated_at = $6
		WHERE id = $1`,
		m.ID, m.Name, m.Unit, m.CostPerUnit, m.MinStock, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: materia prima %q", domain.ErrDuplicate, m.Name)
		}
		return storeErr("update raw material", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija las existencias (el caller ya validó que no queden negativas).
func (r *RawMaterialRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE raw_materials SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return storeErr("update raw material stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la materia prima. Si una receta la referencia, la FK responde con domain.ErrInUse.
func (r *RawMaterialRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM raw_materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: materia prima %s", domain.ErrInUse, id)
		}
		return storeErr("delete raw material", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
