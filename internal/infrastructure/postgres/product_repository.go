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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category, price, production_cost, uses_raw_materials, stock, active, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.Category, p.Price, p.ProductionCost, p.UsesRawMaterials, p.Stock, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("get product", err)
	}
	return p, nil
}

// List lista productos con paginación, los más recientes primero. limit <= 0 no limita.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, lim, offset)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storeErr("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables. No modifica costo de producción ni la marca de receta.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, category = $3, price = $4, stock = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.Name, p.Category, p.Price, p.Stock, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return storeErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo de producción (usado por el recálculo de costos).
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	return r.exec(ctx, "update product cost",
		`UPDATE products SET production_cost = $2, updated_at = now() WHERE id = $1`, productID, cost)
}

// UpdateStock fija el stock propio del producto (productos sin receta).
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, stock int64) error {
	return r.exec(ctx, "update product stock",
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, productID, stock)
}

// SetUsesRawMaterials marca si el producto se arma con materia prima.
func (r *ProductRepo) SetUsesRawMaterials(ctx context.Context, productID string, uses bool) error {
	return r.exec(ctx, "set uses raw materials",
		`UPDATE products SET uses_raw_materials = $2, updated_at = now() WHERE id = $1`, productID, uses)
}

func (r *ProductRepo) exec(ctx context.Context, op, query string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return storeErr(op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %v", domain.ErrNotFound, args[0])
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.ProductionCost, &p.UsesRawMaterials,
		&p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
