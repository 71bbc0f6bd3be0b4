package postgres

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.RecipeLinkRepository = (*RecipeLinkRepo)(nil)

// RecipeLinkRepo enlaces de receta sobre PostgreSQL (usable con pool o tx).
type RecipeLinkRepo struct {
	q Querier
}

// NewRecipeLinkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeLinkRepository(q Querier) *RecipeLinkRepo {
	return &RecipeLinkRepo{q: q}
}

const recipeLinkColumns = `id, product_id, raw_material_id, quantity, removable, is_variable, min_quantity,
	max_quantity, default_quantity, price_per_extra_unit, linked_to, linked_multiplier`

// ListByProduct enlaces de un producto en el orden en que se guardaron.
func (r *RecipeLinkRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLink, error) {
	return r.list(ctx, `SELECT `+recipeLinkColumns+` FROM recipe_links WHERE product_id = $1 ORDER BY position`, productID)
}

// ListByRawMaterial enlaces que consumen la materia prima (índice por raw_material_id).
func (r *RecipeLinkRepo) ListByRawMaterial(ctx context.Context, rawMaterialID string) ([]*entity.RecipeLink, error) {
	return r.list(ctx, `SELECT `+recipeLinkColumns+` FROM recipe_links WHERE raw_material_id = $1 ORDER BY product_id, position`, rawMaterialID)
}

func (r *RecipeLinkRepo) list(ctx context.Context, query, id string) ([]*entity.RecipeLink, error) {
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("list recipe links", err)
	}
	defer rows.Close()
	var list []*entity.RecipeLink
	for rows.Next() {
		var l entity.RecipeLink
		if err := rows.Scan(&l.ID, &l.ProductID, &l.RawMaterialID, &l.Quantity, &l.Removable, &l.IsVariable,
			&l.MinQuantity, &l.MaxQuantity, &l.DefaultQuantity, &l.PricePerExtraUnit, &l.LinkedTo, &l.LinkedMultiplier); err != nil {
			return nil, storeErr("scan recipe link", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ReplaceForProduct borra la receta del producto y guarda links. Debe correr dentro de una tx.
func (r *RecipeLinkRepo) ReplaceForProduct(ctx context.Context, productID string, links []*entity.RecipeLink) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_links WHERE product_id = $1`, productID); err != nil {
		return storeErr("delete recipe links", err)
	}
	for i, l := range links {
		_, err := r.q.Exec(ctx, `
			INSERT INTO recipe_links (`+recipeLinkColumns+`, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			l.ID, productID, l.RawMaterialID, l.Quantity, l.Removable, l.IsVariable, l.MinQuantity,
			l.MaxQuantity, l.DefaultQuantity, l.PricePerExtraUnit, l.LinkedTo, l.LinkedMultiplier, i,
		)
		if err != nil {
			return storeErr("insert recipe link", err)
		}
	}
	return nil
}
