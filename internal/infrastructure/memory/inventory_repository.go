package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)
	_ repository.RecipeLinkRepository  = (*RecipeLinkRepo)(nil)
)

// RawMaterialRepo materia prima en memoria.
type RawMaterialRepo struct{ v view }

// Create persiste una materia prima. ID o nombre repetido → domain.ErrDuplicate.
func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.materials[m.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.materials {
			if other.Name == m.Name {
				return domain.ErrDuplicate
			}
		}
		st.materials[m.ID] = *m
		return nil
	})
}

// GetByID devuelve nil, nil si no existe.
func (r *RawMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	var out *entity.RawMaterial
	err := r.v.do(ctx, func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

// GetForUpdate igual que GetByID; el bloqueo lo da la transacción.
func (r *RawMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, id)
}

// List ordena por nombre.
func (r *RawMaterialRepo) List(ctx context.Context) ([]*entity.RawMaterial, error) {
	var out []*entity.RawMaterial
	err := r.v.do(ctx, func(st *state) error {
		for _, m := range st.materials {
			m := m
			out = append(out, &m)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// Update reemplaza nombre, unidad, costo y mínimo. No toca el stock.
func (r *RawMaterialRepo) Update(ctx context.Context, m *entity.RawMaterial) error {
	return r.v.do(ctx, func(st *state) error {
		cur, ok := st.materials[m.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.materials {
			if id != m.ID && other.Name == m.Name {
				return domain.ErrDuplicate
			}
		}
		cur.Name = m.Name
		cur.Unit = m.Unit
		cur.CostPerUnit = m.CostPerUnit
		cur.MinStock = m.MinStock
		cur.UpdatedAt = m.UpdatedAt
		st.materials[cur.ID] = cur
		return nil
	})
}

// UpdateStock fija las existencias.
func (r *RawMaterialRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	return r.v.do(ctx, func(st *state) error {
		cur, ok := st.materials[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Stock = stock
		cur.UpdatedAt = r.v.s.now()
		st.materials[cur.ID] = cur
		return nil
	})
}

// Delete elimina la materia prima. Si algún enlace la referencia → domain.ErrInUse.
func (r *RawMaterialRepo) Delete(ctx context.Context, id string) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.materials[id]; !ok {
			return domain.ErrNotFound
		}
		for _, links := range st.links {
			for _, l := range links {
				if l.RawMaterialID == id {
					return fmt.Errorf("%w: receta de %s", domain.ErrInUse, l.ProductID)
				}
			}
		}
		delete(st.materials, id)
		return nil
	})
}

// RecipeLinkRepo enlaces de receta en memoria.
type RecipeLinkRepo struct{ v view }

// ListByProduct devuelve los enlaces del producto.
func (r *RecipeLinkRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLink, error) {
	var out []*entity.RecipeLink
	err := r.v.do(ctx, func(st *state) error {
		for _, l := range st.links[productID] {
			l := l
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

// ListByRawMaterial recorre todas las recetas buscando la materia prima.
func (r *RecipeLinkRepo) ListByRawMaterial(ctx context.Context, rawMaterialID string) ([]*entity.RecipeLink, error) {
	var out []*entity.RecipeLink
	err := r.v.do(ctx, func(st *state) error {
		for _, links := range st.links {
			for _, l := range links {
				if l.RawMaterialID == rawMaterialID {
					l := l
					out = append(out, &l)
				}
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, err
}

// ReplaceForProduct reemplaza la receta completa del producto.
func (r *RecipeLinkRepo) ReplaceForProduct(ctx context.Context, productID string, links []*entity.RecipeLink) error {
	return r.v.do(ctx, func(st *state) error {
		if len(links) == 0 {
			delete(st.links, productID)
			return nil
		}
		key := strings.Clone(productID)
		next := make([]entity.RecipeLink, 0, len(links))
		for _, l := range links {
			c := *l
			c.ProductID = key
			c.RawMaterialID = strings.Clone(l.RawMaterialID)
			next = append(next, c)
		}
		st.links[key] = next
		return nil
	})
}
