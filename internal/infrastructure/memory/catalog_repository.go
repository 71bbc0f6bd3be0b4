package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.ComboRepository   = (*ComboRepo)(nil)
	_ repository.SaleRepository    = (*SaleRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// List ordena por fecha de creación descendente, igual que el adaptador SQL.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	err := r.v.do(ctx, func(st *state) error {
		for _, p := range st.products {
			p := p
			all = append(all, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.mutate(ctx, p.ID, func(cur *entity.Product) {
		cur.Name = p.Name
		cur.Category = p.Category
		cur.Price = p.Price
		cur.Stock = p.Stock
		cur.Active = p.Active
		if !p.UpdatedAt.IsZero() {
			cur.UpdatedAt = p.UpdatedAt
		}
	})
}

func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	return r.mutate(ctx, productID, func(cur *entity.Product) { cur.ProductionCost = cost })
}

func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, stock int64) error {
	return r.mutate(ctx, productID, func(cur *entity.Product) { cur.Stock = stock })
}

func (r *ProductRepo) SetUsesRawMaterials(ctx context.Context, productID string, uses bool) error {
	return r.mutate(ctx, productID, func(cur *entity.Product) { cur.UsesRawMaterials = uses })
}

func (r *ProductRepo) mutate(ctx context.Context, id string, fn func(cur *entity.Product)) error {
	return r.v.do(ctx, func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.UpdatedAt = r.v.s.now()
		fn(&cur)
		// la clave guardada, no id: id puede apuntar a un buffer del llamador
		st.products[cur.ID] = cur
		return nil
	})
}

// ComboRepo combos en memoria.
type ComboRepo struct{ v view }

func (r *ComboRepo) Create(ctx context.Context, c *entity.Combo) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.combos[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.combos[c.ID] = copyCombo(c)
		return nil
	})
}

func (r *ComboRepo) GetByID(ctx context.Context, id string) (*entity.Combo, error) {
	var out *entity.Combo
	err := r.v.do(ctx, func(st *state) error {
		if c, ok := st.combos[id]; ok {
			cc := copyCombo(&c)
			out = &cc
		}
		return nil
	})
	return out, err
}

func (r *ComboRepo) List(ctx context.Context) ([]*entity.Combo, error) {
	var out []*entity.Combo
	err := r.v.do(ctx, func(st *state) error {
		for _, c := range st.combos {
			cc := copyCombo(&c)
			out = append(out, &cc)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *ComboRepo) Delete(ctx context.Context, id string) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.combos[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.combos, id)
		return nil
	})
}

func copyCombo(c *entity.Combo) entity.Combo {
	cc := *c
	cc.Slots = make([]entity.ComboSlot, len(c.Slots))
	for i, s := range c.Slots {
		s.ProductIDs = append([]string(nil), s.ProductIDs...)
		cc.Slots[i] = s
	}
	return cc
}

// SaleRepo ventas en memoria.
type SaleRepo struct{ v view }

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sales[s.ID] = *s
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.do(ctx, func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// ListByDate devuelve las ventas con CreatedAt en [from, to], más antiguas primero.
func (r *SaleRepo) ListByDate(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.v.do(ctx, func(st *state) error {
		for _, s := range st.sales {
			if s.CreatedAt.Before(from) || s.CreatedAt.After(to) {
				continue
			}
			s := s
			out = append(out, &s)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}
