package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL. Las líneas se guardan como JSONB.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

type saleItemRow struct {
	ProductID  string                     `json:"product_id,omitempty"`
	ComboID    string                     `json:"combo_id,omitempty"`
	Name       string                     `json:"name"`
	Quantity   int64                      `json:"quantity"`
	UnitPrice  decimal.Decimal            `json:"unit_price"`
	Subtotal   decimal.Decimal            `json:"subtotal"`
	Choices    map[string]decimal.Decimal `json:"choices,omitempty"`
	Selections []selectionRow             `json:"selections,omitempty"`
}

type selectionRow struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

const saleColumns = `id, items, total, paid, change, bills_in, change_bills, notes, created_at`

// Create persiste una venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	rows := make([]saleItemRow, 0, len(s.Items))
	for _, it := range s.Items {
		row := saleItemRow{
			ProductID: it.ProductID, ComboID: it.ComboID, Name: it.Name, Quantity: it.Quantity,
			UnitPrice: it.UnitPrice, Subtotal: it.Subtotal, Choices: it.Choices,
		}
		for _, sel := range it.Selections {
			row.Selections = append(row.Selections, selectionRow(sel))
		}
		rows = append(rows, row)
	}
	items, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	in, err := marshalBills(s.BillsIn)
	if err != nil {
		return err
	}
	change, err := marshalBills(s.ChangeBills)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, items, s.Total, s.Paid, s.Change, in, change, s.Notes, s.CreatedAt,
	)
	if err != nil {
		return storeErr("insert sale", err)
	}
	return nil
}

// GetByID obtiene una venta. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("get sale", err)
	}
	return s, nil
}

// ListByDate ventas con created_at en [from, to], en orden cronológico.
func (r *SaleRepo) ListByDate(ctx context.Context, from, to time.Time) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+saleColumns+` FROM sales
		WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at`, from, to)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, storeErr("list sales", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, storeErr("scan sale", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s                 entity.Sale
		items, in, change []byte
	)
	if err := row.Scan(&s.ID, &items, &s.Total, &s.Paid, &s.Change, &in, &change, &s.Notes, &s.CreatedAt); err != nil {
		return nil, err
	}
	var rows []saleItemRow
	if err := json.Unmarshal(items, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal sale items: %w", err)
	}
	for _, r := range rows {
		it := entity.SaleItem{
			ProductID: r.ProductID, ComboID: r.ComboID, Name: r.Name, Quantity: r.Quantity,
			UnitPrice: r.UnitPrice, Subtotal: r.Subtotal, Choices: r.Choices,
		}
		for _, sel := range r.Selections {
			it.Selections = append(it.Selections, entity.ComboSelection(sel))
		}
		s.Items = append(s.Items, it)
	}
	var err error
	if s.BillsIn, err = unmarshalBills(in); err != nil {
		return nil, err
	}
	if s.ChangeBills, err = unmarshalBills(change); err != nil {
		return nil, err
	}
	return &s, nil
}
