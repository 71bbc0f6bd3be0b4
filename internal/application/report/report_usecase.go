// Package report reportes de solo lectura sobre caja e inventario.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	appcash "github.com/jhoicas/PuntoVenta-api/internal/application/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/cash"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// ReportUseCase reportes de caja e inventario.
type ReportUseCase struct {
	repos     repository.Repositories
	ledger    *appcash.LedgerUseCase
	generator ports.ClosingReceiptGenerator
	storeName string
}

// NewReportUseCase construye el caso de uso. storeName aparece en el comprobante de cierre.
func NewReportUseCase(repos repository.Repositories, ledger *appcash.LedgerUseCase, generator ports.ClosingReceiptGenerator, storeName string) *ReportUseCase {
	return &ReportUseCase{repos: repos, ledger: ledger, generator: generator, storeName: storeName}
}

// CashSummary totales de entradas y salidas por tipo de movimiento en [from, to].
// from/to nil no acotan.
func (uc *ReportUseCase) CashSummary(ctx context.Context, from, to *time.Time) (*dto.CashSummaryResponse, error) {
	all, err := uc.repos.Movements.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	movs := cash.MovementFilter{From: from, To: to}.Apply(all)

	byType := map[string]*dto.CashTypeSummary{}
	out := &dto.CashSummaryResponse{From: from, To: to}
	for _, m := range movs {
		s, ok := byType[m.Type]
		if !ok {
			s = &dto.CashTypeSummary{Type: m.Type}
			byType[m.Type] = s
		}
		s.Count++
		s.TotalIn += m.BillsIn.Total()
		s.TotalOut += m.BillsOut.Total()
		if m.Type == entity.CashMovementSale {
			out.SalesCount++
		}
	}
	for _, s := range byType {
		out.ByType = append(out.ByType, *s)
		out.TotalIn += s.TotalIn
		out.TotalOut += s.TotalOut
	}
	sort.Slice(out.ByType, func(i, j int) bool { return out.ByType[i].Type < out.ByType[j].Type })
	if out.ByType == nil {
		out.ByType = []dto.CashTypeSummary{}
	}
	out.Net = out.TotalIn - out.TotalOut

	sales, err := uc.repos.Sales.ListByDate(ctx, orMin(from), orMax(to))
	if err != nil {
		return nil, err
	}
	out.SalesTotal = decimal.Zero
	for _, s := range sales {
		out.SalesTotal = out.SalesTotal.Add(s.Total)
	}

	drawer, err := uc.ledger.TotalValue(ctx)
	if err != nil {
		return nil, err
	}
	out.DrawerNow = drawer
	return out, nil
}

// StockReport valorización de la materia prima con marca de faltante.
func (uc *ReportUseCase) StockReport(ctx context.Context) (*dto.StockReportResponse, error) {
	list, err := uc.repos.RawMaterials.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StockReportResponse{Items: make([]dto.RawMaterialResponse, 0, len(list)), TotalValue: decimal.Zero}
	for _, m := range list {
		out.Items = append(out.Items, inventory.ToRawMaterialResponse(m))
		out.TotalValue = out.TotalValue.Add(m.StockValue())
		if m.IsLow() {
			out.LowCount++
		}
	}
	return out, nil
}

// ClosingReceiptPDF genera el comprobante PDF de un cierre de caja.
// Devuelve domain.ErrInvalidInput si el movimiento no es un cierre.
func (uc *ReportUseCase) ClosingReceiptPDF(ctx context.Context, movementID string) ([]byte, string, error) {
	m, err := uc.repos.Movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, "", err
	}
	if m == nil {
		return nil, "", domain.ErrNotFound
	}
	if m.Type != entity.CashMovementClosing {
		return nil, "", fmt.Errorf("%w: el movimiento %s es de tipo %s", domain.ErrInvalidInput, m.ID, m.Type)
	}

	receipt := ports.ClosingReceipt{
		MovementID: m.ID,
		ClosedAt:   m.CreatedAt,
		Total:      m.BillsOut.Total(),
		Notes:      m.Notes,
		StoreName:  uc.storeName,
	}
	for _, d := range m.BillsOut.Denominations() {
		q := m.BillsOut[d]
		receipt.Bills = append(receipt.Bills, ports.ReceiptLine{Denomination: d, Quantity: q, Value: d * q})
	}
	pdf, err := uc.generator.GenerateClosingReceipt(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante de cierre: %w", err)
	}
	return pdf, fmt.Sprintf("cierre-%s.pdf", m.CreatedAt.Format("20060102-150405")), nil
}


func orMin(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func orMax(t *time.Time) time.Time {
	if t == nil {
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return *t
}
