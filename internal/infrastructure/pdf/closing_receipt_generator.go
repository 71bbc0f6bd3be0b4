// Package pdf genera el comprobante de cierre de caja.
//
// Layout de la página A5:
//
//	┌────────────────────────────────────────────┐
//	│  HEADER: Tienda │ CIERRE DE CAJA + fecha    │
//	│  ────────────────────────────────────────  │
//	│  TABLA: Denominación | Cant. | Valor        │
//	│  ────────────────────────────────────────  │
//	│  TOTAL ARQUEADO                            │
//	│  Notas + QR con el ID del movimiento       │
//	└────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
)

var _ ports.ClosingReceiptGenerator = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa ports.ClosingReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateClosingReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateClosingReceipt(_ context.Context, r ports.ClosingReceipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre de caja", true).
		WithAuthor(nonEmpty(r.StoreName, "Punto de venta"), true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(billRows(r.Bills)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(r.Total))
	m.AddRows(footerRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(r ports.ClosingReceipt) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.StoreName, "Punto de venta"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("CIERRE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(r.ClosedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Denominación", 5, align.Left),
		h("Cant.", 3, align.Center),
		h("Valor", 4, align.Right),
	)
}

func billRows(lines []ports.ReceiptLine) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("La caja estaba vacía.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(6).Add(
			col.New(5).Add(text.New("$"+formatMoney(l.Denomination), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(strconv.FormatInt(l.Quantity, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New("$"+formatMoney(l.Value), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return out
}

func totalRow(total int64) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("TOTAL ARQUEADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

func footerRows(r ports.ClosingReceipt) []core.Row {
	rows := []core.Row{row.New(4)}
	if r.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Notas: "+r.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	rows = append(rows, row.New(30).Add(
		col.New(4).Add(code.NewQr(r.MovementID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Movimiento", props.Text{Style: fontstyle.Bold, Size: 7, Top: 4, Left: 3}),
			text.New(r.MovementID, props.Text{Size: 7, Top: 9, Left: 3, Color: colorGray}),
			text.New("La caja quedó en cero después de este cierre.", props.Text{Size: 7, Top: 16, Left: 3, Color: colorGray}),
		),
	))
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney pesos con punto de miles. Ej: 25000 → "25.000", -1500 → "-1.500".
func formatMoney(v int64) string {
	s := strconv.FormatInt(v, 10)
	sign := ""
	if v < 0 {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
