// Package pdf genera el recibo imprimible de una venta cerrada.
//
// Layout de la página (80 mm de ancho, alto variable tipo tirilla):
//
//	┌──────────────────────────────┐
//	│  Negocio + N° transacción    │
//	│  Fecha / cajero              │
//	│  ──────────────────────────  │
//	│  Cant | Artículo | Total     │
//	│  ──────────────────────────  │
//	│  Subtotal / Desc. / Imp.     │
//	│  Domicilio / TOTAL           │
//	│  ──────────────────────────  │
//	│  Texto del recibo + QR       │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/pkg/money"
)

var _ ports.ReceiptPDFGenerator = (*ReceiptPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptPDFGenerator implementa ports.ReceiptPDFGenerator con Maroto v2.
type ReceiptPDFGenerator struct {
	profile entity.BusinessProfile
}

// NewReceiptPDFGenerator construye el generador.
func NewReceiptPDFGenerator(profile entity.BusinessProfile) *ReceiptPDFGenerator {
	return &ReceiptPDFGenerator{profile: profile}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes. receiptText es el texto
// generado por IA; vacío omite la sección.
func (g *ReceiptPDFGenerator) GenerateReceiptPDF(_ context.Context, sale entity.SaleFinalized, receiptText string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(80, 297).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Recibo "+sale.TransactionID, true).
		WithAuthor(g.profile.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.lineRows(sale.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRows(sale)...)

	if sale.Delivery != nil {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Domicilio: %s, %s", sale.Delivery.CustomerName, sale.Delivery.Address),
				props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}

	m.AddRows(line.NewRow(2))
	if t := strings.TrimSpace(receiptText); t != "" {
		for _, p := range strings.Split(t, "\n") {
			if strings.TrimSpace(p) == "" {
				continue
			}
			m.AddRows(text.NewRow(5, p, props.Text{Size: 7, Align: align.Center}))
		}
	}
	m.AddRows(row.New(30).Add(
		col.New(3),
		col.New(6).Add(code.NewQr(sale.TransactionID, props.Rect{Percent: 95, Center: true})),
		col.New(3),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReceiptPDFGenerator) headerRow(sale entity.SaleFinalized) core.Row {
	return row.New(18).Add(col.New(12).Add(
		text.New(g.profile.Name, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 1,
		}),
		text.New(sale.TransactionID, props.Text{Size: 7, Align: align.Center, Top: 7}),
		text.New(fmt.Sprintf("%s   %s", sale.CreatedAt.Format("02/01/2006 15:04"), nonEmpty(sale.CashierID, "-")),
			props.Text{Size: 7, Align: align.Center, Top: 12, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(5).Add(
		h("Cant.", 2, align.Center),
		h("Artículo", 6, align.Left),
		h("Total", 4, align.Right),
	)
}

func (g *ReceiptPDFGenerator) lineRows(lines []entity.SaleLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.Name
		if l.LineDiscount.IsPositive() {
			name += " (promo)"
		}
		total := l.EffectivePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		out = append(out, row.New(5).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 7, Align: align.Center})),
			col.New(6).Add(text.New(name, props.Text{Size: 7, Align: align.Left})),
			col.New(4).Add(text.New(g.format(total), props.Text{Size: 7, Align: align.Right})),
		))
	}
	return out
}

func (g *ReceiptPDFGenerator) totalsRows(sale entity.SaleFinalized) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(5).Add(
			col.New(6).Add(text.New(label, props.Text{Size: 8, Style: style, Align: align.Right})),
			col.New(6).Add(text.New(value, props.Text{Size: 8, Style: style, Align: align.Right})),
		)
	}
	rows := []core.Row{pair("Subtotal:", g.format(sale.Subtotal), false)}
	if sale.TotalDiscount.IsPositive() {
		rows = append(rows, pair("Descuento:", "-"+g.format(sale.TotalDiscount), false))
	}
	rows = append(rows, pair(fmt.Sprintf("Impuesto (%s%%):", sale.TaxRate.String()), g.format(sale.TaxAmount), false))
	if sale.DeliveryFee.IsPositive() {
		rows = append(rows, pair("Domicilio:", g.format(sale.DeliveryFee), false))
	}
	rows = append(rows, pair("TOTAL:", g.format(sale.Total), true))
	if sale.PointsEarned > 0 {
		rows = append(rows, pair("Puntos:", fmt.Sprintf("+%d", sale.PointsEarned), false))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// format usa el símbolo configurado si la fuente base lo soporta (Latin-1);
// si no, cae al código ISO.
func (g *ReceiptPDFGenerator) format(amount decimal.Decimal) string {
	return money.Format(pdfSymbol(g.profile.CurrencySymbol), amount)
}

func pdfSymbol(s string) string {
	for _, r := range s {
		if r > 0xFF {
			return "NGN "
		}
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
