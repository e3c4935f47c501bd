// Package pdf genera el estado de cuenta de un cliente con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Estado de cuenta + cliente │ Periodo + fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Tienda / Teléfono                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Descripción | Cant | Precio | Importe        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Facturado / Pagado / SALDO                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/billing"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCredit  = &props.Color{Red: 0, Green: 120, Blue: 60}
)

// CurrencySymbol prefijo de importes. Las fuentes base del PDF no incluyen el signo ₹.
const CurrencySymbol = "Rs. "

var _ billing.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator implementa billing.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct {
	shopName string
	printer  *message.Printer
}

// NewMarotoStatementGenerator construye el generador. shopName aparece como autor del documento.
func NewMarotoStatementGenerator(shopName string) *MarotoStatementGenerator {
	return &MarotoStatementGenerator{
		shopName: shopName,
		printer:  message.NewPrinter(language.English),
	}
}

// GenerateStatement genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatement(st billing.Statement) ([]byte, error) {
	if st.Customer == nil {
		return nil, fmt.Errorf("pdf: estado de cuenta sin cliente")
	}
	loc := st.Location
	if loc == nil {
		loc = time.Local
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta - "+st.Customer.Name, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(st, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(st.Entries) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el periodo.", props.Text{Size: 8, Top: 2, Align: align.Center, Color: colorGray}),
		)))
	}
	m.AddRows(g.entryRows(st.Entries, loc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(st.Totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStatementGenerator) headerRow(st billing.Statement, loc *time.Location) core.Row {
	generated := st.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(st.Customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("Periodo: "+st.Period.Label(), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
			}),
			text.New("Generado: "+generated.In(loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func customerRow(st billing.Statement) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Tienda: %s   |   Tel: %s",
				nonEmpty(st.Customer.ShopNo, "-"),
				nonEmpty(st.Customer.Phone, "-"),
			), props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// entryRows una fila por línea de factura o pago; los pagos en verde con importe negativo.
func (g *MarotoStatementGenerator) entryRows(entries []ledger.Entry, loc *time.Location) []core.Row {
	out := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		amountStyle := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if e.Kind == ledger.EntryPayment {
			amountStyle.Color = colorCredit
		}
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(e.Date.In(loc).Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(e.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(e.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money(e.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(e.Amount), amountStyle)),
		))
	}
	return out
}

func (g *MarotoStatementGenerator) totalsRow(t ledger.Totals) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	balanceLabel := "SALDO PENDIENTE:"
	if t.Balance().IsNegative() {
		balanceLabel = "SALDO A FAVOR:"
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Facturado:", 2),
			label("Pagado:", 8),
			text.New(balanceLabel, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 14, Color: colorPrimary}),
		),
		col.New(3).Add(
			value(g.money(t.Billed), 2),
			value(g.money(t.Paid), 8),
			text.New(g.money(t.Balance().Abs()), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 14, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles y dos decimales, ej: -1234.5 → "-Rs. 1,234.50".
func (g *MarotoStatementGenerator) money(d decimal.Decimal) string {
	return formatMoney(g.printer, d)
}

func formatMoney(p *message.Printer, d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(ledger.MoneyPlaces)
	intPart, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return CurrencySymbol + fixed
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + CurrencySymbol + p.Sprintf("%d", n) + "." + frac
}
