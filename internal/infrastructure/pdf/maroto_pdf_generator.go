// Package pdf implementa la representación gráfica de los documentos
// emitidos (factura, nota crédito y cotización).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Tipo + N° + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                            │
//	│  RECEPTOR: Nombre + NIT/CC + contacto                       │
//	│  REFERENCIA (solo nota crédito): factura ajustada           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Desc | IVA | Total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  IMPUESTOS POR TARIFA + TOTALES / TOTAL A PAGAR             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: resolución + leyenda                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appbilling "github.com/velia-co/crm-api/internal/application/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Formato colombiano: separador de miles "." y decimal ",".
var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera el PDF del documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.Document,
	company *entity.Company,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(documentTitle(doc.Kind)+" "+doc.Prefix+doc.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(company))
	m.AddRows(receptorRow(doc.Customer))
	if doc.Reference != nil {
		m.AddRows(referenciaRow(doc.Reference))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(doc.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range taxTotalRows(doc.TaxTotals) {
		m.AddRows(r)
	}
	m.AddRows(totalsRow(&doc.Totals))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func documentTitle(kind entity.DocumentKind) string {
	switch kind {
	case entity.KindCreditNote:
		return "NOTA CRÉDITO ELECTRÓNICA"
	case entity.KindQuote:
		return "COTIZACIÓN"
	default:
		return "FACTURA ELECTRÓNICA DE VENTA"
	}
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: Razón social + NIT (izq) y tipo + número + fecha (der).
func headerRow(doc *entity.Document, company *entity.Company) core.Row {
	numero := doc.Prefix + doc.Number
	fecha := doc.IssueDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("NIT: %s-%d", company.NIT, company.VerificationDigit), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(documentTitle(doc.Kind), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos del emisor (empresa).
func emisorRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// receptorRow: datos del comprador.
func receptorRow(customer *entity.Customer) core.Row {
	ident := "—"
	name := "—"
	email := "—"
	phone := "—"
	if customer != nil {
		ident = fmt.Sprintf("%d", customer.IdentificationNumber)
		if customer.VerificationDigit != nil {
			ident = fmt.Sprintf("%d-%d", customer.IdentificationNumber, *customer.VerificationDigit)
		}
		name = customer.Name
		email = nonEmpty(customer.Email, "—")
		phone = nonEmpty(customer.Phone, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEPTOR / ADQUIRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Email: %s   |   Tel: %s", ident, email, phone),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// referenciaRow: factura ajustada por la nota crédito.
func referenciaRow(ref *entity.InvoiceReference) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("DOCUMENTO DE REFERENCIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Factura %s del %s   |   %s (%d)",
				ref.Number, ref.Date.Format("02/01/2006"), ref.CustomerName, ref.CustomerIdentification,
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción del producto/servicio", 4, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Desc.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del documento.
func tableLineRows(lines []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				l.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatCOP(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatCOP(l.Discount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.TaxRate.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatCOP(l.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// taxTotalRows: una fila por tarifa de IVA presente en el documento.
func taxTotalRows(taxTotals []entity.TaxTotal) []core.Row {
	result := make([]core.Row, 0, len(taxTotals))
	for i := range taxTotals {
		tt := &taxTotals[i]
		result = append(result, row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(
				fmt.Sprintf("IVA %s%% sobre %s:", tt.Percent.StringFixed(0), formatCOP(tt.TaxableAmount)),
				props.Text{Size: 8, Align: align.Right, Right: 2, Color: colorGray},
			)),
			col.New(3).Add(text.New(
				formatCOP(tt.TaxAmount),
				props.Text{Size: 8, Align: align.Right, Right: 1, Color: colorGray},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(totals *entity.MonetaryTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 14,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 14,
		})
	}

	return row.New(22).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal neto:"),
			grandLabel("TOTAL A PAGAR:"),
		),
		col.New(3).Add(
			value(formatCOP(totals.TaxExclusiveAmount)),
			grandValue(formatCOP(totals.PayableAmount)),
		),
		col.New(3),
	)
}

// footerRow: resolución de facturación + leyenda.
func footerRow(doc *entity.Document) core.Row {
	leyenda := "Documento generado electrónicamente. Conserve este documento como soporte."
	if doc.Kind == entity.KindQuote {
		leyenda = "Cotización sin valor fiscal. Precios sujetos a cambio sin previo aviso."
	}
	resolucion := ""
	if doc.ResolutionNumber != "" && doc.Kind != entity.KindQuote {
		resolucion = fmt.Sprintf("Resolución de facturación DIAN N° %s.  ", doc.ResolutionNumber)
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(resolucion+leyenda, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatCOP formatea un monto en pesos colombianos: $1.234.567,89.
// Solo para la representación gráfica; el cálculo nunca pasa por float.
func formatCOP(d decimal.Decimal) string {
	f, _ := d.Float64()
	return "$" + copPrinter.Sprintf("%.2f", f)
}
