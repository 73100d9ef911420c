package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind discrimina la unión Invoice | CreditNote | Quote.
// Los tres comparten cabecera, líneas y totales; la nota crédito agrega la
// referencia a la factura que ajusta.
type DocumentKind string

const (
	KindInvoice    DocumentKind = "invoice"
	KindCreditNote DocumentKind = "credit_note"
	KindQuote      DocumentKind = "quote"
)

// Estados del ciclo de vida de un documento.
const (
	DocumentStatusDraft     = "DRAFT"     // borrador editable
	DocumentStatusIssued    = "ISSUED"    // validado y emitido; inmutable
	DocumentStatusCancelled = "CANCELLED" // anulado
)

// LineItem es una línea de factura/nota crédito/cotización. Los montos
// derivados (LineExtensionAmount, TaxAmount, LineTotal) los calcula
// billing.ComputeLine; se persisten ya calculados.
type LineItem struct {
	ID          string
	DocumentID  string
	ProductID   string
	Code        string // SKU del producto
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal // descuento en valor absoluto sobre la línea
	TaxRate     decimal.Decimal // porcentaje (0, 5, 19)

	LineExtensionAmount decimal.Decimal // Quantity * UnitPrice
	TaxAmount           decimal.Decimal // LineExtensionAmount * TaxRate / 100
	LineTotal           decimal.Decimal // LineExtensionAmount - Discount + TaxAmount
}

// MonetaryTotals agrega los montos del documento (UBL LegalMonetaryTotal).
// Invariante: los cuatro campos son no negativos y
// PayableAmount >= TaxExclusiveAmount para entradas válidas.
type MonetaryTotals struct {
	LineExtensionAmount decimal.Decimal
	TaxExclusiveAmount  decimal.Decimal
	TaxInclusiveAmount  decimal.Decimal
	PayableAmount       decimal.Decimal
}

// TaxTotal agrupa el impuesto de las líneas que comparten una misma tarifa.
type TaxTotal struct {
	Percent       decimal.Decimal
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
}

// PaymentForm forma y medio de pago (catálogos DIAN tablas 13 y 14).
// Obligatorio para facturas y notas crédito; las cotizaciones no lo llevan.
type PaymentForm struct {
	PaymentFormID   string // "1" contado, "2" crédito
	PaymentMethodID string // "10" efectivo, "47" transferencia, ...
	PaymentDueDate  time.Time
}

// InvoiceReference identifica la factura que una nota crédito ajusta.
// CustomerIdentification y CustomerName son una instantánea del cliente de la
// factura al momento de seleccionarla; la validación exige que coincidan con
// el cliente de la nota.
type InvoiceReference struct {
	Number                 string
	Date                   time.Time
	CustomerIdentification int64
	CustomerName           string
}

// Document es la unión etiquetada Invoice | CreditNote | Quote.
// Customer es una instantánea del contacto al momento de la emisión, no una
// referencia viva; una vez ISSUED el documento es inmutable.
type Document struct {
	ID               string
	CompanyID        string
	Kind             DocumentKind
	Number           string
	Prefix           string
	ResolutionNumber string
	IssueDate        time.Time
	IssueTime        string // "15:04:05-05:00"
	Customer         *Customer
	Lines            []LineItem
	PaymentForm      *PaymentForm
	Totals           MonetaryTotals
	TaxTotals        []TaxTotal
	Reference        *InvoiceReference // solo KindCreditNote
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
