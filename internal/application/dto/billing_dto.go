package dto

import "github.com/shopspring/decimal"

// DocumentLineRequest una línea de factura/nota crédito/cotización.
// Si ProductID va presente, código, descripción, precio y tarifa se
// prellenan desde el catálogo y los campos explícitos los sobreescriben.
type DocumentLineRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	Code        string          `json:"code,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // porcentaje: 19 = 19%
}

// PaymentFormRequest forma y medio de pago del documento.
type PaymentFormRequest struct {
	PaymentFormID   string `json:"payment_form_id"`   // "1" contado, "2" crédito
	PaymentMethodID string `json:"payment_method_id"` // catálogo DIAN tabla 13
	PaymentDueDate  string `json:"payment_due_date"`  // "2006-01-02"
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID  string                `json:"customer_id"`
	IssueDate   string                `json:"issue_date,omitempty"` // "2006-01-02"; vacío = hoy
	PaymentForm *PaymentFormRequest   `json:"payment_form"`
	Lines       []DocumentLineRequest `json:"lines"`
}

// CreateCreditNoteRequest body para POST /api/credit-notes.
// InvoiceID referencia la factura que la nota ajusta; el cliente y la
// instantánea de referencia se capturan de esa factura.
type CreateCreditNoteRequest struct {
	InvoiceID   string                `json:"invoice_id"`
	IssueDate   string                `json:"issue_date,omitempty"`
	PaymentForm *PaymentFormRequest   `json:"payment_form"`
	Lines       []DocumentLineRequest `json:"lines"` // vacío = reversa completa de la factura
}

// CreateQuoteRequest body para POST /api/quotes. Sin forma de pago.
type CreateQuoteRequest struct {
	CustomerID string                `json:"customer_id"`
	IssueDate  string                `json:"issue_date,omitempty"`
	Lines      []DocumentLineRequest `json:"lines"`
}

// DocumentLineResponse línea en respuestas. Los montos van como strings
// decimales con 2 fraccionarios, la representación del API externo.
type DocumentLineResponse struct {
	ID                  string `json:"id"`
	ProductID           string `json:"product_id,omitempty"`
	Code                string `json:"code"`
	Description         string `json:"description"`
	Quantity            string `json:"quantity"`
	UnitPrice           string `json:"unit_price"`
	Discount            string `json:"discount"`
	TaxRate             string `json:"tax_rate"`
	LineExtensionAmount string `json:"line_extension_amount"`
	TaxAmount           string `json:"tax_amount"`
	LineTotal           string `json:"line_total"`
}

// TaxTotalResponse total de impuesto por tarifa.
type TaxTotalResponse struct {
	Percent       string `json:"percent"`
	TaxableAmount string `json:"taxable_amount"`
	TaxAmount     string `json:"tax_amount"`
}

// MonetaryTotalsResponse totales del documento, formateados a 2 decimales.
type MonetaryTotalsResponse struct {
	LineExtensionAmount string `json:"line_extension_amount"`
	TaxExclusiveAmount  string `json:"tax_exclusive_amount"`
	TaxInclusiveAmount  string `json:"tax_inclusive_amount"`
	PayableAmount       string `json:"payable_amount"`
}

// InvoiceReferenceResponse referencia de la nota crédito a su factura.
type InvoiceReferenceResponse struct {
	Number                 string `json:"number"`
	Date                   string `json:"date"`
	CustomerIdentification int64  `json:"customer_identification"`
	CustomerName           string `json:"customer_name"`
}

// PaymentFormResponse forma de pago en respuestas.
type PaymentFormResponse struct {
	PaymentFormID   string `json:"payment_form_id"`
	PaymentMethodID string `json:"payment_method_id"`
	PaymentDueDate  string `json:"payment_due_date"`
}

// DocumentResponse documento completo (factura, nota crédito o cotización).
type DocumentResponse struct {
	ID               string                    `json:"id"`
	CompanyID        string                    `json:"company_id"`
	Kind             string                    `json:"kind"`
	Number           string                    `json:"number"`
	Prefix           string                    `json:"prefix"`
	ResolutionNumber string                    `json:"resolution_number"`
	IssueDate        string                    `json:"issue_date"`
	IssueTime        string                    `json:"issue_time"`
	Customer         *ContactResponse          `json:"customer,omitempty"`
	PaymentForm      *PaymentFormResponse      `json:"payment_form,omitempty"`
	Lines            []DocumentLineResponse    `json:"lines"`
	Totals           MonetaryTotalsResponse    `json:"totals"`
	TaxTotals        []TaxTotalResponse        `json:"tax_totals"`
	Reference        *InvoiceReferenceResponse `json:"reference,omitempty"`
	Status           string                    `json:"status"`
}
