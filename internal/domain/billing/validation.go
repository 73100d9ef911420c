package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/pkg/dian"
)

// ErrInvalidDocument agrupa errores de validación de un documento; los casos
// de uso lo combinan con la lista de violaciones vía errors.Join.
var ErrInvalidDocument = errors.New("documento inválido")

// ErrorKind clasifica una violación de validación.
type ErrorKind string

const (
	MissingRequiredField        ErrorKind = "missing_required_field"
	InvalidNumericValue         ErrorKind = "invalid_numeric_value"
	CrossDocumentMismatch       ErrorKind = "cross_document_mismatch"
	TemporalOrderingViolation   ErrorKind = "temporal_ordering_violation"
	InvalidIdentificationNumber ErrorKind = "invalid_identification_number"
)

// ValidationError es una violación a nivel de campo. Field es una ruta con
// puntos e índices ("lines[2].price_amount") para que la UI la ancle al
// control correspondiente.
type ValidationError struct {
	Field   string    `json:"field"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"kind"`
}

// Error implementa error.
func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors es la lista completa de violaciones de un documento.
// Implementa error uniendo los mensajes con saltos de línea: el usuario ve
// todo lo que debe corregir en una sola pasada.
type ValidationErrors []ValidationError

// Error implementa error.
func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// HasKind indica si la lista contiene alguna violación de la clase dada.
func (errs ValidationErrors) HasKind(kind ErrorKind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Validate ejecuta TODAS las comprobaciones sobre el documento y retorna la
// lista de violaciones (vacía = documento válido). Nunca corta en la primera
// falla. El validador base cubre los campos compartidos de la unión; las
// extensiones por variante (referencia cruzada y orden temporal de la nota
// crédito, forma de pago de factura/nota) se aplican según doc.Kind.
func Validate(doc *entity.Document) ValidationErrors {
	var errs ValidationErrors
	add := func(field, message string, kind ErrorKind) {
		errs = append(errs, ValidationError{Field: field, Message: message, Kind: kind})
	}

	if doc == nil {
		add("document", "el documento es requerido", MissingRequiredField)
		return errs
	}

	// ── Identidad del documento ──────────────────────────────────────────
	if strings.TrimSpace(doc.Number) == "" {
		add("number", "el número del documento es requerido", MissingRequiredField)
	}
	if strings.TrimSpace(doc.Prefix) == "" {
		add("prefix", "el prefijo es requerido", MissingRequiredField)
	}
	if strings.TrimSpace(doc.ResolutionNumber) == "" {
		add("resolution_number", "el número de resolución es requerido", MissingRequiredField)
	}
	if doc.IssueDate.IsZero() {
		add("issue_date", "la fecha de emisión es requerida", MissingRequiredField)
	}
	if strings.TrimSpace(doc.IssueTime) == "" {
		add("issue_time", "la hora de emisión es requerida", MissingRequiredField)
	}

	// ── Cliente ──────────────────────────────────────────────────────────
	if doc.Customer == nil {
		add("customer", "el cliente es requerido", MissingRequiredField)
	} else {
		if doc.Customer.IdentificationNumber <= 0 {
			add("customer.identification_number", "el número de identificación del cliente es requerido", MissingRequiredField)
		}
		if doc.Customer.VerificationDigit == nil {
			add("customer.verification_digit", "el dígito de verificación del cliente es requerido", MissingRequiredField)
		} else if *doc.Customer.VerificationDigit < 0 || *doc.Customer.VerificationDigit > 9 {
			add("customer.verification_digit", "el dígito de verificación debe estar entre 0 y 9", InvalidNumericValue)
		}
		if strings.TrimSpace(doc.Customer.Name) == "" {
			add("customer.name", "el nombre del cliente es requerido", MissingRequiredField)
		}
	}

	// ── Forma de pago (solo factura y nota crédito) ──────────────────────
	if doc.Kind == entity.KindInvoice || doc.Kind == entity.KindCreditNote {
		if doc.PaymentForm == nil {
			add("payment_form", "la forma de pago es requerida", MissingRequiredField)
		} else {
			if strings.TrimSpace(doc.PaymentForm.PaymentFormID) == "" {
				add("payment_form.payment_form_id", "la forma de pago es requerida", MissingRequiredField)
			} else if !dian.ValidPaymentFormCodes[doc.PaymentForm.PaymentFormID] {
				add("payment_form.payment_form_id", "la forma de pago no es un código válido del catálogo DIAN", InvalidNumericValue)
			}
			if strings.TrimSpace(doc.PaymentForm.PaymentMethodID) == "" {
				add("payment_form.payment_method_id", "el medio de pago es requerido", MissingRequiredField)
			} else if !dian.ValidPaymentMethodCodes[doc.PaymentForm.PaymentMethodID] {
				add("payment_form.payment_method_id", "el medio de pago no es un código válido del catálogo DIAN", InvalidNumericValue)
			}
			if doc.PaymentForm.PaymentDueDate.IsZero() {
				add("payment_form.payment_due_date", "la fecha de vencimiento del pago es requerida", MissingRequiredField)
			}
		}
	}

	// ── Líneas ───────────────────────────────────────────────────────────
	if len(doc.Lines) == 0 {
		add("lines", "el documento debe tener al menos una línea", MissingRequiredField)
	}
	for i := range doc.Lines {
		line := &doc.Lines[i]
		if strings.TrimSpace(line.Description) == "" {
			add(fmt.Sprintf("lines[%d].description", i), "la descripción es requerida", MissingRequiredField)
		}
		if strings.TrimSpace(line.Code) == "" {
			add(fmt.Sprintf("lines[%d].code", i), "el código del producto es requerido", MissingRequiredField)
		}
		if !line.Quantity.GreaterThan(decimal.Zero) {
			add(fmt.Sprintf("lines[%d].invoiced_quantity", i), "la cantidad debe ser mayor que cero", InvalidNumericValue)
		}
		if line.UnitPrice.LessThan(decimal.Zero) {
			add(fmt.Sprintf("lines[%d].price_amount", i), "el precio unitario no puede ser negativo", InvalidNumericValue)
		}
		if line.Discount.LessThan(decimal.Zero) {
			add(fmt.Sprintf("lines[%d].discount", i), "el descuento no puede ser negativo", InvalidNumericValue)
		}
		if line.TaxRate.LessThan(decimal.Zero) {
			add(fmt.Sprintf("lines[%d].tax_rate", i), "la tarifa de impuesto no puede ser negativa", InvalidNumericValue)
		}
	}

	// ── Totales ──────────────────────────────────────────────────────────
	for _, tc := range []struct {
		field string
		value decimal.Decimal
	}{
		{"totals.line_extension_amount", doc.Totals.LineExtensionAmount},
		{"totals.tax_exclusive_amount", doc.Totals.TaxExclusiveAmount},
		{"totals.tax_inclusive_amount", doc.Totals.TaxInclusiveAmount},
		{"totals.payable_amount", doc.Totals.PayableAmount},
	} {
		if tc.value.LessThan(decimal.Zero) {
			add(tc.field, "el total no puede ser negativo", InvalidNumericValue)
		}
	}

	// ── Totales de impuestos ─────────────────────────────────────────────
	if doc.Kind != entity.KindQuote && len(doc.TaxTotals) == 0 {
		add("tax_totals", "el documento debe tener al menos un total de impuesto", MissingRequiredField)
	}
	for i := range doc.TaxTotals {
		tt := &doc.TaxTotals[i]
		if tt.TaxAmount.LessThan(decimal.Zero) {
			add(fmt.Sprintf("tax_totals[%d].tax_amount", i), "el impuesto no puede ser negativo", InvalidNumericValue)
		}
		if tt.Percent.LessThan(decimal.Zero) {
			add(fmt.Sprintf("tax_totals[%d].percent", i), "la tarifa no puede ser negativa", InvalidNumericValue)
		}
		if tt.TaxableAmount.LessThan(decimal.Zero) {
			add(fmt.Sprintf("tax_totals[%d].taxable_amount", i), "la base gravable no puede ser negativa", InvalidNumericValue)
		}
	}

	// ── Extensiones de la nota crédito ───────────────────────────────────
	if doc.Kind == entity.KindCreditNote {
		if doc.Reference == nil {
			add("reference", "la factura de referencia es requerida", MissingRequiredField)
		} else {
			if strings.TrimSpace(doc.Reference.Number) == "" {
				add("reference.number", "el número de la factura de referencia es requerido", MissingRequiredField)
			}
			if doc.Customer != nil {
				if doc.Customer.IdentificationNumber != doc.Reference.CustomerIdentification {
					add("reference.customer_identification",
						"la identificación del cliente no coincide con la de la factura de referencia",
						CrossDocumentMismatch)
				}
				if doc.Customer.Name != doc.Reference.CustomerName {
					add("reference.customer_name",
						"el nombre del cliente no coincide con el de la factura de referencia",
						CrossDocumentMismatch)
				}
			}
			// Una nota crédito no puede ser anterior a su factura. La
			// comparación es a nivel de día calendario: emitir nota y factura
			// el mismo día es válido aunque los instantes difieran.
			if !doc.IssueDate.IsZero() && !doc.Reference.Date.IsZero() &&
				calendarDate(doc.IssueDate).Before(calendarDate(doc.Reference.Date)) {
				add("issue_date",
					"la fecha de la nota crédito no puede ser anterior a la de la factura de referencia",
					TemporalOrderingViolation)
			}
		}
	}

	// ── Chequeo terminal: documento de valor cero ────────────────────────
	if len(doc.Lines) > 0 {
		sum := decimal.Zero
		for i := range doc.Lines {
			amounts := ComputeLine(doc.Lines[i].Quantity, doc.Lines[i].UnitPrice, doc.Lines[i].Discount, doc.Lines[i].TaxRate)
			sum = sum.Add(amounts.LineTotal)
		}
		if !sum.GreaterThan(decimal.Zero) {
			add("totals.payable_amount", "el total del documento debe ser mayor que cero", InvalidNumericValue)
		}
	}

	return errs
}

// calendarDate descarta la hora conservando solo año, mes y día.
func calendarDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
