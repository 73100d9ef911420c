package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: construyen documentos completos y válidos que cada test rompe en
// un solo punto.
// ──────────────────────────────────────────────────────────────────────────────

func intPtr(n int) *int { return &n }

func validCustomer() *entity.Customer {
	return &entity.Customer{
		ID:                   "c-1",
		Name:                 "Comercializadora Andina SAS",
		IdentificationType:   "31",
		IdentificationNumber: 900694948,
		VerificationDigit:    intPtr(9),
	}
}

func validInvoice() *entity.Document {
	doc := &entity.Document{
		ID:               "d-1",
		Kind:             entity.KindInvoice,
		Number:           "990000001",
		Prefix:           "SETP",
		ResolutionNumber: "18764000000001",
		IssueDate:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		IssueTime:        "10:30:00-05:00",
		Customer:         validCustomer(),
		PaymentForm: &entity.PaymentForm{
			PaymentFormID:   "1",
			PaymentMethodID: "10",
			PaymentDueDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		Lines: []entity.LineItem{
			{
				Code:        "SKU-001",
				Description: "Servicio de consultoría",
				Quantity:    dec("2"),
				UnitPrice:   dec("100000"),
				Discount:    decimal.Zero,
				TaxRate:     dec("19"),
			},
		},
	}
	for i := range doc.Lines {
		billing.ApplyLine(&doc.Lines[i])
	}
	doc.Totals, doc.TaxTotals = billing.AggregateLines(doc.Lines)
	return doc
}

func validCreditNote() *entity.Document {
	doc := validInvoice()
	doc.Kind = entity.KindCreditNote
	doc.Number = "NC0000001"
	doc.Reference = &entity.InvoiceReference{
		Number:                 "990000001",
		Date:                   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		CustomerIdentification: 900694948,
		CustomerName:           "Comercializadora Andina SAS",
	}
	return doc
}

func fieldsOf(errs billing.ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos válidos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_FacturaValida(t *testing.T) {
	errs := billing.Validate(validInvoice())
	assert.Empty(t, errs, "una factura completa no debe producir violaciones: %v", errs)
}

func TestValidate_NotaCreditoValida(t *testing.T) {
	errs := billing.Validate(validCreditNote())
	assert.Empty(t, errs, "una nota crédito consistente no debe producir violaciones: %v", errs)
}

// Las cotizaciones no exigen forma de pago ni totales de impuesto.
func TestValidate_CotizacionSinFormaDePago(t *testing.T) {
	doc := validInvoice()
	doc.Kind = entity.KindQuote
	doc.PaymentForm = nil
	doc.TaxTotals = nil

	errs := billing.Validate(doc)
	assert.Empty(t, errs, "la cotización no lleva forma de pago: %v", errs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Presencia de campos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ClienteFaltante(t *testing.T) {
	doc := validInvoice()
	doc.Customer = nil

	errs := billing.Validate(doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, fieldsOf(errs), "customer")
	assert.True(t, errs.HasKind(billing.MissingRequiredField))
}

func TestValidate_DigitoVerificacionFaltante(t *testing.T) {
	doc := validInvoice()
	doc.Customer.VerificationDigit = nil

	errs := billing.Validate(doc)
	assert.Contains(t, fieldsOf(errs), "customer.verification_digit")
}

func TestValidate_IdentidadDocumentoFaltante(t *testing.T) {
	doc := validInvoice()
	doc.Number = ""
	doc.Prefix = "  "
	doc.ResolutionNumber = ""

	errs := billing.Validate(doc)
	fields := fieldsOf(errs)
	assert.Contains(t, fields, "number")
	assert.Contains(t, fields, "prefix")
	assert.Contains(t, fields, "resolution_number")
}

func TestValidate_FormaDePagoIncompleta(t *testing.T) {
	doc := validInvoice()
	doc.PaymentForm.PaymentMethodID = ""
	doc.PaymentForm.PaymentDueDate = time.Time{}

	errs := billing.Validate(doc)
	fields := fieldsOf(errs)
	assert.Contains(t, fields, "payment_form.payment_method_id")
	assert.Contains(t, fields, "payment_form.payment_due_date")
	assert.NotContains(t, fields, "payment_form.payment_form_id")
}

// Sin líneas: una sola violación sobre "lines", sin errores por índice ni
// fallas de rango fuera de slice.
func TestValidate_SinLineas(t *testing.T) {
	doc := validInvoice()
	doc.Lines = nil
	doc.Totals, doc.TaxTotals = billing.AggregateLines(doc.Lines)

	errs := billing.Validate(doc)
	fields := fieldsOf(errs)
	assert.Contains(t, fields, "lines")
	for _, f := range fields {
		assert.NotContains(t, f, "lines[", "no debe haber errores por línea: %s", f)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rangos numéricos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_LineaConCantidadCero(t *testing.T) {
	doc := validInvoice()
	doc.Lines = append(doc.Lines, entity.LineItem{
		Code:        "SKU-002",
		Description: "Unidad extra",
		Quantity:    decimal.Zero,
		UnitPrice:   dec("1000"),
	})

	errs := billing.Validate(doc)
	assert.Contains(t, fieldsOf(errs), "lines[1].invoiced_quantity")
	assert.True(t, errs.HasKind(billing.InvalidNumericValue))
}

func TestValidate_LineaConPrecioNegativo(t *testing.T) {
	doc := validInvoice()
	doc.Lines[0].UnitPrice = dec("-100")

	errs := billing.Validate(doc)
	assert.Contains(t, fieldsOf(errs), "lines[0].price_amount")
}

func TestValidate_TotalesNegativos(t *testing.T) {
	doc := validInvoice()
	doc.Totals.PayableAmount = dec("-1")

	errs := billing.Validate(doc)
	assert.Contains(t, fieldsOf(errs), "totals.payable_amount")
}

func TestValidate_TaxTotalNegativo(t *testing.T) {
	doc := validInvoice()
	doc.TaxTotals[0].TaxAmount = dec("-5")

	errs := billing.Validate(doc)
	assert.Contains(t, fieldsOf(errs), "tax_totals[0].tax_amount")
}

// Documento de valor cero: cada campo pasa individualmente pero la suma de
// los totales de línea no es positiva, y eso lo rechaza el chequeo terminal.
func TestValidate_DocumentoValorCero(t *testing.T) {
	doc := validInvoice()
	doc.Lines[0].UnitPrice = decimal.Zero
	billing.ApplyLine(&doc.Lines[0])
	doc.Totals, doc.TaxTotals = billing.AggregateLines(doc.Lines)

	errs := billing.Validate(doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "mayor que cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Extensiones de la nota crédito
// ──────────────────────────────────────────────────────────────────────────────

// El cliente de la nota debe coincidir con la instantánea capturada de la
// factura referenciada, aunque todo lo demás sea válido.
func TestValidate_NotaCredito_ClienteNoCoincide(t *testing.T) {
	doc := validCreditNote()
	doc.Reference.CustomerName = "Otra Empresa SAS"

	errs := billing.Validate(doc)
	require.NotEmpty(t, errs)
	assert.True(t, errs.HasKind(billing.CrossDocumentMismatch))
	assert.Contains(t, fieldsOf(errs), "reference.customer_name")
}

func TestValidate_NotaCredito_IdentificacionNoCoincide(t *testing.T) {
	doc := validCreditNote()
	doc.Reference.CustomerIdentification = 800197268

	errs := billing.Validate(doc)
	assert.True(t, errs.HasKind(billing.CrossDocumentMismatch))
	assert.Contains(t, fieldsOf(errs), "reference.customer_identification")
}

// Una nota crédito no puede tener fecha anterior a su factura.
func TestValidate_NotaCredito_FechaAnterior(t *testing.T) {
	doc := validCreditNote()
	doc.IssueDate = doc.Reference.Date.AddDate(0, 0, -5)

	errs := billing.Validate(doc)
	require.NotEmpty(t, errs)
	assert.True(t, errs.HasKind(billing.TemporalOrderingViolation))
}

// Misma fecha que la factura es válida.
func TestValidate_NotaCredito_MismaFecha(t *testing.T) {
	doc := validCreditNote()
	doc.IssueDate = doc.Reference.Date

	errs := billing.Validate(doc)
	assert.Empty(t, errs, "misma fecha no viola el orden temporal: %v", errs)
}

// El orden temporal se compara a nivel de día calendario: una factura emitida
// a las 16:45 y una nota crédito del mismo día a medianoche son válidas
// aunque los instantes difieran.
func TestValidate_NotaCredito_MismoDiaConHora(t *testing.T) {
	doc := validCreditNote()
	doc.Reference.Date = time.Date(2026, 3, 10, 16, 45, 12, 0, time.UTC)
	doc.IssueDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	errs := billing.Validate(doc)
	assert.Empty(t, errs, "mismo día calendario no viola el orden temporal: %v", errs)

	// En sentido inverso también: nota con hora, factura a medianoche.
	doc.Reference.Date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	doc.IssueDate = time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Empty(t, billing.Validate(doc))

	// Un día antes sí, aun con horas de por medio.
	doc.IssueDate = time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)
	errs = billing.Validate(doc)
	require.NotEmpty(t, errs)
	assert.True(t, errs.HasKind(billing.TemporalOrderingViolation))
}

// Forma y medio de pago se verifican contra los catálogos DIAN, no solo por
// presencia.
func TestValidate_FormaDePagoFueraDeCatalogo(t *testing.T) {
	doc := validInvoice()
	doc.PaymentForm.PaymentFormID = "9"
	doc.PaymentForm.PaymentMethodID = "99"

	errs := billing.Validate(doc)
	fields := fieldsOf(errs)
	assert.Contains(t, fields, "payment_form.payment_form_id")
	assert.Contains(t, fields, "payment_form.payment_method_id")
	assert.True(t, errs.HasKind(billing.InvalidNumericValue))
}

// ──────────────────────────────────────────────────────────────────────────────
// Semántica de acumulación
// ──────────────────────────────────────────────────────────────────────────────

// El motor nunca corta en la primera falla: un documento roto en varios
// puntos reporta TODAS las violaciones en una sola pasada, unidas con saltos
// de línea para mostrarlas juntas en la UI.
func TestValidate_AcumulaTodasLasViolaciones(t *testing.T) {
	doc := validInvoice()
	doc.Prefix = ""
	doc.Customer.Name = ""
	doc.Lines[0].Quantity = decimal.Zero
	doc.PaymentForm = nil

	errs := billing.Validate(doc)
	require.GreaterOrEqual(t, len(errs), 4, "deben reportarse todas las violaciones: %v", errs)

	var err error = errs
	assert.Contains(t, err.Error(), "\n", "los mensajes se unen con saltos de línea")
}
