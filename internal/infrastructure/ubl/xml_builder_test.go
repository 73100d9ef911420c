package ubl

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/pkg/dian"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func testCompany() *entity.Company {
	return &entity.Company{
		ID:                "co-1",
		Name:              "Velia SAS",
		NIT:               "900373115",
		VerificationDigit: 3,
	}
}

func testDocument(kind entity.DocumentKind) *entity.Document {
	dv := 4
	doc := &entity.Document{
		ID:               "doc-1",
		CompanyID:        "co-1",
		Kind:             kind,
		Number:           "990000001",
		Prefix:           "SETP",
		ResolutionNumber: "18764000000001",
		IssueDate:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		IssueTime:        "10:15:00-05:00",
		Customer: &entity.Customer{
			ID:                   "cust-1",
			CompanyID:            "co-1",
			Name:                 "Comercializadora Andina SAS",
			IdentificationType:   dian.IdentificationTypeNIT,
			IdentificationNumber: 800197268,
			VerificationDigit:    &dv,
		},
		PaymentForm: &entity.PaymentForm{
			PaymentFormID:   dian.PaymentFormContado,
			PaymentMethodID: dian.PaymentMethodEfectivo,
		},
		Lines: []entity.LineItem{
			{
				ID:          "line-1",
				Description: "Servicio de consultoría",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(100000),
				TaxRate:     decimal.NewFromInt(19),
			},
		},
		Status: entity.DocumentStatusIssued,
	}
	billing.ApplyLine(&doc.Lines[0])
	doc.Totals, doc.TaxTotals = billing.AggregateLines(doc.Lines)
	return doc
}

// parseXML vuelve a leer los bytes generados para verificar estructura, no
// texto plano.
func parseXML(t *testing.T, raw []byte) *etree.Document {
	t.Helper()
	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(raw))
	return parsed
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_Factura(t *testing.T) {
	raw, err := NewXMLBuilder().Build(testDocument(entity.KindInvoice), testCompany())
	require.NoError(t, err)

	parsed := parseXML(t, raw)
	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)

	assert.Equal(t, "SETP990000001", root.FindElement("cbc:ID").Text())
	assert.Equal(t, "2026-03-10", root.FindElement("cbc:IssueDate").Text())
	assert.Equal(t, "COP", root.FindElement("cbc:DocumentCurrencyCode").Text())

	// Emisor con NIT y DV como schemeID.
	supplierID := root.FindElement("cac:AccountingSupplierParty/cac:Party/cac:PartyLegalEntity/cbc:CompanyID")
	require.NotNil(t, supplierID)
	assert.Equal(t, "900373115", supplierID.Text())
	assert.Equal(t, "3", supplierID.SelectAttrValue("schemeID", ""))

	// Montos en pesos con el código de moneda en el atributo.
	payable := root.FindElement("cac:LegalMonetaryTotal/cbc:PayableAmount")
	require.NotNil(t, payable)
	assert.Equal(t, "238000.00", payable.Text())
	assert.Equal(t, "COP", payable.SelectAttrValue("currencyID", ""))

	line := root.FindElement("cac:InvoiceLine")
	require.NotNil(t, line)
	assert.Equal(t, "2", line.FindElement("cbc:InvoicedQuantity").Text())

	// Una factura no lleva referencia de facturación.
	assert.Nil(t, root.FindElement("cac:BillingReference"))
}

func TestBuild_NotaCredito(t *testing.T) {
	doc := testDocument(entity.KindCreditNote)
	doc.Reference = &entity.InvoiceReference{
		Number:                 "SETP990000001",
		Date:                   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		CustomerIdentification: 800197268,
		CustomerName:           "Comercializadora Andina SAS",
	}

	raw, err := NewXMLBuilder().Build(doc, testCompany())
	require.NoError(t, err)

	parsed := parseXML(t, raw)
	root := parsed.Root()
	assert.Equal(t, "CreditNote", root.Tag)

	ref := root.FindElement("cac:BillingReference/cac:InvoiceDocumentReference")
	require.NotNil(t, ref)
	assert.Equal(t, "SETP990000001", ref.FindElement("cbc:ID").Text())
	assert.Equal(t, "2026-03-01", ref.FindElement("cbc:IssueDate").Text())

	line := root.FindElement("cac:CreditNoteLine")
	require.NotNil(t, line)
	assert.Equal(t, "2", line.FindElement("cbc:CreditedQuantity").Text())
}

// Las cotizaciones no tienen representación UBL.
func TestBuild_CotizacionSinUBL(t *testing.T) {
	_, err := NewXMLBuilder().Build(testDocument(entity.KindQuote), testCompany())
	assert.Error(t, err)
}
