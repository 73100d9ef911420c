package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velia-co/crm-api/internal/application/dto"
	"github.com/velia-co/crm-api/internal/domain"
	domainbilling "github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/pkg/dian"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByCompanyAndIdentification(companyID string, ident int64) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.CompanyID == companyID && c.IdentificationNumber == ident {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Search(companyID, q string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Delete(id string) error          { return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Search(companyID, q string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(id string) error         { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID  = "co-1"
	testCustomerID = "cust-1"
	testProductID  = "prod-1"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestAssembler() (*DocumentAssembler, *fakeCustomerRepo, *fakeProductRepo) {
	dv := 4
	custRepo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		testCustomerID: {
			ID:                   testCustomerID,
			CompanyID:            testCompanyID,
			Name:                 "Comercializadora Andina SAS",
			IdentificationType:   dian.IdentificationTypeNIT,
			IdentificationNumber: 800197268,
			VerificationDigit:    &dv,
		},
	}}
	prodRepo := &fakeProductRepo{products: map[string]*entity.Product{
		testProductID: {
			ID:          testProductID,
			CompanyID:   testCompanyID,
			SKU:         "SVC-001",
			Name:        "Servicio de consultoría",
			Price:       dec("100000"),
			TaxRate:     dec("19"),
			UnitMeasure: dian.UnitUnit,
		},
	}}
	assembler := NewDocumentAssembler(custRepo, prodRepo, Defaults{
		Prefix:           "SETP",
		ResolutionNumber: "18764000000001",
	})
	return assembler, custRepo, prodRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El ensamblado arma la instantánea del cliente, deriva los montos de línea
// y agrega los totales: 2 x 100.000 al 19% = 200.000 / 38.000 / 238.000.
func TestAssemble_DocumentoCompleto(t *testing.T) {
	assembler, _, _ := newTestAssembler()

	doc, err := assembler.Assemble(testCompanyID, entity.KindInvoice, testCustomerID, "2026-03-10", &dto.PaymentFormRequest{
		PaymentFormID:   dian.PaymentFormContado,
		PaymentMethodID: dian.PaymentMethodEfectivo,
	}, []dto.DocumentLineRequest{
		{
			Description: "Servicio de consultoría",
			Quantity:    dec("2"),
			UnitPrice:   dec("100000"),
			TaxRate:     dec("19"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.KindInvoice, doc.Kind)
	assert.Equal(t, "SETP", doc.Prefix)
	assert.Equal(t, "18764000000001", doc.ResolutionNumber)
	assert.Equal(t, entity.DocumentStatusDraft, doc.Status)
	assert.Empty(t, doc.Number, "el consecutivo se reserva en la transacción, no al ensamblar")
	assert.Equal(t, "2026-03-10", doc.IssueDate.Format("2006-01-02"))

	require.NotNil(t, doc.Customer)
	assert.Equal(t, "Comercializadora Andina SAS", doc.Customer.Name)

	require.Len(t, doc.Lines, 1)
	assert.True(t, doc.Lines[0].LineExtensionAmount.Equal(dec("200000")))
	assert.True(t, doc.Lines[0].TaxAmount.Equal(dec("38000")))
	assert.True(t, doc.Lines[0].LineTotal.Equal(dec("238000")))

	assert.True(t, doc.Totals.LineExtensionAmount.Equal(dec("200000")))
	assert.True(t, doc.Totals.TaxInclusiveAmount.Equal(dec("238000")))
	assert.True(t, doc.Totals.PayableAmount.Equal(dec("238000")))

	require.Len(t, doc.TaxTotals, 1)
	assert.True(t, doc.TaxTotals[0].Percent.Equal(dec("19")))
	assert.True(t, doc.TaxTotals[0].TaxAmount.Equal(dec("38000")))
}

// Con product_id las líneas se prellenan desde el catálogo: código,
// descripción, precio y tarifa.
func TestAssemble_PrellenadoDesdeCatalogo(t *testing.T) {
	assembler, _, _ := newTestAssembler()

	doc, err := assembler.Assemble(testCompanyID, entity.KindInvoice, testCustomerID, "", nil, []dto.DocumentLineRequest{
		{ProductID: testProductID, Quantity: dec("3")},
	})
	require.NoError(t, err)

	require.Len(t, doc.Lines, 1)
	line := doc.Lines[0]
	assert.Equal(t, "SVC-001", line.Code)
	assert.Equal(t, "Servicio de consultoría", line.Description)
	assert.True(t, line.UnitPrice.Equal(dec("100000")))
	assert.True(t, line.TaxRate.Equal(dec("19")))
	assert.True(t, line.LineExtensionAmount.Equal(dec("300000")))
}

// Los campos explícitos del request sobreescriben el prellenado del catálogo.
func TestAssemble_RequestSobreescribeCatalogo(t *testing.T) {
	assembler, _, _ := newTestAssembler()

	doc, err := assembler.Assemble(testCompanyID, entity.KindInvoice, testCustomerID, "", nil, []dto.DocumentLineRequest{
		{
			ProductID:   testProductID,
			Description: "Consultoría con tarifa negociada",
			Quantity:    dec("1"),
			UnitPrice:   dec("80000"),
			TaxRate:     dec("19"),
		},
	})
	require.NoError(t, err)

	line := doc.Lines[0]
	assert.Equal(t, "Consultoría con tarifa negociada", line.Description)
	assert.True(t, line.UnitPrice.Equal(dec("80000")))
}

// Si el cliente es NIT y no tiene DV, el ensamblador lo calcula una sola vez
// para la instantánea.
func TestAssemble_CalculaDVFaltante(t *testing.T) {
	assembler, custRepo, _ := newTestAssembler()
	custRepo.customers[testCustomerID].VerificationDigit = nil

	doc, err := assembler.Assemble(testCompanyID, entity.KindInvoice, testCustomerID, "", nil, []dto.DocumentLineRequest{
		{Description: "Item", Quantity: dec("1"), UnitPrice: dec("1000")},
	})
	require.NoError(t, err)

	require.NotNil(t, doc.Customer.VerificationDigit)
	// NIT 800197268 → DV 4
	assert.Equal(t, 4, *doc.Customer.VerificationDigit)
	// La instantánea no muta el contacto del directorio.
	assert.Nil(t, custRepo.customers[testCustomerID].VerificationDigit)
}

// El DV se calcula para todo tipo de identificación, no solo NIT: un contacto
// con cédula y sin DV también debe poder facturarse.
func TestAssemble_CalculaDVParaCedula(t *testing.T) {
	assembler, custRepo, _ := newTestAssembler()
	custRepo.customers[testCustomerID].IdentificationType = dian.IdentificationTypeCC
	custRepo.customers[testCustomerID].IdentificationNumber = 1020304050
	custRepo.customers[testCustomerID].VerificationDigit = nil

	doc, err := assembler.Assemble(testCompanyID, entity.KindInvoice, testCustomerID, "", &dto.PaymentFormRequest{
		PaymentFormID:   dian.PaymentFormContado,
		PaymentMethodID: dian.PaymentMethodEfectivo,
		PaymentDueDate:  "2026-03-15",
	}, []dto.DocumentLineRequest{
		{ProductID: testProductID, Quantity: dec("1")},
	})
	require.NoError(t, err)

	require.NotNil(t, doc.Customer.VerificationDigit)
	// 1020304050 → DV 8
	assert.Equal(t, 8, *doc.Customer.VerificationDigit)

	// Con el DV en la instantánea, la validación no reclama el campo.
	doc.Number = "990000001"
	assert.Empty(t, domainbilling.Validate(doc))
}

// Cliente inexistente o de otra empresa: ErrNotFound / ErrForbidden.
func TestAssemble_ClienteInvalido(t *testing.T) {
	assembler, custRepo, _ := newTestAssembler()

	_, err := assembler.Assemble(testCompanyID, entity.KindInvoice, "no-existe", "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	custRepo.customers[testCustomerID].CompanyID = "otra-empresa"
	_, err = assembler.Assemble(testCompanyID, entity.KindInvoice, testCustomerID, "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Fecha de emisión malformada: ErrInvalidInput.
func TestAssemble_FechaInvalida(t *testing.T) {
	assembler, _, _ := newTestAssembler()

	_, err := assembler.Assemble(testCompanyID, entity.KindInvoice, testCustomerID, "10/03/2026", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Sin fecha explícita se usa la fecha actual, truncada a medianoche:
// IssueDate lleva solo el día calendario (la hora vive en IssueTime), de lo
// contrario una nota crédito del mismo día quedaría "antes" de su factura.
func TestAssemble_FechaPorDefectoHoy(t *testing.T) {
	assembler, _, _ := newTestAssembler()

	doc, err := assembler.Assemble(testCompanyID, entity.KindQuote, testCustomerID, "", nil, []dto.DocumentLineRequest{
		{Description: "Item", Quantity: dec("1"), UnitPrice: dec("1000")},
	})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), doc.IssueDate.Format("2006-01-02"))

	hour, min, sec := doc.IssueDate.Clock()
	assert.Zero(t, hour)
	assert.Zero(t, min)
	assert.Zero(t, sec)
	assert.NotEmpty(t, doc.IssueTime)
}
