package billing

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/velia-co/crm-api/internal/application/dto"
	"github.com/velia-co/crm-api/internal/domain"
	domainbilling "github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
	"github.com/velia-co/crm-api/pkg/dian"
)

const issueDateLayout = "2006-01-02"

// Defaults identificadores de la organización emisora, inyectados desde
// configuración: el prefijo autorizado y la resolución DIAN nunca viven como
// constantes en el núcleo de cálculo/validación.
type Defaults struct {
	Prefix           string
	ResolutionNumber string
}

// DocumentAssembler arma un entity.Document a partir del request: instantánea
// del cliente (con DV calculado una sola vez si falta), prellenado de líneas
// desde el catálogo, montos derivados y totales agregados. NO valida: eso es
// de domainbilling.Validate, sobre el documento ya completo.
type DocumentAssembler struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	defaults     Defaults
}

// NewDocumentAssembler construye el ensamblador.
func NewDocumentAssembler(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	defaults Defaults,
) *DocumentAssembler {
	return &DocumentAssembler{customerRepo: customerRepo, productRepo: productRepo, defaults: defaults}
}

// Assemble arma un documento para el cliente identificado por customerID.
// El número queda vacío: lo reserva el caso de uso dentro de la transacción.
func (a *DocumentAssembler) Assemble(
	companyID string,
	kind entity.DocumentKind,
	customerID string,
	issueDate string,
	paymentForm *dto.PaymentFormRequest,
	lines []dto.DocumentLineRequest,
) (*entity.Document, error) {
	customer, err := a.customerRepo.GetByID(customerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return a.AssembleFor(companyID, kind, customer, issueDate, paymentForm, lines)
}

// AssembleFor arma un documento con un cliente ya cargado (la nota crédito lo
// toma de la factura referenciada, no del request).
func (a *DocumentAssembler) AssembleFor(
	companyID string,
	kind entity.DocumentKind,
	customer *entity.Customer,
	issueDate string,
	paymentForm *dto.PaymentFormRequest,
	lines []dto.DocumentLineRequest,
) (*entity.Document, error) {
	now := time.Now()

	// IssueDate lleva solo el día calendario; la hora vive en IssueTime.
	year, month, day := now.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if issueDate != "" {
		parsed, err := time.Parse(issueDateLayout, issueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		date = parsed
	}

	snapshot := *customer
	if snapshot.VerificationDigit == nil {
		// Se calcula una sola vez al ensamblar, no en cada edición. Aplica a
		// todo tipo de identificación: el algoritmo acepta cualquier cadena
		// de dígitos y el documento siempre lleva DV.
		dv, err := dian.ComputeVerificationDigit(strconv.FormatInt(snapshot.IdentificationNumber, 10))
		if err != nil {
			return nil, err
		}
		snapshot.VerificationDigit = &dv
	}

	doc := &entity.Document{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Kind:             kind,
		Prefix:           a.defaults.Prefix,
		ResolutionNumber: a.defaults.ResolutionNumber,
		IssueDate:        date,
		IssueTime:        now.Format("15:04:05-07:00"),
		Customer:         &snapshot,
		Status:           entity.DocumentStatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if paymentForm != nil {
		pf := &entity.PaymentForm{
			PaymentFormID:   paymentForm.PaymentFormID,
			PaymentMethodID: paymentForm.PaymentMethodID,
		}
		if paymentForm.PaymentDueDate != "" {
			due, err := time.Parse(issueDateLayout, paymentForm.PaymentDueDate)
			if err != nil {
				return nil, domain.ErrInvalidInput
			}
			pf.PaymentDueDate = due
		}
		doc.PaymentForm = pf
	}

	doc.Lines = make([]entity.LineItem, 0, len(lines))
	for _, in := range lines {
		line := entity.LineItem{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			ProductID:   in.ProductID,
			Code:        in.Code,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Discount:    in.Discount,
			TaxRate:     in.TaxRate,
		}
		if in.ProductID != "" {
			product, err := a.productRepo.GetByID(in.ProductID)
			if err != nil || product == nil {
				return nil, domain.ErrNotFound
			}
			if product.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
			// Prellenado desde el catálogo; el request puede sobreescribir.
			if line.Code == "" {
				line.Code = product.SKU
			}
			if line.Description == "" {
				line.Description = product.Name
			}
			if line.UnitPrice.IsZero() {
				line.UnitPrice = product.Price
			}
			if line.TaxRate.IsZero() {
				line.TaxRate = product.TaxRate
			}
		}
		domainbilling.ApplyLine(&line)
		doc.Lines = append(doc.Lines, line)
	}

	doc.Totals, doc.TaxTotals = domainbilling.AggregateLines(doc.Lines)
	return doc, nil
}
