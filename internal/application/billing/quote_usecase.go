package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/velia-co/crm-api/internal/application/dto"
	"github.com/velia-co/crm-api/internal/domain"
	domainbilling "github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

// QuoteUseCase emisión, consulta y conversión de cotizaciones.
type QuoteUseCase struct {
	txRunner  TxRunner
	docRepo   repository.DocumentRepository
	assembler *DocumentAssembler
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(txRunner TxRunner, docRepo repository.DocumentRepository, assembler *DocumentAssembler) *QuoteUseCase {
	return &QuoteUseCase{txRunner: txRunner, docRepo: docRepo, assembler: assembler}
}

// Create emite una cotización. Pasa por el mismo ensamblado y la misma
// validación que una factura, sin forma de pago ni totales de impuesto
// obligatorios.
func (uc *QuoteUseCase) Create(ctx context.Context, companyID string, in dto.CreateQuoteRequest) (*dto.DocumentResponse, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.assembler.Assemble(companyID, entity.KindQuote, in.CustomerID, in.IssueDate, nil, in.Lines)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunDocuments(ctx, func(docRepo repository.DocumentRepository) error {
		seq, err := docRepo.NextNumber(companyID, entity.KindQuote, doc.Prefix)
		if err != nil {
			return err
		}
		doc.Number = fmt.Sprintf("%d", seq)

		if verrs := domainbilling.Validate(doc); len(verrs) > 0 {
			return errors.Join(domainbilling.ErrInvalidDocument, verrs)
		}
		doc.Status = entity.DocumentStatusIssued
		return docRepo.Create(doc)
	})
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// ConvertToInvoice emite una factura a partir de una cotización existente:
// mismas líneas y mismo cliente, con forma de pago y fecha nuevas. La
// cotización original no cambia de estado.
func (uc *QuoteUseCase) ConvertToInvoice(
	ctx context.Context,
	companyID, quoteID string,
	issueDate string,
	paymentForm *dto.PaymentFormRequest,
) (*dto.DocumentResponse, error) {
	quote, err := uc.docRepo.GetByID(quoteID)
	if err != nil || quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.CompanyID != companyID || quote.Kind != entity.KindQuote {
		return nil, domain.ErrNotFound
	}
	if quote.Status == entity.DocumentStatusCancelled {
		return nil, domain.ErrConflict
	}

	lines := make([]dto.DocumentLineRequest, 0, len(quote.Lines))
	for i := range quote.Lines {
		src := &quote.Lines[i]
		lines = append(lines, dto.DocumentLineRequest{
			ProductID:   src.ProductID,
			Code:        src.Code,
			Description: src.Description,
			Quantity:    src.Quantity,
			UnitPrice:   src.UnitPrice,
			Discount:    src.Discount,
			TaxRate:     src.TaxRate,
		})
	}

	doc, err := uc.assembler.AssembleFor(companyID, entity.KindInvoice, quote.Customer, issueDate, paymentForm, lines)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunDocuments(ctx, func(docRepo repository.DocumentRepository) error {
		seq, err := docRepo.NextNumber(companyID, entity.KindInvoice, doc.Prefix)
		if err != nil {
			return err
		}
		doc.Number = fmt.Sprintf("%d", seq)

		if verrs := domainbilling.Validate(doc); len(verrs) > 0 {
			return errors.Join(domainbilling.ErrInvalidDocument, verrs)
		}
		doc.Status = entity.DocumentStatusIssued
		return docRepo.Create(doc)
	})
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// Get obtiene una cotización por ID.
func (uc *QuoteUseCase) Get(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil || doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID || doc.Kind != entity.KindQuote {
		return nil, domain.ErrNotFound
	}
	return ToDocumentResponse(doc), nil
}

// Search lista cotizaciones, paginado.
func (uc *QuoteUseCase) Search(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	docs, err := uc.docRepo.Search(companyID, entity.KindQuote, page.Q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out, nil
}
