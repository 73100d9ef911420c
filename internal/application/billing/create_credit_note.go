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

// CreateCreditNoteUseCase emisión y consulta de notas crédito.
type CreateCreditNoteUseCase struct {
	txRunner  TxRunner
	docRepo   repository.DocumentRepository
	assembler *DocumentAssembler
}

// NewCreateCreditNoteUseCase construye el caso de uso.
func NewCreateCreditNoteUseCase(txRunner TxRunner, docRepo repository.DocumentRepository, assembler *DocumentAssembler) *CreateCreditNoteUseCase {
	return &CreateCreditNoteUseCase{txRunner: txRunner, docRepo: docRepo, assembler: assembler}
}

// Create emite una nota crédito contra una factura ya emitida. El cliente y
// la referencia se capturan de la factura, no del request: así la instantánea
// de referencia coincide por construcción y la validación cruzada solo puede
// fallar si alguien edita el contacto entre medias. Con Lines vacío la nota
// reversa la factura completa copiando sus líneas.
func (uc *CreateCreditNoteUseCase) Create(ctx context.Context, companyID string, in dto.CreateCreditNoteRequest) (*dto.DocumentResponse, error) {
	if in.InvoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	invoice, err := uc.docRepo.GetByID(in.InvoiceID)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID || invoice.Kind != entity.KindInvoice {
		return nil, domain.ErrNotFound
	}
	if invoice.Status != entity.DocumentStatusIssued {
		return nil, domain.ErrConflict
	}

	lines := in.Lines
	if len(lines) == 0 {
		lines = make([]dto.DocumentLineRequest, 0, len(invoice.Lines))
		for i := range invoice.Lines {
			src := &invoice.Lines[i]
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
	}

	paymentForm := in.PaymentForm
	if paymentForm == nil && invoice.PaymentForm != nil {
		paymentForm = &dto.PaymentFormRequest{
			PaymentFormID:   invoice.PaymentForm.PaymentFormID,
			PaymentMethodID: invoice.PaymentForm.PaymentMethodID,
			PaymentDueDate:  invoice.PaymentForm.PaymentDueDate.Format(issueDateLayout),
		}
	}

	doc, err := uc.assembler.AssembleFor(companyID, entity.KindCreditNote, invoice.Customer, in.IssueDate, paymentForm, lines)
	if err != nil {
		return nil, err
	}
	ref := &entity.InvoiceReference{
		Number: invoice.Prefix + invoice.Number,
		Date:   invoice.IssueDate,
	}
	if invoice.Customer != nil {
		ref.CustomerIdentification = invoice.Customer.IdentificationNumber
		ref.CustomerName = invoice.Customer.Name
	}
	doc.Reference = ref

	err = uc.txRunner.RunDocuments(ctx, func(docRepo repository.DocumentRepository) error {
		seq, err := docRepo.NextNumber(companyID, entity.KindCreditNote, doc.Prefix)
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

// Get obtiene una nota crédito por ID.
func (uc *CreateCreditNoteUseCase) Get(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil || doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID || doc.Kind != entity.KindCreditNote {
		return nil, domain.ErrNotFound
	}
	return ToDocumentResponse(doc), nil
}

// Search lista notas crédito, paginado.
func (uc *CreateCreditNoteUseCase) Search(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	docs, err := uc.docRepo.Search(companyID, entity.KindCreditNote, page.Q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out, nil
}
