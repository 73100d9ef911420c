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

// CreateInvoiceUseCase emisión y consulta de facturas.
type CreateInvoiceUseCase struct {
	txRunner  TxRunner
	docRepo   repository.DocumentRepository
	assembler *DocumentAssembler
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(txRunner TxRunner, docRepo repository.DocumentRepository, assembler *DocumentAssembler) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{txRunner: txRunner, docRepo: docRepo, assembler: assembler}
}

// Create ensambla la factura, la valida completa y la persiste emitida.
// La validación corre una sola vez sobre el documento ya ensamblado y NUNCA
// corta en la primera falla: si hay violaciones se retorna
// domainbilling.ErrInvalidDocument unido a la lista completa y no se toca la
// base de datos. Reservar el consecutivo y guardar cabecera + líneas ocurre
// en una transacción.
func (uc *CreateInvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.DocumentResponse, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.assembler.Assemble(companyID, entity.KindInvoice, in.CustomerID, in.IssueDate, in.PaymentForm, in.Lines)
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

// Get obtiene una factura por ID con su detalle completo.
func (uc *CreateInvoiceUseCase) Get(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil || doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID || doc.Kind != entity.KindInvoice {
		return nil, domain.ErrNotFound
	}
	return ToDocumentResponse(doc), nil
}

// Search lista facturas filtrando por número o nombre de cliente, paginado.
func (uc *CreateInvoiceUseCase) Search(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	docs, err := uc.docRepo.Search(companyID, entity.KindInvoice, page.Q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToDocumentResponse(d))
	}
	return out, nil
}
