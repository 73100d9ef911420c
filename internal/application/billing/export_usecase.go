package billing

import (
	"context"

	"github.com/velia-co/crm-api/internal/domain"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

// ExportUseCase genera las representaciones externas de un documento:
// PDF (representación gráfica) y vista previa XML UBL 2.1 sin firmar.
type ExportUseCase struct {
	docRepo      repository.DocumentRepository
	companyRepo  repository.CompanyRepository
	pdfGenerator DocumentPDFGenerator
	xmlBuilder   DocumentXMLBuilder
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	pdfGenerator DocumentPDFGenerator,
	xmlBuilder DocumentXMLBuilder,
) *ExportUseCase {
	return &ExportUseCase{
		docRepo:      docRepo,
		companyRepo:  companyRepo,
		pdfGenerator: pdfGenerator,
		xmlBuilder:   xmlBuilder,
	}
}

// GeneratePDF retorna los bytes del PDF del documento indicado.
func (uc *ExportUseCase) GeneratePDF(ctx context.Context, companyID, documentID string) ([]byte, error) {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil || doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGenerator.GenerateDocumentPDF(ctx, doc, company)
}

// GenerateXML retorna la vista previa UBL 2.1 del documento, sin firma.
func (uc *ExportUseCase) GenerateXML(ctx context.Context, companyID, documentID string) ([]byte, error) {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil || doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	return uc.xmlBuilder.Build(doc, company)
}
