// Package billing contiene los casos de uso de facturación: ensamblado,
// emisión y consulta de facturas, notas crédito y cotizaciones.
package billing

import (
	"context"

	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con un DocumentRepository atado a una
// transacción: reservar el consecutivo y persistir cabecera + líneas debe
// ser atómico.
type TxRunner interface {
	RunDocuments(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error
}

// DocumentPDFGenerator genera la representación gráfica de un documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document, company *entity.Company) ([]byte, error)
}

// DocumentXMLBuilder genera la vista previa UBL 2.1 (sin firmar) de un
// documento. La firma XAdES y el envío a la DIAN corren por fuera.
type DocumentXMLBuilder interface {
	Build(doc *entity.Document, company *entity.Company) ([]byte, error)
}
