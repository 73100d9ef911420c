package repository

import "github.com/velia-co/crm-api/internal/domain/entity"

// DocumentRepository acceso a documentos (facturas, notas crédito y
// cotizaciones comparten tabla; Kind discrimina la variante).
type DocumentRepository interface {
	// Create persiste cabecera y líneas del documento.
	Create(doc *entity.Document) error
	// GetByID carga el documento completo: cabecera, cliente, líneas,
	// forma de pago, totales de impuesto y referencia si existe.
	GetByID(id string) (*entity.Document, error)
	GetByNumber(companyID string, kind entity.DocumentKind, prefix, number string) (*entity.Document, error)
	// Search lista documentos de la variante indicada filtrando por número o
	// nombre de cliente; q vacío lista todo, paginado.
	Search(companyID string, kind entity.DocumentKind, q string, limit, offset int) ([]*entity.Document, error)
	UpdateStatus(id, status string) error
	// NextNumber reserva el siguiente consecutivo para la variante y prefijo.
	NextNumber(companyID string, kind entity.DocumentKind, prefix string) (int64, error)
}
