package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/velia-co/crm-api/internal/domain"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
// Facturas, notas crédito y cotizaciones comparten la tabla documents; la
// columna kind discrimina. La instantánea del cliente, la forma de pago y la
// referencia de la nota crédito se desnormalizan en la cabecera: un documento
// emitido no debe cambiar si alguien edita el contacto después.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste cabecera, líneas y totales de impuesto del documento.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	ctx := context.Background()

	var (
		custID             *string
		custName           *string
		custIdentType      *string
		custIdentification *int64
		custDV             *int
		custEmail          *string
		custPhone          *string
		custAddress        *string
		custCity           *string
	)
	if c := doc.Customer; c != nil {
		custID, custName, custIdentType = &c.ID, &c.Name, &c.IdentificationType
		custIdentification = &c.IdentificationNumber
		custDV = c.VerificationDigit
		custEmail, custPhone, custAddress, custCity = &c.Email, &c.Phone, &c.Address, &c.City
	}

	var (
		pfForm    *string
		pfMethod  *string
		pfDueDate *time.Time
	)
	if pf := doc.PaymentForm; pf != nil {
		pfForm, pfMethod = &pf.PaymentFormID, &pf.PaymentMethodID
		if !pf.PaymentDueDate.IsZero() {
			pfDueDate = &pf.PaymentDueDate
		}
	}

	var (
		refNumber *string
		refDate   *time.Time
		refIdent  *int64
		refName   *string
	)
	if ref := doc.Reference; ref != nil {
		refNumber, refDate = &ref.Number, &ref.Date
		refIdent, refName = &ref.CustomerIdentification, &ref.CustomerName
	}

	headerQuery := `
		INSERT INTO documents (
			id, company_id, kind, number, prefix, resolution_number, issue_date, issue_time,
			customer_id, customer_name, customer_identification_type, customer_identification,
			customer_verification_digit, customer_email, customer_phone, customer_address, customer_city,
			payment_form_id, payment_method_id, payment_due_date,
			line_extension_amount, tax_exclusive_amount, tax_inclusive_amount, payable_amount,
			reference_number, reference_date, reference_customer_identification, reference_customer_name,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20,
			$21, $22, $23, $24,
			$25, $26, $27, $28,
			$29, $30, $31
		)`
	_, err := r.q.Exec(ctx, headerQuery,
		doc.ID, doc.CompanyID, string(doc.Kind), doc.Number, doc.Prefix, doc.ResolutionNumber,
		doc.IssueDate, doc.IssueTime,
		custID, custName, custIdentType, custIdentification, custDV,
		custEmail, custPhone, custAddress, custCity,
		pfForm, pfMethod, pfDueDate,
		doc.Totals.LineExtensionAmount, doc.Totals.TaxExclusiveAmount,
		doc.Totals.TaxInclusiveAmount, doc.Totals.PayableAmount,
		refNumber, refDate, refIdent, refName,
		doc.Status, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}

	lineQuery := `
		INSERT INTO document_lines (
			id, document_id, product_id, code, description, quantity, unit_price, discount,
			tax_rate, line_extension_amount, tax_amount, line_total, line_number
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for i := range doc.Lines {
		line := &doc.Lines[i]
		var productID *string
		if line.ProductID != "" {
			productID = &line.ProductID
		}
		_, err := r.q.Exec(ctx, lineQuery,
			line.ID, doc.ID, productID, line.Code, line.Description, line.Quantity,
			line.UnitPrice, line.Discount, line.TaxRate,
			line.LineExtensionAmount, line.TaxAmount, line.LineTotal, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert document line: %w", err)
		}
	}

	taxQuery := `
		INSERT INTO document_tax_totals (document_id, percent, taxable_amount, tax_amount, position)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range doc.TaxTotals {
		tt := &doc.TaxTotals[i]
		_, err := r.q.Exec(ctx, taxQuery, doc.ID, tt.Percent, tt.TaxableAmount, tt.TaxAmount, i+1)
		if err != nil {
			return fmt.Errorf("insert document tax total: %w", err)
		}
	}
	return nil
}

const documentHeaderColumns = `
		id, company_id, kind, number, prefix, resolution_number, issue_date, issue_time,
		customer_id, customer_name, customer_identification_type, customer_identification,
		customer_verification_digit, customer_email, customer_phone, customer_address, customer_city,
		payment_form_id, payment_method_id, payment_due_date,
		line_extension_amount, tax_exclusive_amount, tax_inclusive_amount, payable_amount,
		reference_number, reference_date, reference_customer_identification, reference_customer_name,
		status, created_at, updated_at`

func scanDocumentHeader(row pgx.Row) (*entity.Document, error) {
	var (
		doc  entity.Document
		kind string

		custID             *string
		custName           *string
		custIdentType      *string
		custIdentification *int64
		custDV             *int
		custEmail          *string
		custPhone          *string
		custAddress        *string
		custCity           *string

		pfForm    *string
		pfMethod  *string
		pfDueDate *time.Time

		refNumber *string
		refDate   *time.Time
		refIdent  *int64
		refName   *string
	)
	err := row.Scan(
		&doc.ID, &doc.CompanyID, &kind, &doc.Number, &doc.Prefix, &doc.ResolutionNumber,
		&doc.IssueDate, &doc.IssueTime,
		&custID, &custName, &custIdentType, &custIdentification, &custDV,
		&custEmail, &custPhone, &custAddress, &custCity,
		&pfForm, &pfMethod, &pfDueDate,
		&doc.Totals.LineExtensionAmount, &doc.Totals.TaxExclusiveAmount,
		&doc.Totals.TaxInclusiveAmount, &doc.Totals.PayableAmount,
		&refNumber, &refDate, &refIdent, &refName,
		&doc.Status, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.Kind = entity.DocumentKind(kind)

	if custID != nil {
		c := &entity.Customer{ID: *custID, CompanyID: doc.CompanyID}
		if custName != nil {
			c.Name = *custName
		}
		if custIdentType != nil {
			c.IdentificationType = *custIdentType
		}
		if custIdentification != nil {
			c.IdentificationNumber = *custIdentification
		}
		c.VerificationDigit = custDV
		if custEmail != nil {
			c.Email = *custEmail
		}
		if custPhone != nil {
			c.Phone = *custPhone
		}
		if custAddress != nil {
			c.Address = *custAddress
		}
		if custCity != nil {
			c.City = *custCity
		}
		doc.Customer = c
	}

	if pfForm != nil {
		pf := &entity.PaymentForm{PaymentFormID: *pfForm}
		if pfMethod != nil {
			pf.PaymentMethodID = *pfMethod
		}
		if pfDueDate != nil {
			pf.PaymentDueDate = *pfDueDate
		}
		doc.PaymentForm = pf
	}

	if refNumber != nil {
		ref := &entity.InvoiceReference{Number: *refNumber}
		if refDate != nil {
			ref.Date = *refDate
		}
		if refIdent != nil {
			ref.CustomerIdentification = *refIdent
		}
		if refName != nil {
			ref.CustomerName = *refName
		}
		doc.Reference = ref
	}
	return &doc, nil
}

func (r *DocumentRepo) loadDetail(ctx context.Context, doc *entity.Document) error {
	lineQuery := `
		SELECT id, product_id, code, description, quantity, unit_price, discount,
			tax_rate, line_extension_amount, tax_amount, line_total
		FROM document_lines WHERE document_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(ctx, lineQuery, doc.ID)
	if err != nil {
		return fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			line      entity.LineItem
			productID *string
		)
		err := rows.Scan(
			&line.ID, &productID, &line.Code, &line.Description, &line.Quantity,
			&line.UnitPrice, &line.Discount, &line.TaxRate,
			&line.LineExtensionAmount, &line.TaxAmount, &line.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("scan document line: %w", err)
		}
		line.DocumentID = doc.ID
		if productID != nil {
			line.ProductID = *productID
		}
		doc.Lines = append(doc.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	taxQuery := `
		SELECT percent, taxable_amount, tax_amount
		FROM document_tax_totals WHERE document_id = $1 ORDER BY position`
	taxRows, err := r.q.Query(ctx, taxQuery, doc.ID)
	if err != nil {
		return fmt.Errorf("list document tax totals: %w", err)
	}
	defer taxRows.Close()
	for taxRows.Next() {
		var tt entity.TaxTotal
		if err := taxRows.Scan(&tt.Percent, &tt.TaxableAmount, &tt.TaxAmount); err != nil {
			return fmt.Errorf("scan document tax total: %w", err)
		}
		doc.TaxTotals = append(doc.TaxTotals, tt)
	}
	return taxRows.Err()
}

// GetByID obtiene un documento completo por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	ctx := context.Background()
	query := `SELECT` + documentHeaderColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocumentHeader(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	if err := r.loadDetail(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByNumber obtiene un documento completo por variante, prefijo y número.
func (r *DocumentRepo) GetByNumber(companyID string, kind entity.DocumentKind, prefix, number string) (*entity.Document, error) {
	ctx := context.Background()
	query := `SELECT` + documentHeaderColumns + ` FROM documents
		WHERE company_id = $1 AND kind = $2 AND prefix = $3 AND number = $4`
	doc, err := scanDocumentHeader(r.q.QueryRow(ctx, query, companyID, string(kind), prefix, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by number: %w", err)
	}
	if err := r.loadDetail(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Search lista documentos de la variante filtrando por número o nombre de
// cliente; q vacío lista todo. Devuelve solo cabeceras, sin líneas.
func (r *DocumentRepo) Search(companyID string, kind entity.DocumentKind, q string, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT` + documentHeaderColumns + ` FROM documents
		WHERE company_id = $1 AND kind = $2
		  AND ($3 = '' OR number LIKE $3 || '%' OR customer_name ILIKE '%' || $3 || '%')
		ORDER BY issue_date DESC, number DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, companyID, string(kind), q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocumentHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del documento.
func (r *DocumentRepo) UpdateStatus(id, status string) error {
	query := `UPDATE documents SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return nil
}

// NextNumber reserva el siguiente consecutivo para la variante y prefijo.
// El upsert deja la fila del contador bloqueada hasta el commit, así dos
// emisiones concurrentes nunca obtienen el mismo número.
func (r *DocumentRepo) NextNumber(companyID string, kind entity.DocumentKind, prefix string) (int64, error) {
	query := `
		INSERT INTO document_counters (company_id, kind, prefix, last_number)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, kind, prefix)
		DO UPDATE SET last_number = document_counters.last_number + 1
		RETURNING last_number`
	var next int64
	err := r.q.QueryRow(context.Background(), query, companyID, string(kind), prefix).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next document number: %w", err)
	}
	return next, nil
}
