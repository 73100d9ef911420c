package billing

import (
	"github.com/velia-co/crm-api/internal/application/dto"
	domainbilling "github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
)

// ToDocumentResponse mapea el documento al DTO externo. Aquí, y solo aquí,
// los montos decimales se formatean como strings de 2 fraccionarios; el
// cálculo interno nunca redondea.
func ToDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:               doc.ID,
		CompanyID:        doc.CompanyID,
		Kind:             string(doc.Kind),
		Number:           doc.Number,
		Prefix:           doc.Prefix,
		ResolutionNumber: doc.ResolutionNumber,
		IssueDate:        doc.IssueDate.Format("2006-01-02"),
		IssueTime:        doc.IssueTime,
		Status:           doc.Status,
		Lines:            make([]dto.DocumentLineResponse, 0, len(doc.Lines)),
		TaxTotals:        make([]dto.TaxTotalResponse, 0, len(doc.TaxTotals)),
		Totals: dto.MonetaryTotalsResponse{
			LineExtensionAmount: domainbilling.FormatAmount(doc.Totals.LineExtensionAmount),
			TaxExclusiveAmount:  domainbilling.FormatAmount(doc.Totals.TaxExclusiveAmount),
			TaxInclusiveAmount:  domainbilling.FormatAmount(doc.Totals.TaxInclusiveAmount),
			PayableAmount:       domainbilling.FormatAmount(doc.Totals.PayableAmount),
		},
	}
	if doc.Customer != nil {
		resp.Customer = &dto.ContactResponse{
			ID:                   doc.Customer.ID,
			CompanyID:            doc.Customer.CompanyID,
			Name:                 doc.Customer.Name,
			IdentificationType:   doc.Customer.IdentificationType,
			IdentificationNumber: doc.Customer.IdentificationNumber,
			VerificationDigit:    doc.Customer.VerificationDigit,
			Email:                doc.Customer.Email,
			Phone:                doc.Customer.Phone,
			Address:              doc.Customer.Address,
			City:                 doc.Customer.City,
		}
	}
	if doc.PaymentForm != nil {
		resp.PaymentForm = &dto.PaymentFormResponse{
			PaymentFormID:   doc.PaymentForm.PaymentFormID,
			PaymentMethodID: doc.PaymentForm.PaymentMethodID,
			PaymentDueDate:  doc.PaymentForm.PaymentDueDate.Format("2006-01-02"),
		}
	}
	if doc.Reference != nil {
		resp.Reference = &dto.InvoiceReferenceResponse{
			Number:                 doc.Reference.Number,
			Date:                   doc.Reference.Date.Format("2006-01-02"),
			CustomerIdentification: doc.Reference.CustomerIdentification,
			CustomerName:           doc.Reference.CustomerName,
		}
	}
	for i := range doc.Lines {
		line := &doc.Lines[i]
		resp.Lines = append(resp.Lines, dto.DocumentLineResponse{
			ID:                  line.ID,
			ProductID:           line.ProductID,
			Code:                line.Code,
			Description:         line.Description,
			Quantity:            line.Quantity.String(),
			UnitPrice:           domainbilling.FormatAmount(line.UnitPrice),
			Discount:            domainbilling.FormatAmount(line.Discount),
			TaxRate:             line.TaxRate.StringFixed(2),
			LineExtensionAmount: domainbilling.FormatAmount(line.LineExtensionAmount),
			TaxAmount:           domainbilling.FormatAmount(line.TaxAmount),
			LineTotal:           domainbilling.FormatAmount(line.LineTotal),
		})
	}
	for i := range doc.TaxTotals {
		tt := &doc.TaxTotals[i]
		resp.TaxTotals = append(resp.TaxTotals, dto.TaxTotalResponse{
			Percent:       tt.Percent.StringFixed(2),
			TaxableAmount: domainbilling.FormatAmount(tt.TaxableAmount),
			TaxAmount:     domainbilling.FormatAmount(tt.TaxAmount),
		})
	}
	return resp
}
