// Package ubl construye la vista previa XML UBL 2.1 de los documentos
// emitidos (Invoice y CreditNote), sin firma XAdES. La firma y el envío al
// servicio de validación previa corren por fuera de este sistema.
package ubl

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	appbilling "github.com/velia-co/crm-api/internal/application/billing"
	domainbilling "github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/pkg/dian"
)

// Namespaces oficiales UBL 2.1.
const (
	nsInvoice    = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCreditNote = "urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2"
	nsCac        = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCbc        = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

var _ appbilling.DocumentXMLBuilder = (*XMLBuilder)(nil)

// XMLBuilder construye el XML UBL 2.1 del documento.
type XMLBuilder struct{}

// NewXMLBuilder crea el builder.
func NewXMLBuilder() *XMLBuilder {
	return &XMLBuilder{}
}

// Build genera el []byte del documento según UBL 2.1. Las cotizaciones no
// tienen representación UBL.
func (b *XMLBuilder) Build(doc *entity.Document, company *entity.Company) ([]byte, error) {
	if doc == nil || company == nil {
		return nil, fmt.Errorf("ubl: faltan documento o empresa")
	}

	var rootTag, lineTag, quantityTag, defaultNs string
	switch doc.Kind {
	case entity.KindInvoice:
		rootTag, lineTag, quantityTag, defaultNs = "Invoice", "cac:InvoiceLine", "cbc:InvoicedQuantity", nsInvoice
	case entity.KindCreditNote:
		rootTag, lineTag, quantityTag, defaultNs = "CreditNote", "cac:CreditNoteLine", "cbc:CreditedQuantity", nsCreditNote
	default:
		return nil, fmt.Errorf("ubl: la variante %q no tiene representación UBL", doc.Kind)
	}

	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := out.CreateElement(rootTag)
	root.CreateAttr("xmlns", defaultNs)
	root.CreateAttr("xmlns:cac", nsCac)
	root.CreateAttr("xmlns:cbc", nsCbc)

	root.CreateElement("cbc:UBLVersionID").SetText("2.1")
	root.CreateElement("cbc:CustomizationID").SetText("10")
	root.CreateElement("cbc:ID").SetText(doc.Prefix + doc.Number)
	root.CreateElement("cbc:IssueDate").SetText(doc.IssueDate.Format("2006-01-02"))
	if doc.IssueTime != "" {
		root.CreateElement("cbc:IssueTime").SetText(doc.IssueTime)
	}
	root.CreateElement("cbc:DocumentCurrencyCode").SetText("COP")
	root.CreateElement("cbc:LineCountNumeric").SetText(strconv.Itoa(len(doc.Lines)))

	if doc.Kind == entity.KindCreditNote && doc.Reference != nil {
		b.writeBillingReference(root, doc.Reference)
	}

	b.writeSupplierParty(root, company)
	b.writeCustomerParty(root, doc.Customer)
	if doc.PaymentForm != nil {
		b.writePaymentMeans(root, doc.PaymentForm)
	}
	b.writeTaxTotals(root, doc.TaxTotals)
	b.writeLegalMonetaryTotal(root, &doc.Totals)
	for i := range doc.Lines {
		b.writeLine(root, lineTag, quantityTag, i+1, &doc.Lines[i])
	}

	out.Indent(2)
	return out.WriteToBytes()
}

// writeBillingReference: cac:BillingReference con la factura ajustada.
func (b *XMLBuilder) writeBillingReference(root *etree.Element, ref *entity.InvoiceReference) {
	br := root.CreateElement("cac:BillingReference")
	inv := br.CreateElement("cac:InvoiceDocumentReference")
	inv.CreateElement("cbc:ID").SetText(ref.Number)
	inv.CreateElement("cbc:IssueDate").SetText(ref.Date.Format("2006-01-02"))
}

// writeSupplierParty: cac:AccountingSupplierParty con el emisor.
func (b *XMLBuilder) writeSupplierParty(root *etree.Element, company *entity.Company) {
	supplier := root.CreateElement("cac:AccountingSupplierParty")
	party := supplier.CreateElement("cac:Party")

	name := party.CreateElement("cac:PartyName")
	name.CreateElement("cbc:Name").SetText(company.Name)

	legal := party.CreateElement("cac:PartyLegalEntity")
	legal.CreateElement("cbc:RegistrationName").SetText(company.Name)
	companyIDEl := legal.CreateElement("cbc:CompanyID")
	companyIDEl.CreateAttr("schemeID", strconv.Itoa(company.VerificationDigit))
	companyIDEl.CreateAttr("schemeName", dian.IdentificationTypeNIT)
	companyIDEl.SetText(company.NIT)
}

// writeCustomerParty: cac:AccountingCustomerParty con el adquiriente.
func (b *XMLBuilder) writeCustomerParty(root *etree.Element, customer *entity.Customer) {
	if customer == nil {
		return
	}
	acct := root.CreateElement("cac:AccountingCustomerParty")
	party := acct.CreateElement("cac:Party")

	name := party.CreateElement("cac:PartyName")
	name.CreateElement("cbc:Name").SetText(customer.Name)

	legal := party.CreateElement("cac:PartyLegalEntity")
	legal.CreateElement("cbc:RegistrationName").SetText(customer.Name)
	companyIDEl := legal.CreateElement("cbc:CompanyID")
	if customer.VerificationDigit != nil {
		companyIDEl.CreateAttr("schemeID", strconv.Itoa(*customer.VerificationDigit))
	}
	companyIDEl.CreateAttr("schemeName", customer.IdentificationType)
	companyIDEl.SetText(strconv.FormatInt(customer.IdentificationNumber, 10))

	if customer.Email != "" {
		contact := party.CreateElement("cac:Contact")
		contact.CreateElement("cbc:ElectronicMail").SetText(customer.Email)
	}
}

// writePaymentMeans: cac:PaymentMeans con forma y medio de pago.
func (b *XMLBuilder) writePaymentMeans(root *etree.Element, pf *entity.PaymentForm) {
	pm := root.CreateElement("cac:PaymentMeans")
	pm.CreateElement("cbc:ID").SetText(pf.PaymentFormID)
	pm.CreateElement("cbc:PaymentMeansCode").SetText(pf.PaymentMethodID)
	if !pf.PaymentDueDate.IsZero() {
		pm.CreateElement("cbc:PaymentDueDate").SetText(pf.PaymentDueDate.Format("2006-01-02"))
	}
}

// writeTaxTotals: un cac:TaxTotal por tarifa de IVA.
func (b *XMLBuilder) writeTaxTotals(root *etree.Element, taxTotals []entity.TaxTotal) {
	for i := range taxTotals {
		tt := &taxTotals[i]
		total := root.CreateElement("cac:TaxTotal")
		amountEl(total, "cbc:TaxAmount", domainbilling.FormatAmount(tt.TaxAmount))

		sub := total.CreateElement("cac:TaxSubtotal")
		amountEl(sub, "cbc:TaxableAmount", domainbilling.FormatAmount(tt.TaxableAmount))
		amountEl(sub, "cbc:TaxAmount", domainbilling.FormatAmount(tt.TaxAmount))

		cat := sub.CreateElement("cac:TaxCategory")
		cat.CreateElement("cbc:Percent").SetText(tt.Percent.StringFixed(2))
		scheme := cat.CreateElement("cac:TaxScheme")
		scheme.CreateElement("cbc:ID").SetText(dian.TaxCodeIVA)
		scheme.CreateElement("cbc:Name").SetText("IVA")
	}
}

// writeLegalMonetaryTotal: cac:LegalMonetaryTotal con los cuatro montos.
func (b *XMLBuilder) writeLegalMonetaryTotal(root *etree.Element, totals *entity.MonetaryTotals) {
	lmt := root.CreateElement("cac:LegalMonetaryTotal")
	amountEl(lmt, "cbc:LineExtensionAmount", domainbilling.FormatAmount(totals.LineExtensionAmount))
	amountEl(lmt, "cbc:TaxExclusiveAmount", domainbilling.FormatAmount(totals.TaxExclusiveAmount))
	amountEl(lmt, "cbc:TaxInclusiveAmount", domainbilling.FormatAmount(totals.TaxInclusiveAmount))
	amountEl(lmt, "cbc:PayableAmount", domainbilling.FormatAmount(totals.PayableAmount))
}

// writeLine: una línea InvoiceLine/CreditNoteLine.
func (b *XMLBuilder) writeLine(root *etree.Element, lineTag, quantityTag string, number int, line *entity.LineItem) {
	el := root.CreateElement(lineTag)
	el.CreateElement("cbc:ID").SetText(strconv.Itoa(number))

	qty := el.CreateElement(quantityTag)
	qty.CreateAttr("unitCode", dian.UnitUnit)
	qty.SetText(line.Quantity.String())

	amountEl(el, "cbc:LineExtensionAmount", domainbilling.FormatAmount(line.LineExtensionAmount))

	item := el.CreateElement("cac:Item")
	item.CreateElement("cbc:Description").SetText(line.Description)
	if line.Code != "" {
		sellerID := item.CreateElement("cac:SellersItemIdentification")
		sellerID.CreateElement("cbc:ID").SetText(line.Code)
	}

	price := el.CreateElement("cac:Price")
	amountEl(price, "cbc:PriceAmount", domainbilling.FormatAmount(line.UnitPrice))
}

func amountEl(parent *etree.Element, tag, value string) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", "COP")
	el.SetText(value)
}
