package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velia-co/crm-api/internal/application/billing"
	"github.com/velia-co/crm-api/internal/application/dto"
)

// CreditNoteHandler maneja la emisión y consulta de notas crédito (protegido).
type CreditNoteHandler struct {
	uc     *billing.CreateCreditNoteUseCase
	export *billing.ExportUseCase
}

// NewCreditNoteHandler construye el handler.
func NewCreditNoteHandler(uc *billing.CreateCreditNoteUseCase, export *billing.ExportUseCase) *CreditNoteHandler {
	return &CreditNoteHandler{uc: uc, export: export}
}

// Create emite una nota crédito contra una factura emitida. Lines vacío
// reversa la factura completa.
// POST /api/credit-notes
func (h *CreditNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCreditNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.InvoiceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoice_id es requerido"})
	}
	note, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// GetByID obtiene el detalle completo de una nota crédito.
// GET /api/credit-notes/:id
func (h *CreditNoteHandler) GetByID(c *fiber.Ctx) error {
	note, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}

// Search lista notas crédito por número o nombre de cliente.
// GET /api/credit-notes?q=&limit=&offset=
func (h *CreditNoteHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de búsqueda inválidos"})
	}
	list, err := h.uc.Search(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GeneratePDF descarga la representación gráfica de la nota crédito.
// GET /api/credit-notes/:id/pdf
func (h *CreditNoteHandler) GeneratePDF(c *fiber.Ctx) error {
	pdfBytes, err := h.export.GeneratePDF(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="nota-credito.pdf"`)
	return c.Send(pdfBytes)
}

// GenerateXML descarga la vista previa UBL 2.1 sin firmar.
// GET /api/credit-notes/:id/xml
func (h *CreditNoteHandler) GenerateXML(c *fiber.Ctx) error {
	xmlBytes, err := h.export.GenerateXML(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(xmlBytes)
}
