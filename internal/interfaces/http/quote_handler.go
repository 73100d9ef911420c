package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velia-co/crm-api/internal/application/billing"
	"github.com/velia-co/crm-api/internal/application/dto"
)

// QuoteHandler maneja la emisión, consulta y conversión de cotizaciones
// (protegido).
type QuoteHandler struct {
	uc     *billing.QuoteUseCase
	export *billing.ExportUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *billing.QuoteUseCase, export *billing.ExportUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc, export: export}
}

// Create emite una cotización.
// POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quote, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// GetByID obtiene el detalle completo de una cotización.
// GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	quote, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// Search lista cotizaciones por número o nombre de cliente.
// GET /api/quotes?q=&limit=&offset=
func (h *QuoteHandler) Search(c *fiber.Ctx) error {
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

// ConvertRequest body para convertir una cotización en factura.
type ConvertRequest struct {
	IssueDate   string                  `json:"issue_date,omitempty"`
	PaymentForm *dto.PaymentFormRequest `json:"payment_form"`
}

// Convert emite una factura a partir de la cotización.
// POST /api/quotes/:id/convert
func (h *QuoteHandler) Convert(c *fiber.Ctx) error {
	var in ConvertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.ConvertToInvoice(c.Context(), GetCompanyID(c), c.Params("id"), in.IssueDate, in.PaymentForm)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GeneratePDF descarga la cotización en PDF.
// GET /api/quotes/:id/pdf
func (h *QuoteHandler) GeneratePDF(c *fiber.Ctx) error {
	pdfBytes, err := h.export.GeneratePDF(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cotizacion.pdf"`)
	return c.Send(pdfBytes)
}
