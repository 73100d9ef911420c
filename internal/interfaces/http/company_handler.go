package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velia-co/crm-api/internal/application/crm"
	"github.com/velia-co/crm-api/internal/application/dto"
)

// CompanyHandler maneja el alta y consulta de empresas.
type CompanyHandler struct {
	uc *crm.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *crm.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create crea una empresa y calcula el dígito de verificación de su NIT.
// POST /api/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	company, err := h.uc.Create(in)
	if err != nil {
		if crm.IsInvalidIdentification(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IDENTIFICATION", Message: "NIT inválido"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// GetByID obtiene una empresa.
// GET /api/companies/:id
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

// List lista empresas.
// GET /api/companies
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	list, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
