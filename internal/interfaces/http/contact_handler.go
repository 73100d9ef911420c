package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velia-co/crm-api/internal/application/crm"
	"github.com/velia-co/crm-api/internal/application/dto"
)

// ContactHandler maneja el directorio de contactos (protegido).
type ContactHandler struct {
	uc *crm.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *crm.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create crea un contacto. Si es NIT y no trae dígito de verificación, se
// calcula en este momento y queda persistido.
// POST /api/contacts
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	contact, err := h.uc.Create(companyID, in)
	if err != nil {
		if crm.IsInvalidIdentification(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_IDENTIFICATION", Message: "número de identificación inválido"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

// GetByID obtiene un contacto.
// GET /api/contacts/:id
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	contact, err := h.uc.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contact)
}

// Search lista contactos con búsqueda incremental por nombre o identificación.
// GET /api/contacts?q=&limit=&offset=
func (h *ContactHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de búsqueda inválidos"})
	}
	list, err := h.uc.Search(GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update actualiza los datos de contacto (no la identificación).
// PUT /api/contacts/:id
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	contact, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contact)
}

// Delete elimina un contacto.
// DELETE /api/contacts/:id
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
