package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velia-co/crm-api/internal/application/crm"
	"github.com/velia-co/crm-api/internal/application/dto"
)

// PipelineHandler maneja pipelines y sus etapas (protegido).
type PipelineHandler struct {
	uc *crm.PipelineUseCase
}

// NewPipelineHandler construye el handler.
func NewPipelineHandler(uc *crm.PipelineUseCase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

// Create crea un pipeline con sus etapas.
// POST /api/pipelines
func (h *PipelineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePipelineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pipeline, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pipeline)
}

// GetByID obtiene un pipeline con etapas ordenadas.
// GET /api/pipelines/:id
func (h *PipelineHandler) GetByID(c *fiber.Ctx) error {
	pipeline, err := h.uc.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pipeline)
}

// List lista los pipelines de la empresa.
// GET /api/pipelines
func (h *PipelineHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
