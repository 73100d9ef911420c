package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velia-co/crm-api/internal/application/crm"
	"github.com/velia-co/crm-api/internal/application/dto"
)

// DealHandler maneja el tablero kanban de negocios (protegido).
type DealHandler struct {
	uc *crm.DealUseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *crm.DealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create crea un negocio al final de su columna.
// POST /api/deals
func (h *DealHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deal, err := h.uc.Create(GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

// Move mueve un negocio a otra etapa/posición (drag-and-drop).
// PATCH /api/deals/:id/move
func (h *DealHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveDealRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deal, err := h.uc.Move(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deal)
}

// UpdateStatus marca un negocio como ganado, perdido o abierto.
// PATCH /api/deals/:id/status
func (h *DealHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateDealStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deal, err := h.uc.UpdateStatus(GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(deal)
}

// Board devuelve el tablero completo: columnas en orden y deals ordenados.
// GET /api/pipelines/:id/board
func (h *DealHandler) Board(c *fiber.Ctx) error {
	board, err := h.uc.Board(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board)
}
