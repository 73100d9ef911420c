package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/velia-co/crm-api/internal/application/dto"
	"github.com/velia-co/crm-api/internal/domain"
	"github.com/velia-co/crm-api/internal/domain/billing"
)

// respondError mapea los errores de dominio a respuestas HTTP. Un documento
// inválido responde 422 con TODAS las violaciones de campo a la vez, para que
// el cliente corrija en una sola pasada.
func respondError(c *fiber.Ctx, err error) error {
	var verrs billing.ValidationErrors
	if errors.As(err, &verrs) {
		out := dto.ValidationErrorResponse{
			Code:    "INVALID_DOCUMENT",
			Message: verrs.Error(),
			Errors:  make([]dto.FieldError, 0, len(verrs)),
		}
		for _, ve := range verrs {
			out.Errors = append(out.Errors, dto.FieldError{
				Field:   ve.Field,
				Message: ve.Message,
				Kind:    string(ve.Kind),
			})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "estado del recurso no permite la operación"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
