package dto

// PageRequest paginación para listados y búsquedas.
type PageRequest struct {
	Q      string `query:"q"` // búsqueda incremental (nombre, número, SKU)
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldError violación de validación a nivel de campo, para render en la UI.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// ValidationErrorResponse cuerpo 422: todas las violaciones juntas para que
// el usuario corrija en una sola pasada.
type ValidationErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"` // mensajes unidos con saltos de línea
	Errors  []FieldError `json:"errors"`
}
