package dto

import "github.com/shopspring/decimal"

// CreateContactRequest body para POST /api/contacts.
// VerificationDigit es opcional: si va nil y el tipo es NIT, se calcula con
// el algoritmo módulo 11 de la DIAN al crear el contacto.
type CreateContactRequest struct {
	Name                 string `json:"name"`
	IdentificationType   string `json:"identification_type"` // "31" NIT, "13" CC
	IdentificationNumber int64  `json:"identification_number"`
	VerificationDigit    *int   `json:"verification_digit,omitempty"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	Address              string `json:"address,omitempty"`
	City                 string `json:"city,omitempty"`
}

// UpdateContactRequest body para PUT /api/contacts/:id.
type UpdateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// ContactResponse contacto en respuestas.
type ContactResponse struct {
	ID                   string `json:"id"`
	CompanyID            string `json:"company_id"`
	Name                 string `json:"name"`
	IdentificationType   string `json:"identification_type"`
	IdentificationNumber int64  `json:"identification_number"`
	VerificationDigit    *int   `json:"verification_digit,omitempty"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	Address              string `json:"address,omitempty"`
	City                 string `json:"city,omitempty"`
}

// CreateDealRequest body para POST /api/deals. PipelineID opcional: si va
// vacío se usa el pipeline por defecto de la configuración.
type CreateDealRequest struct {
	CustomerID string          `json:"customer_id"`
	PipelineID string          `json:"pipeline_id,omitempty"`
	StageID    string          `json:"stage_id,omitempty"` // vacío = primera etapa del pipeline
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
}

// UpdateDealStatusRequest body para PATCH /api/deals/:id/status.
type UpdateDealStatusRequest struct {
	Status string `json:"status"` // open, won, lost
}

// MoveDealRequest body para PATCH /api/deals/:id/move (drag-and-drop del kanban).
type MoveDealRequest struct {
	StageID  string `json:"stage_id"`
	Position int    `json:"position"` // 0 = arriba de la columna
}

// DealResponse deal en respuestas. Amount se entrega como string decimal de
// 2 fraccionarios, la representación que espera el frontend.
type DealResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	PipelineID string `json:"pipeline_id"`
	StageID    string `json:"stage_id"`
	Title      string `json:"title"`
	Amount     string `json:"amount"`
	Position   int    `json:"position"`
	Status     string `json:"status"`
}

// StageColumn una columna del tablero con sus deals ordenados.
type StageColumn struct {
	StageID   string         `json:"stage_id"`
	StageName string         `json:"stage_name"`
	Position  int            `json:"position"`
	Deals     []DealResponse `json:"deals"`
}

// CreatePipelineRequest body para POST /api/pipelines. Stages en orden de
// izquierda a derecha.
type CreatePipelineRequest struct {
	Name   string   `json:"name"`
	Stages []string `json:"stages"`
}

// StageResponse etapa de un pipeline.
type StageResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// PipelineResponse pipeline con sus etapas ordenadas.
type PipelineResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Stages []StageResponse `json:"stages"`
}

// BoardResponse tablero kanban completo de un pipeline.
type BoardResponse struct {
	PipelineID   string        `json:"pipeline_id"`
	PipelineName string        `json:"pipeline_name"`
	Columns      []StageColumn `json:"columns"`
}
