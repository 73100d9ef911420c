package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un negocio.
const (
	DealStatusOpen = "open"
	DealStatusWon  = "won"
	DealStatusLost = "lost"
)

// Deal representa un negocio en el tablero kanban. Position es el orden del
// deal dentro de su etapa (0 = arriba); moverlo de columna renumera ambas
// etapas en una transacción.
type Deal struct {
	ID         string
	CompanyID  string
	CustomerID string
	PipelineID string
	StageID    string
	Title      string
	Amount     decimal.Decimal
	Position   int
	Status     string // open, won, lost
	OwnerID    string // usuario responsable
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
