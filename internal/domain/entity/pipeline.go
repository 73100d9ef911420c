package entity

import "time"

// Pipeline representa un embudo de ventas con etapas ordenadas (tablero kanban).
type Pipeline struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stage es una columna del tablero. Position define el orden de izquierda a derecha.
type Stage struct {
	ID         string
	PipelineID string
	Name       string
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
