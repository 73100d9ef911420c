package entity

import "time"

// Company representa la organización emisora (multi-tenant, enfoque Colombia).
// Sus datos fiscales (NIT y DV) van en la cabecera de todo documento emitido.
type Company struct {
	ID                string
	Name              string
	NIT               string // NIT colombiano sin dígito de verificación
	VerificationDigit int
	Address           string
	City              string
	Phone             string
	Email             string
	Status            string // active, suspended, inactive
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
