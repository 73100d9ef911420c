package entity

import "time"

// Customer representa un contacto del directorio (parte facturable).
// IdentificationNumber es el NIT o cédula SIN dígito de verificación;
// VerificationDigit es nil hasta que se suministre o se calcule (pkg/dian).
type Customer struct {
	ID                   string
	CompanyID            string
	Name                 string
	IdentificationType   string // códigos DIAN: "31" NIT, "13" CC (pkg/dian)
	IdentificationNumber int64
	VerificationDigit    *int // 0-9; nil = pendiente de calcular
	Email                string
	Phone                string
	Address              string
	City                 string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
