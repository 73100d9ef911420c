package dto

// CreateCompanyRequest body para POST /api/companies. El dígito de
// verificación del NIT no se recibe: se calcula al crear.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	NIT     string `json:"nit"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CompanyResponse empresa en respuestas.
type CompanyResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	NIT               string `json:"nit"`
	VerificationDigit int    `json:"verification_digit"`
	Address           string `json:"address,omitempty"`
	City              string `json:"city,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Email             string `json:"email,omitempty"`
	Status            string `json:"status"`
}
