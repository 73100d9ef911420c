package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // porcentaje: 0, 5, 19
	UnitMeasure string          `json:"unit_measure,omitempty"`
}

// ProductResponse producto en respuestas. Price como string de 2 decimales.
type ProductResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	TaxRate     string `json:"tax_rate"`
	UnitMeasure string `json:"unit_measure,omitempty"`
}
