package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio del catálogo.
// TaxRate está en porcentaje (0, 5, 19), no en fracción.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	TaxRate     decimal.Decimal // IVA Colombia: 0, 5, 19
	UnitMeasure string          // código DIAN tabla 6 (pkg/dian)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
